package validation

import (
	"github.com/go-playground/validator/v10"
)

func Validate(data interface{}) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(data)
}

// FirstMissing walks fields in order and returns the first one that is absent
// from data or holds JSON null. Only presence is checked, never the value.
func FirstMissing(data map[string]interface{}, fields []string) (string, bool) {
	for _, field := range fields {
		value, ok := data[field]
		if !ok || value == nil {
			return field, true
		}
	}
	return "", false
}
