package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

func ParseStringToInt64(str string) (int64, error) {
	if str == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, err
	}
	return value, nil
}

// ParseStringToBool returns fallback for an empty string.
func ParseStringToBool(str string, fallback bool) (bool, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return fallback, nil
	}
	return strconv.ParseBool(str)
}

// StringFromAny renders a decoded JSON scalar as text. Numbers keep their
// integer form, so 12345 becomes "12345" and not "12345.000000".
func StringFromAny(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
