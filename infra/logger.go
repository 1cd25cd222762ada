package infra

import (
	"strings"

	"go.uber.org/zap"
)

func NewLogger(environment string) (*zap.Logger, error) {
	if strings.EqualFold(environment, "production") {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// MaskSecret keeps only the last 4 characters of a secret.
func MaskSecret(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
