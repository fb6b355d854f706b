package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("key_prefix", validateKeyPrefix)
}

// validateKeyPrefix accepts object key prefixes such as "input/".
// The empty prefix matches every key.
func validateKeyPrefix(fl validator.FieldLevel) bool {
	prefix := fl.Field().String()
	if strings.HasPrefix(prefix, "/") || strings.Contains(prefix, "\\") {
		return false
	}
	for _, segment := range strings.Split(prefix, "/") {
		if segment == ".." {
			return false
		}
	}
	return true
}
