package pkg

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// statusPattern is the shape of every lifecycle status code, e.g. PENDING or
// IN_TRANSIT.
var statusPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{0,29}$`)

// IsStatus reports whether s is a well-formed status code.
func IsStatus(s string) bool {
	return statusPattern.MatchString(s)
}

// NormalizeStatus trims and upper-cases s.
func NormalizeStatus(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// RegisterValidators installs the custom binding rules on gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return IsStatus(fl.Field().String())
	})
}
