package shared

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// A blank GSTIN means none. omitempty alone does not cover a pointer to "".
	if err := v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.TrimSpace(s) == "" || ValidGSTIN(s)
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidGSTIN reports whether s has the 15-character GSTIN layout.
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// Validate checks struct tags on v and returns an Error of kind ErrValidation
// listing every failing field keyed by its JSON path.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &Error{Kind: ErrValidation, Fields: make(map[string]string, len(fieldErrs))}
	for _, fieldErr := range fieldErrs {
		path := fieldErr.Namespace()
		if idx := strings.Index(path, "."); idx >= 0 {
			path = path[idx+1:]
		}
		out.Fields[path] = fieldErr.Tag()
		if out.Message == "" {
			out.Message = describe(path, fieldErr)
		}
	}
	return out
}

func describe(path string, fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return path + " is required"
	case "min":
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("at least %s %s required", fieldErr.Param(), path)
		}
		return fmt.Sprintf("%s must be at least %s", path, fieldErr.Param())
	case "gstin":
		return path + " is not a valid GSTIN"
	case "datetime":
		return path + " must be a date in YYYY-MM-DD format"
	case "email":
		return path + " must be a valid email address"
	default:
		return fmt.Sprintf("%s failed %s validation", path, fieldErr.Tag())
	}
}
