package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	cssLengthPattern = regexp.MustCompile(`^[0-9]+(px|rem|em|vh|%)$`)
)

// validatorInstance returns the shared validator with chartkit rules registered.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
			if name == "-" {
				return ""
			}

			return name
		})

		_ = v.RegisterValidation("css_length", func(fl validator.FieldLevel) bool {
			return cssLengthPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// convertValidationError reports the first failed rule with the dotted YAML
// path of the field.
func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err
	}

	ve := ves[0]

	return fmt.Errorf("%s failed validation for tag '%s'", yamlishFieldName(ve), ve.Tag())
}

func yamlishFieldName(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return strings.ToLower(fe.Namespace())
	}

	return path
}
