// Package validate wraps go-playground/validator with the wardrobe's
// custom rules and turns validation failures into client-facing messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/erazemk/wardrobe/internal/model"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Get returns the shared validator instance.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report JSON/form names instead of Go field names.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return strings.ToLower(f.Name)
		})

		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return model.ValidCategory(fl.Field().String())
		})
		_ = v.RegisterValidation("style", func(fl validator.FieldLevel) bool {
			return model.ValidStyle(fl.Field().String())
		})

		instance = v
	})
	return instance
}

// Struct validates s using its `validate` tags.
func Struct(s any) error {
	return Get().Struct(s)
}

// Email checks that s is a syntactically valid email address.
func Email(s string) error {
	if err := Get().Var(s, "required,email,max=254"); err != nil {
		return errors.New("invalid email address")
	}
	return nil
}

// Fields converts validation errors into a field -> message map.
// Errors that are not validation errors yield nil.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = message(e)
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "category":
		return "unknown category"
	case "style":
		return "unknown style"
	case "dive", "excludesall", "printascii":
		return "contains invalid characters"
	default:
		return "invalid value"
	}
}
