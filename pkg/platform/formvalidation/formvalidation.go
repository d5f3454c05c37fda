// Package formvalidation runs go-playground/validator struct tags over posted forms and
// records the failures in a modelstate.ModelState.
//
// Field keys come from the `form` tag. Messages come from an `errmsg_<tag>` tag for the failed
// validation, then the `errmsg` tag, falling back to a generic message per validation tag.
package formvalidation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"schemereg/pkg/platform/modelstate"
)

// Validator wraps a configured validator instance.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator keyed on `form` tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks form and adds one message per failing field to ms.
// It returns false when any field failed.
func (v *Validator) Validate(form any, ms modelstate.ModelState) bool {
	err := v.validate.Struct(form)
	if err == nil {
		return true
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ms.AddError("", err.Error())
		return false
	}
	t := reflect.TypeOf(form)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range fieldErrs {
		ms.AddError(fe.Field(), message(t, fe))
	}
	return false
}

func message(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if msg := sf.Tag.Get("errmsg_" + fe.Tag()); msg != "" {
			return msg
		}
		if msg := sf.Tag.Get("errmsg"); msg != "" {
			return msg
		}
	}
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("Enter %s", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be %s characters or less", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("Select a valid %s", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
