package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/valeryfun/mern-dev-connector/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names ("text") instead of Go field names ("Text")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	label := fe.Field()
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// validationErrors converts validator output into the response body. ok is
// false when err is not a validation failure.
func validationErrors(err error) (resp dto.ValidationErrorResponse, ok bool) {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return resp, false
	}
	resp.Errors = make([]dto.FieldError, 0, len(ves))
	for _, fe := range ves {
		resp.Errors = append(resp.Errors, dto.FieldError{Msg: fieldMessage(fe), Param: fe.Field()})
	}
	return resp, true
}
