package client

import (
	"errors"
	"reflect"

	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	errRequestRequired = errors.New("request is required")
)

// validateRequest checks a create request before anything is sent.
func validateRequest(request interface{}) error {
	if request == nil || reflect.ValueOf(request).IsNil() {
		return &qtest.ValidationError{Err: errRequestRequired}
	}

	err := validate.Struct(request)
	if err != nil {
		return &qtest.ValidationError{Err: err}
	}

	return nil
}
