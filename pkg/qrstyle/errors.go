package qrstyle

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownValue   = errors.New("value is not one of the allowed literals")
	ErrInvalidColor   = errors.New("invalid color")
	ErrOutOfRange     = errors.New("value out of range")
	ErrEmptyData      = errors.New("data is empty")
	ErrDataMode       = errors.New("data is not encodable in the selected mode")
	ErrGradientStops  = errors.New("invalid gradient stops")
	ErrUnknownField   = errors.New("unknown field")
	ErrPresetNotFound = errors.New("preset not found")
)

// FieldError ties a validation failure to the field path it was found on
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
