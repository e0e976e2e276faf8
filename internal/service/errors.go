package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadRequest           = errors.New("bad request")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrAuthenticationFailed = errors.New("bad credentials")

	ErrEmailTaken           = fmt.Errorf("%w: email is already taken", ErrBadRequest)
	ErrAlreadyParticipating = fmt.Errorf("%w: already participating", ErrBadRequest)
	ErrNotParticipating     = fmt.Errorf("%w: not participating", ErrBadRequest)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrBadRequest }

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
