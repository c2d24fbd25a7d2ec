package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFailedValidation     = errors.New("failed validation")
	ErrRecordNotFound       = errors.New("record not found")
	ErrDuplicateRecord      = errors.New("duplicate record")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPhotoStoreDisabled   = errors.New("photo storage is not configured")
)

// ValidationError carries the field messages of a failed validation.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q %s", k, e.Errors[k]))
	}
	return "failed validation: " + strings.Join(parts, ", ")
}

// Is makes errors.Is(err, ErrFailedValidation) true for validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrFailedValidation
}

// failedValidation wraps a validation error map.
func (s *service) failedValidation(errorMap map[string]string) error {
	return &ValidationError{Errors: errorMap}
}
