package errors

import (
	"fmt"
	"slices"
	"strings"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string
	Value   any
	Message string
}

// ValidationError collects rejected fields. It is raised before any
// network call.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError rejects a single field.
func NewValidationError(field string, value any, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, value, message)
	return v
}

func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return "validation failed"
	case 1:
		f := e.Fields[0]
		return fmt.Sprintf("validation failed for field %s: %s", f.Field, f.Message)
	}
	var b strings.Builder
	b.WriteString("validation failed for fields ")
	for i, f := range e.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Field + ": " + f.Message)
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Add records another rejected field.
func (e *ValidationError) Add(field string, value any, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Value: value, Message: message})
}

// FieldNames lists the rejected fields in the order they were added.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	return slices.ContainsFunc(e.Fields, func(f FieldError) bool { return f.Field == field })
}

// OrNil is nil when nothing was rejected, so a collector can be returned
// directly as an error.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IndexOutOfRangeError is a position outside [0, Length).
type IndexOutOfRangeError struct {
	Resource string
	Index    int
	Length   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.Resource, e.Index, e.Length)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// CheckIndex fails unless 0 <= index < length.
func CheckIndex(resource string, index, length int) error {
	if index >= 0 && index < length {
		return nil
	}
	return &IndexOutOfRangeError{Resource: resource, Index: index, Length: length}
}
