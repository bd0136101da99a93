package domain

import (
	"errors"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError, which carries the per-field details.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// NonFieldErrorsKey is the field key used for errors that do not belong to a
// single input field.
const NonFieldErrorsKey = "non_field_errors"

// Field error messages shared by the domain and the API layer.
const (
	MsgRequired       = "This field is required."
	MsgInvalidEmail   = "Enter a valid email address."
	MsgBlank          = "This field may not be blank."
	MsgUsernameTaken  = "Username already exists."
	MsgUserEmailTaken = "A user with that email already exists."
	MsgBusinessTaken  = "Business name already exists."
	MsgBusinessEmail  = "Business with this email already exists."
)

// ValidationError collects field-level validation failures so they can be
// reported together rather than one at a time.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a ValidationError holding a single message for field.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// Add records a message for field.
func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string][]string)
	}
	v.Fields[field] = append(v.Fields[field], message)
}

// Merge copies all messages from other into v.
func (v *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		for _, msg := range msgs {
			v.Add(field, msg)
		}
	}
}

// HasErrors reports whether any field failed.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.Fields) > 0
}

// OrNil returns v as an error, or nil when it holds no failures.
func (v *ValidationError) OrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

// Error implements the error interface. Fields are listed in sorted order so
// the output is stable.
func (v *ValidationError) Error() string {
	if !v.HasErrors() {
		return ErrValidation.Error()
	}
	fields := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	b.WriteString(": ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(v.Fields[f], " "))
	}
	return b.String()
}

// Unwrap allows errors.Is(err, ErrValidation).
func (v *ValidationError) Unwrap() error {
	return ErrValidation
}

// AsValidationError extracts a ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
