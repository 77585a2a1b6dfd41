package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTab is returned when a request names a tab outside the known set.
	ErrUnknownTab = errors.New("unknown tab")
	// ErrTabForbidden is returned when the caller lacks the tab's capability.
	ErrTabForbidden = errors.New("tab not accessible")

	// ErrWriteConflict matches StoreError values of kind StoreWriteConflict.
	ErrWriteConflict = errors.New("options were modified since they were loaded")
	// ErrStoreUnavailable matches StoreError values of kind StoreUnavailable.
	ErrStoreUnavailable = errors.New("options storage unavailable")
)

// SchemaError reports an invalid field or section definition.
// It is a programming error and should abort startup.
type SchemaError struct {
	Section string
	Key     string
	Reason  string
}

func (e *SchemaError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("schema: section %q: %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("schema: field %s.%s: %s", e.Section, e.Key, e.Reason)
}

// DuplicateFieldError is returned when (section, key) is defined twice.
type DuplicateFieldError struct {
	Section string
	Key     string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("schema: field %s.%s already defined", e.Section, e.Key)
}

// FieldErrorReason classifies a validation failure.
type FieldErrorReason string

const (
	ReasonOutOfRange    FieldErrorReason = "out_of_range"
	ReasonInvalidFormat FieldErrorReason = "invalid_format"
	ReasonMissing       FieldErrorReason = "missing"
)

// FieldError is a recoverable validation failure for one field.
type FieldError struct {
	Field   string           `json:"field"`
	Reason  FieldErrorReason `json:"reason"`
	Message string           `json:"message,omitempty"`
}

func (e FieldError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects every failure of one submission.
type FieldErrors []FieldError

func (errs FieldErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// ByField indexes the errors by field path.
func (errs FieldErrors) ByField() map[string]FieldError {
	out := make(map[string]FieldError, len(errs))
	for _, e := range errs {
		out[e.Field] = e
	}
	return out
}

// StoreErrorKind classifies a persistence failure.
type StoreErrorKind string

const (
	StoreWriteConflict StoreErrorKind = "write_conflict"
	StoreUnavailable   StoreErrorKind = "unavailable"
)

// StoreError reports a failed save.
type StoreError struct {
	Kind StoreErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("options store: %s", e.Kind)
	}
	return fmt.Sprintf("options store: %s: %v", e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind sentinels.
func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrWriteConflict:
		return e.Kind == StoreWriteConflict
	case ErrStoreUnavailable:
		return e.Kind == StoreUnavailable
	}
	return false
}
