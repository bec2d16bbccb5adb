package scval

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKind classifies a decode or validation failure. Consumers branch on the
// kind, never on the message text.
type ErrKind string

const (
	ErrInvalidType          ErrKind = "invalid_type"
	ErrMissingRequiredField ErrKind = "missing_required_field"
	ErrInvalidValue         ErrKind = "invalid_value"
	ErrMalformedResponse    ErrKind = "malformed_response"
	ErrUnsupportedOperation ErrKind = "unsupported_operation"
	ErrConversionFailed     ErrKind = "conversion_failed"
	ErrValidationFailed     ErrKind = "validation_failed"
)

// Error is the typed failure surfaced by every decode and validation path.
type Error struct {
	Kind     ErrKind
	Field    string
	Expected string
	Actual   string
	Detail   string
	Context  ParsingContext
	wrapped  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Field != "" {
		fmt.Fprintf(&b, " field=%s", e.Field)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, " expected=%s", e.Expected)
	}
	if e.Actual != "" {
		fmt.Fprintf(&b, " actual=%s", e.Actual)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Context.Function != "" {
		fmt.Fprintf(&b, " (%s/%s)", e.Context.Category, e.Context.Function)
	}
	if e.wrapped != nil {
		fmt.Fprintf(&b, ": %v", e.wrapped)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.wrapped }

// KindOf extracts the error kind, or the empty string for foreign errors.
func KindOf(err error) ErrKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return ""
}

func newInvalidType(ctx ParsingContext, expected string, actual Kind) *Error {
	return &Error{Kind: ErrInvalidType, Expected: expected, Actual: actual.String(), Context: ctx}
}

// MissingFieldError reports a required field absent from a record map.
func MissingFieldError(ctx ParsingContext, field string) *Error {
	return &Error{Kind: ErrMissingRequiredField, Field: field, Context: ctx}
}

func newInvalidValue(ctx ParsingContext, field, detail string) *Error {
	return &Error{Kind: ErrInvalidValue, Field: field, Detail: detail, Context: ctx}
}

func newMalformed(ctx ParsingContext, detail string) *Error {
	return &Error{Kind: ErrMalformedResponse, Detail: detail, Context: ctx}
}

// NewConversionFailed wraps a downstream transform failure, such as JSON
// re-encoding or a 128-bit range overflow.
func NewConversionFailed(ctx ParsingContext, detail string, err error) *Error {
	return &Error{Kind: ErrConversionFailed, Detail: detail, Context: ctx, wrapped: err}
}

// NewValidationFailed reports a post-decode semantic violation with enough
// detail to act on without re-deriving the record.
func NewValidationFailed(field, observed, constraint string) *Error {
	return &Error{
		Kind:     ErrValidationFailed,
		Field:    field,
		Actual:   observed,
		Expected: constraint,
	}
}
