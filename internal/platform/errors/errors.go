// Package errors defines typed application errors shared by the backend
// client, web modules, and command-line tools.
package errors

import (
	stderrors "errors"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
)

// Error is a typed application failure.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	// Fields maps form field names to localization keys or backend messages.
	Fields map[string]string
	Cause  error
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return string(e.Kind)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e Error) Unwrap() error {
	return e.Cause
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap builds a typed Error around an underlying cause.
func Wrap(kind Kind, message string, cause error) error {
	return Error{Kind: kind, Message: message, Cause: cause}
}

// Invalid builds an invalid-input error carrying per-field failures.
func Invalid(key string, fields map[string]string) error {
	return Error{
		Kind:    KindInvalidInput,
		Key:     strings.TrimSpace(key),
		Message: describeFields(fields),
		Fields:  fields,
	}
}

// KindOf returns the error kind, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// LocalizationKey returns the structured localization key when available.
func LocalizationKey(err error) string {
	if err == nil {
		return ""
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// FieldErrors returns per-field failures attached to an invalid-input error.
func FieldErrors(err error) map[string]string {
	var appErr Error
	if err == nil || !stderrors.As(err, &appErr) {
		return nil
	}
	return appErr.Fields
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func describeFields(fields map[string]string) string {
	if len(fields) == 0 {
		return "invalid input"
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return strings.Join(parts, "; ")
}
