// Package apierror defines the closed error taxonomy returned across the
// UI boundary. Every failure the backend emits carries exactly one Code;
// raw repository or driver errors never cross the boundary (see From).
package apierror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code identifies one of the five failure classes the boundary can return.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeNotFound     Code = "NOT_FOUND"
	CodeDuplicateKey Code = "DUPLICATE_KEY"
	CodeBusinessRule Code = "BUSINESS_RULE"
	CodeStorage      Code = "STORAGE_ERROR"
)

// Error is the tagged error type used throughout the service and repository
// layers. Fields is populated only for validation failures.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Validation builds a VALIDATION_ERROR whose message enumerates every
// offending field. Keys are sorted so the message is deterministic.
func Validation(fields map[string]string) *Error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return &Error{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, "; "),
		Fields:  fields,
	}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

func DuplicateKey(format string, args ...interface{}) *Error {
	return New(CodeDuplicateKey, fmt.Sprintf(format, args...))
}

func BusinessRule(format string, args ...interface{}) *Error {
	return New(CodeBusinessRule, fmt.Sprintf(format, args...))
}

// From classifies an arbitrary error. Tagged errors pass through unchanged;
// anything else is a persistence-layer fault and becomes STORAGE_ERROR with
// a generic message so internal details are never leaked to the caller.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(CodeStorage, "storage operation failed")
}

// CodeOf returns the taxonomy code an error maps to.
func CodeOf(err error) Code { return From(err).Code }
