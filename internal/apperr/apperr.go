// Package apperr defines the error type returned by the user service for
// expected domain failures. Infrastructure failures stay plain errors and
// are never represented here.
package apperr

import (
	"sort"
	"strings"
)

type Kind int

const (
	// Unprocessable covers domain-rule violations and invalid input:
	// duplicate email/username, wrong credentials, unknown user id.
	Unprocessable Kind = iota

	// Unauthorized covers missing or invalid bearer tokens.
	Unauthorized
)

// Fields maps a field name to the messages explaining why it was rejected.
type Fields map[string][]string

type Error struct {
	Kind   Kind
	Fields Fields
}

func NewUnprocessable(fields Fields) *Error {
	return &Error{Kind: Unprocessable, Fields: fields}
}

func NewUnauthorized(fields Fields) *Error {
	return &Error{Kind: Unauthorized, Fields: fields}
}

func (e *Error) Error() string {
	kind := "unprocessable"
	if e.Kind == Unauthorized {
		kind = "unauthorized"
	}

	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}
	sort.Strings(parts)

	return kind + ": " + strings.Join(parts, "; ")
}
