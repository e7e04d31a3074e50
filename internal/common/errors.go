// Package common defines the error kinds shared by repositories and
// services. Callers should use errors.Is against the sentinels below; every
// *Error matches the generic sentinel of its kind regardless of message.
package common

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so the request layer can map it to a
// stable response without looking at store internals.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindAlreadyExists
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindAlreadyExists:
		return "already exists"
	case KindNotFound:
		return "not found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal error"
	}
}

// Error is a domain error of a fixed Kind. Message is what the caller sees.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is the generic sentinel of e's kind, so that
// errors.Is(err, ErrorNotFound) holds for any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == t.Kind.String()
}

var (
	ErrorInternal      = &Error{Kind: KindInternal, Message: KindInternal.String()}
	ErrorInvalidInput  = &Error{Kind: KindInvalidInput, Message: KindInvalidInput.String()}
	ErrorAlreadyExists = &Error{Kind: KindAlreadyExists, Message: KindAlreadyExists.String()}
	ErrorNotFound      = &Error{Kind: KindNotFound, Message: KindNotFound.String()}
	ErrorUnauthorized  = &Error{Kind: KindUnauthorized, Message: KindUnauthorized.String()}

	// ErrInvalidCredentials is returned for every failed authentication.
	// It carries no identifier.
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid username/password"}

	ErrInvalidToken = &Error{Kind: KindUnauthorized, Message: "invalid token"}
	ErrTokenExpired = &Error{Kind: KindUnauthorized, Message: "token expired"}
)

// InvalidInput returns an invalid-input error with a formatted message.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists returns a duplicate-entity error with a formatted message.
func AlreadyExists(format string, args ...any) error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error with a formatted message.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
