// Package apperr defines the error taxonomy shared by the service and
// transport layers. Services raise typed errors at the point of detection;
// the HTTP layer maps each kind to a status code exactly once.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	BadRequest Kind = iota + 1
	Conflict
	Unauthorized
	Internal
)

// Client-visible messages. The login failures deliberately share one message
// so the API gives no signal about which part of the credentials was wrong.
const (
	MsgEmptyUsername      = "Username cannot be empty"
	MsgNoAlphabetUsername = "Username should contain alphabet"
	MsgMaxCharUsername    = "Username exceed max limit char (25)"
	MsgRegisteredUsername = "Username is already registered"
	MsgUnauthorizedUser   = "Incorrect username or password"
	MsgOccupiedSession    = "User already in session"
	MsgExpiredSession     = "Session has expired"
	MsgInvalidCreds       = "Could not validate credentials"
	MsgExistingSession    = "Session already exists"
	MsgInternal           = "Internal server error"
)

type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// NewInternal returns an Internal error with the generic client-safe detail.
// The underlying cause is logged at the point of failure, never exposed.
func NewInternal() *Error {
	return &Error{Kind: Internal, Detail: MsgInternal}
}

// KindOf extracts the taxonomy kind from err. Errors outside the taxonomy
// are treated as Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Detail returns the client-safe message for err.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return MsgInternal
}

// HTTPStatus maps a taxonomy kind to its response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case BadRequest:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
