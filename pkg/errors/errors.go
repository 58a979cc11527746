// Package errors defines the coded error type services return to the
// transport layer. Codes classify an outcome; messages are user-facing and
// copied verbatim into the JSON response envelope.
package errors

import (
	stderrors "errors"
	"net/http"
)

type Code string

const (
	// CodeValidation covers malformed client input with itemized messages.
	CodeValidation Code = "validation_failed"
	// CodeBadRequest covers malformed requests without itemized messages.
	CodeBadRequest Code = "bad_request"
	// CodeConflict covers uniqueness violations.
	CodeConflict Code = "conflict"
	// CodeUnauthenticated covers bad credentials or a missing session.
	CodeUnauthenticated Code = "unauthenticated"
	// CodeNotFound covers identities whose backing record is gone.
	CodeNotFound Code = "not_found"
	// CodeInternal covers store and hashing failures. Messages must stay
	// generic so internals never leak to clients.
	CodeInternal Code = "internal"
)

// ServiceError is a coded, user-presentable error. Details is only populated
// for validation failures and lists every violated rule.
type ServiceError struct {
	Code    Code
	Message string
	Details []string
}

func (e ServiceError) Error() string {
	return e.Message
}

func New(code Code, message string) ServiceError {
	return ServiceError{Code: code, Message: message}
}

// WithDetails returns a copy of the error carrying itemized messages.
func (e ServiceError) WithDetails(details ...string) ServiceError {
	e.Details = details
	return e
}

// Is reports whether err is a ServiceError with the given code.
func Is(err error, code Code) bool {
	var se ServiceError
	if stderrors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// ToHTTPStatus maps an error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
