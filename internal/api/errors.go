package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call. The set is closed; callers branch on
// it instead of inspecting raw transport errors.
type Kind int

const (
	KindUnknown Kind = iota
	// KindCredentialRejected is a 401 from the backend.
	KindCredentialRejected
	// KindForbidden is a 403 from the backend.
	KindForbidden
	// KindNotFound is a 404 from the backend.
	KindNotFound
	// KindConflict is a 409, e.g. a duplicate email on registration.
	KindConflict
	// KindValidation is a 400 carrying a server-supplied message.
	KindValidation
	// KindServerFault is any 5xx.
	KindServerFault
	// KindTimeout means the round trip exceeded the client deadline.
	KindTimeout
	// KindUnreachable means the request was sent but no response arrived.
	KindUnreachable
	// KindMalformedResponse means the response body violated the expected
	// shape.
	KindMalformedResponse
	// KindRequestSetup means the request could not be constructed or sent
	// at all.
	KindRequestSetup
)

func (k Kind) String() string {
	switch k {
	case KindCredentialRejected:
		return "credential-rejected"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation-failed"
	case KindServerFault:
		return "server-fault"
	case KindTimeout:
		return "transport-timeout"
	case KindUnreachable:
		return "transport-unreachable"
	case KindMalformedResponse:
		return "malformed-response"
	case KindRequestSetup:
		return "request-setup"
	default:
		return "unknown"
	}
}

// Error is a classified API failure. It carries enough detail to log the
// method, path and status of the failed call; it never carries credential
// material.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// classifyStatus maps an HTTP error status to its Kind.
func classifyStatus(status int) Kind {
	switch {
	case status == 400:
		return KindValidation
	case status == 401:
		return KindCredentialRejected
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status == 409:
		return KindConflict
	case status >= 500:
		return KindServerFault
	default:
		return KindUnknown
	}
}
