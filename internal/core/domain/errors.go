package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type outside the accepted documents,
	// or an unknown store type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUploadInProgress indicates an upload is already outstanding.
	ErrUploadInProgress = errors.New("upload in progress")

	// ErrNoActiveSession indicates a question was asked without a document session.
	ErrNoActiveSession = errors.New("no active session: upload a document first")
)

// ErrorKind classifies failures talking to the backend.
type ErrorKind string

// Error kinds.
const (
	// KindNetworkFailure covers transport errors and non-success HTTP statuses.
	KindNetworkFailure ErrorKind = "network_failure"

	// KindBackendRejection is an explicit semantic rejection of the document.
	KindBackendRejection ErrorKind = "backend_rejection"

	// KindMalformedResponse is a payload that does not match the expected schema.
	KindMalformedResponse ErrorKind = "malformed_response"

	// KindPreconditionNotMet is chat attempted without an active session.
	KindPreconditionNotMet ErrorKind = "precondition_not_met"
)

// GatewayError is returned by backend gateway adapters.
type GatewayError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Op is the endpoint that failed, e.g. "analyze-document".
	Op string

	// StatusCode is the HTTP status, 0 for transport errors.
	StatusCode int

	// Body is the raw response body, if any was read.
	Body string

	// Err is the underlying error.
	Err error
}

func (e *GatewayError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// KindOf returns the error kind of err. Errors that are not gateway errors
// are treated as network failures, except ErrNoActiveSession.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoActiveSession) {
		return KindPreconditionNotMet
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return KindNetworkFailure
}

// RawBody returns the response body carried by a gateway error, if any.
func RawBody(err error) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Body
	}
	return ""
}
