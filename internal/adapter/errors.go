package adapter

import "errors"

// Sentinel errors mapped from remote document store responses. Callers match
// against them with [errors.Is].
var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("client unauthorized")
	ErrForbidden        = errors.New("access forbidden")
	ErrDocumentNotFound = errors.New("cloud document not found")

	// ErrRemoteUnavailable is returned when the store cannot serve the
	// request right now: DNS failure, refused connection, a dropped
	// request, or any 5xx response.
	ErrRemoteUnavailable = errors.New("remote document store unavailable")
)
