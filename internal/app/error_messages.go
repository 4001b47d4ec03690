// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// sync backend handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSONProvided is returned when the request body cannot be
	// decoded as JSON at all.
	MsgInvalidJSONProvided = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a decoded document fails
	// validation (e.g. duplicate training ids or an unknown schema version).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires a user ID but
	// none is present in the request path or context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgAccessDenied is returned when the authenticated user attempts to
	// read or modify a document that belongs to a different user.
	MsgAccessDenied = "access denied"

	// MsgDocumentNotFound is returned when a user requests their cloud
	// document before any device has pushed one.
	MsgDocumentNotFound = "document not found"
)
