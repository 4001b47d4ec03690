package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDocumentNotFound is returned when a read targets a user id that
	// has no cloud document yet.
	ErrDocumentNotFound = errors.New("cloud document was not found")

	// ErrDocumentNotSaved is returned when an upsert completes without a
	// driver error but the number of affected rows is zero, indicating
	// that nothing was actually persisted.
	ErrDocumentNotSaved = errors.New("cloud document was not saved")

	// ErrRecordNotFound is returned by the local record store when a named
	// record is absent. Most callers treat this as "fresh install" and map
	// it to a zero value instead of propagating it.
	ErrRecordNotFound = errors.New("local record was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrEncodingRecord is returned when a record cannot be serialised to
	// JSON before being written.
	ErrEncodingRecord = errors.New("failed to encode record")

	// ErrDecodingRecord is returned when a stored record cannot be parsed
	// back from JSON.
	ErrDecodingRecord = errors.New("failed to decode record")
)
