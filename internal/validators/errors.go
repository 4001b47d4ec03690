package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrUserIDMismatch       = errors.New("document user ID does not match the addressed user")
	ErrDuplicateTrainingID  = errors.New("duplicate custom training id")
	ErrDuplicateHistoryID   = errors.New("duplicate training history id")
	ErrEmptyTrainingID      = errors.New("custom training id is required")
	ErrEmptyHistoryID       = errors.New("training history id is required")
	ErrInvalidSchemaVersion = errors.New("invalid document schema version")
)
