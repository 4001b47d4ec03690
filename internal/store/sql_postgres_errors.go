package store

import (
	"github.com/jackc/pgerrcode"
)

// IsTransientPostgresError reports whether err is a connection-level or
// serialization failure worth surfacing to clients as a temporary outage
// rather than a hard error. Clients retry on their own schedule.
func IsTransientPostgresError(err error) bool {
	code := postgresErrorCode(err)
	if code == "" {
		return false
	}

	return pgerrcode.IsConnectionException(code) ||
		code == pgerrcode.SerializationFailure ||
		code == pgerrcode.DeadlockDetected
}
