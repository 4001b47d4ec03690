package store

import (
	"database/sql"

	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/migrations"
)

// DB wraps the standard sql.DB with the application logger. Both the
// PostgreSQL document store and the client SQLite record store use it.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate runs the embedded goose migrations for the document store.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
