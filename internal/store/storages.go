package store

import (
	"context"
	"fmt"

	"github.com/fitkeeper/go-fit-keeper/internal/config"
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
)

// Storages groups all server-side repositories.
type Storages struct {
	DocumentRepository DocumentRepository
}

// NewStorages initialises the server storage layer: it connects to PostgreSQL
// using cfg.DB.DSN, runs pending schema migrations and returns a fully wired
// [Storages] value.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		DocumentRepository: NewDocumentRepository(db, logger),
	}, nil
}
