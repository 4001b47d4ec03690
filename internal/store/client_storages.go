package store

import (
	"context"
	"fmt"

	"github.com/fitkeeper/go-fit-keeper/internal/config"
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the sync layer. Currently it holds only
// [LocalStore]; additional repositories can be added here as the feature set
// grows.
type ClientStorages struct {
	// Records is the SQLite-backed store for the app state kept locally on
	// this device: settings, training history, custom trainings, language
	// and the device id.
	Records LocalStore
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It opens an SQLite connection to the file path
// specified in cfg.DB.DSN, creating the database file and the records table
// if they do not yet exist, and returns a [ClientStorages] value wired to a
// fresh record repository.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		Records: NewLocalRecordRepository(db, logger),
	}, nil
}
