package store

import (
	"context"

	"github.com/fitkeeper/go-fit-keeper/models"
)

// LocalStore is the device-local record store: durable per-key get/set of
// the JSON-shaped records that make up the user's local state.
//
// Reads of absent records return zero values (empty settings, empty lists),
// never errors: a fresh installation starts from nothing. Writes are
// synchronous; by the time a save returns, the record is durable.
type LocalStore interface {
	GetSettings(ctx context.Context) (models.UserSettings, error)
	SaveSettings(ctx context.Context, settings models.UserSettings) error

	GetTrainingHistory(ctx context.Context) ([]models.TrainingHistory, error)
	SaveTrainingHistory(ctx context.Context, history []models.TrainingHistory) error

	GetCustomTrainings(ctx context.Context) ([]models.CustomTraining, error)
	SaveCustomTrainings(ctx context.Context, trainings []models.CustomTraining) error

	GetLanguage(ctx context.Context) (string, error)
	SaveLanguage(ctx context.Context, language string) error

	// SaveState writes the full state (settings, trainings, history, and
	// language when non-empty) in one transaction: either every record is
	// updated or none is. Sync write-backs go through here so a failure
	// mid-write can never leave a merge half-applied.
	SaveState(ctx context.Context, state models.LocalState) error

	// DeviceID returns the stable installation identifier, lazily creating
	// and persisting a random unique id on first call.
	DeviceID(ctx context.Context) (string, error)
}
