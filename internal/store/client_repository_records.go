// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/internal/utils"
	"github.com/fitkeeper/go-fit-keeper/models"
)

// localRecordRepository is the SQLite-backed implementation of [LocalStore].
// Every logical record (settings, history, trainings, language, device id)
// is one JSON value in the "records" table.
type localRecordRepository struct {
	*DB
	logger *logger.Logger
	uuid   *utils.UUIDGenerator
}

// NewLocalRecordRepository constructs a [LocalStore] backed by the provided
// SQLite connection and logger.
func NewLocalRecordRepository(db *DB, logger *logger.Logger) LocalStore {
	return &localRecordRepository{
		DB:     db,
		logger: logger,
		uuid:   utils.NewUUIDGenerator(),
	}
}

func (l *localRecordRepository) GetSettings(ctx context.Context) (models.UserSettings, error) {
	var settings models.UserSettings
	if err := l.getRecord(ctx, recordSettings, &settings); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return models.UserSettings{}, nil
		}
		return models.UserSettings{}, err
	}
	return settings, nil
}

func (l *localRecordRepository) SaveSettings(ctx context.Context, settings models.UserSettings) error {
	return l.saveRecord(ctx, recordSettings, settings)
}

func (l *localRecordRepository) GetTrainingHistory(ctx context.Context) ([]models.TrainingHistory, error) {
	var history []models.TrainingHistory
	if err := l.getRecord(ctx, recordTrainingHistory, &history); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return []models.TrainingHistory{}, nil
		}
		return nil, err
	}
	return history, nil
}

func (l *localRecordRepository) SaveTrainingHistory(ctx context.Context, history []models.TrainingHistory) error {
	return l.saveRecord(ctx, recordTrainingHistory, history)
}

func (l *localRecordRepository) GetCustomTrainings(ctx context.Context) ([]models.CustomTraining, error) {
	var trainings []models.CustomTraining
	if err := l.getRecord(ctx, recordCustomTrainings, &trainings); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return []models.CustomTraining{}, nil
		}
		return nil, err
	}
	return trainings, nil
}

func (l *localRecordRepository) SaveCustomTrainings(ctx context.Context, trainings []models.CustomTraining) error {
	return l.saveRecord(ctx, recordCustomTrainings, trainings)
}

func (l *localRecordRepository) GetLanguage(ctx context.Context) (string, error) {
	var language string
	if err := l.getRecord(ctx, recordLanguage, &language); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return language, nil
}

func (l *localRecordRepository) SaveLanguage(ctx context.Context, language string) error {
	return l.saveRecord(ctx, recordLanguage, language)
}

// DeviceID implements LocalStore. The id is generated once per installation
// and survives restarts; it identifies this device in pushed documents.
func (l *localRecordRepository) DeviceID(ctx context.Context) (string, error) {
	var deviceID string
	err := l.getRecord(ctx, recordDeviceID, &deviceID)
	if err == nil && deviceID != "" {
		return deviceID, nil
	}
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return "", err
	}

	deviceID = l.uuid.Generate()
	if err = l.saveRecord(ctx, recordDeviceID, deviceID); err != nil {
		return "", err
	}

	return deviceID, nil
}

func (l *localRecordRepository) getRecord(ctx context.Context, name string, dest any) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("value").
		From("records").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	scanErr := l.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return ErrRecordNotFound
		}
		log.Err(scanErr).
			Str("func", "localRecordRepository.getRecord").
			Str("record", name).
			Msg("failed to query local record")
		return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	if err = json.Unmarshal([]byte(value), dest); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.getRecord").
			Str("record", name).
			Msg("failed to decode local record")
		return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}

	return nil
}

// SaveState implements LocalStore. All record writes share one transaction,
// so a storage failure rolls the whole state write back instead of leaving
// merged settings next to pre-merge trainings or history.
func (l *localRecordRepository) SaveState(ctx context.Context, state models.LocalState) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.SaveState").
			Msg("failed to begin state transaction")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	defer tx.Rollback()

	records := []struct {
		name  string
		value any
	}{
		{recordSettings, state.Settings},
		{recordCustomTrainings, state.CustomTrainings},
		{recordTrainingHistory, state.TrainingHistory},
	}
	if state.Language != "" {
		records = append(records, struct {
			name  string
			value any
		}{recordLanguage, state.Language})
	}

	for _, record := range records {
		if err = saveRecordOn(ctx, tx, record.name, record.value); err != nil {
			log.Err(err).
				Str("func", "localRecordRepository.SaveState").
				Str("record", record.name).
				Msg("failed to upsert record in state transaction")
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.SaveState").
			Msg("failed to commit state transaction")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localRecordRepository) saveRecord(ctx context.Context, name string, value any) error {
	if err := saveRecordOn(ctx, l.DB, name, value); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRecordRepository.saveRecord").
			Str("record", name).
			Msg("failed to upsert local record")
		return err
	}
	return nil
}

// recordExecutor is the subset of sql.DB / sql.Tx that record writes need.
type recordExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveRecordOn(ctx context.Context, ex recordExecutor, name string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	query, args, err := sq.Insert("records").
		Columns("name", "value").
		Values(name, string(payload)).
		Suffix(`ON CONFLICT(name) DO UPDATE
			SET value = excluded.value,
			    updated_at = CURRENT_TIMESTAMP`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
