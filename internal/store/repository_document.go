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
	"github.com/fitkeeper/go-fit-keeper/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository]. Each user's state lives in a single JSONB value in
// the "user_documents" table; the upsert path delegates the shallow merge to
// PostgreSQL's || operator so that top-level fields absent from the payload
// survive the write.
type documentRepository struct {
	*DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

// GetDocument loads the cloud document for userID. Returns
// ErrDocumentNotFound for users that have never pushed from any device.
func (d *documentRepository) GetDocument(ctx context.Context, userID string) (models.CloudDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("document").
		From("user_documents").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetDocument").
			Str("user_id", userID).
			Msg("failed to build select query")
		return models.CloudDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload []byte
	scanErr := d.DB.QueryRowContext(ctx, query, args...).Scan(&payload)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.CloudDocument{}, ErrDocumentNotFound
		}
		log.Err(scanErr).
			Str("func", "documentRepository.GetDocument").
			Str("user_id", userID).
			Msg("failed to query cloud document")
		return models.CloudDocument{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	var doc models.CloudDocument
	if err = json.Unmarshal(payload, &doc); err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetDocument").
			Str("user_id", userID).
			Msg("failed to decode cloud document payload")
		return models.CloudDocument{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}

	doc.Normalize()
	return doc, nil
}

// UpsertMergeDocument creates or shallow-merges the document for userID.
// The JSONB || operator keeps any top-level field the payload omits, which
// gives the remote store its upsert-merge semantics.
func (d *documentRepository) UpsertMergeDocument(ctx context.Context, userID string, doc models.CloudDocument) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(doc)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.UpsertMergeDocument").
			Str("user_id", userID).
			Msg("failed to encode cloud document payload")
		return fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	query, args, err := sq.Insert("user_documents").
		Columns("user_id", "document", "device_id", "updated_at").
		Values(userID, payload, doc.DeviceID, sq.Expr("NOW()")).
		Suffix(`ON CONFLICT (user_id) DO UPDATE
			SET document = user_documents.document || excluded.document,
			    device_id = excluded.device_id,
			    updated_at = NOW()`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.UpsertMergeDocument").
			Str("user_id", userID).
			Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, execErr := d.DB.ExecContext(ctx, query, args...)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "documentRepository.UpsertMergeDocument").
			Str("user_id", userID).
			Str("device_id", doc.DeviceID).
			Msg("failed to execute upsert for cloud document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if affected, raErr := res.RowsAffected(); raErr == nil && affected == 0 {
		return ErrDocumentNotSaved
	}

	return nil
}
