// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"context"
	"fmt"

	"github.com/fitkeeper/go-fit-keeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldUserID targets the owner identifier of a cloud document.
	FieldUserID = "user_id"

	// FieldCustomTrainings targets the list of user-authored trainings.
	FieldCustomTrainings = "custom_trainings"

	// FieldTrainingHistory targets the list of completed workouts.
	FieldTrainingHistory = "training_history"

	// FieldSchemaVersion targets the document schema version marker.
	FieldSchemaVersion = "schema_version"
)

// CloudDocumentValidator enforces the structural rules of a cloud document:
// the user id is present, list entries carry unique non-empty ids and the
// schema version is not from the future.
type CloudDocumentValidator struct {
}

func NewCloudDocumentValidator() Validator {
	return &CloudDocumentValidator{}
}

func (v *CloudDocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CloudDocument:
		return v.validateDocument(ctx, value, fields...)
	case *models.CloudDocument:
		return v.validateDocument(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CloudDocumentValidator) validateDocument(_ context.Context, doc models.CloudDocument, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldCustomTrainings, FieldTrainingHistory, FieldSchemaVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if doc.UserID == "" {
				return ErrInvalidUserID
			}
		case FieldCustomTrainings:
			if err := validateTrainings(doc.CustomTrainings); err != nil {
				return err
			}
		case FieldTrainingHistory:
			if err := validateHistory(doc.TrainingHistory); err != nil {
				return err
			}
		case FieldSchemaVersion:
			if doc.SchemaVersion < 0 || doc.SchemaVersion > models.CloudSchemaVersion {
				return ErrInvalidSchemaVersion
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateTrainings(trainings []models.CustomTraining) error {
	seen := make(map[string]struct{}, len(trainings))
	for i, tr := range trainings {
		if tr.ID == "" {
			return fmt.Errorf("%w: index %d", ErrEmptyTrainingID, i)
		}
		if _, ok := seen[tr.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateTrainingID, tr.ID)
		}
		seen[tr.ID] = struct{}{}
	}
	return nil
}

func validateHistory(history []models.TrainingHistory) error {
	seen := make(map[string]struct{}, len(history))
	for i, entry := range history {
		if entry.ID == "" {
			return fmt.Errorf("%w: index %d", ErrEmptyHistoryID, i)
		}
		if _, ok := seen[entry.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateHistoryID, entry.ID)
		}
		seen[entry.ID] = struct{}{}
	}
	return nil
}
