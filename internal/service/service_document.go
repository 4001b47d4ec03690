// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/internal/store"
	"github.com/fitkeeper/go-fit-keeper/internal/validators"
	"github.com/fitkeeper/go-fit-keeper/models"
)

type documentService struct {
	documentRepository store.DocumentRepository
	validator          validators.Validator

	logger *logger.Logger
}

// NewDocumentService constructs the document business layer over the given
// repository.
func NewDocumentService(documentRepository store.DocumentRepository, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		validator:          validators.NewCloudDocumentValidator(),
		logger:             logger,
	}
}

func (d *documentService) GetDocument(ctx context.Context, userID string) (models.CloudDocument, error) {
	if userID == "" {
		return models.CloudDocument{}, ErrValidationNoUserID
	}

	return d.documentRepository.GetDocument(ctx, userID)
}

func (d *documentService) UpsertDocument(ctx context.Context, userID string, doc models.CloudDocument) error {
	if userID == "" {
		return ErrValidationNoUserID
	}
	if doc.UserID != "" && doc.UserID != userID {
		return ErrValidationUserIDMismatch
	}

	// The path segment is authoritative; older clients omit the body field.
	doc.UserID = userID
	doc.Normalize()

	if err := d.validator.Validate(ctx, doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return d.documentRepository.UpsertMergeDocument(ctx, userID, doc)
}
