package service

import (
	"context"

	"github.com/fitkeeper/go-fit-keeper/models"
)

// DocumentService is the server-side business layer over the cloud document
// store.
type DocumentService interface {
	// GetDocument returns the cloud document owned by userID.
	GetDocument(ctx context.Context, userID string) (models.CloudDocument, error)

	// UpsertDocument validates doc and merge-upserts it as userID's
	// document. The document body may omit the user id; when present it
	// must match userID.
	UpsertDocument(ctx context.Context, userID string, doc models.CloudDocument) error
}
