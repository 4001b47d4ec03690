package store

import (
	"context"

	"github.com/fitkeeper/go-fit-keeper/models"
)

// DocumentRepository is the server-side persistence contract for cloud
// documents: one JSONB document per user id.
type DocumentRepository interface {
	// GetDocument loads the document for userID. Returns
	// ErrDocumentNotFound when the user has never pushed.
	GetDocument(ctx context.Context, userID string) (models.CloudDocument, error)

	// UpsertMergeDocument creates the document if absent, or shallow-merges
	// the payload's top-level fields into the existing one. Fields missing
	// from the payload are preserved.
	UpsertMergeDocument(ctx context.Context, userID string, doc models.CloudDocument) error
}
