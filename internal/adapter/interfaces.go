// Package adapter contains the client-side transport to the remote document
// store. The store is addressed by user id and exposes exactly two
// operations: fetch the user's cloud document and merge-upsert a partial
// document into it.
package adapter

import (
	"context"

	"github.com/fitkeeper/go-fit-keeper/models"
)

// RemoteStore is the client's view of the remote document database.
type RemoteStore interface {
	// GetDocument fetches the cloud document for userID. A (nil, nil)
	// return means the user has no document yet, i.e. the first sync for this
	// account. Transport failures map to ErrRemoteUnavailable.
	GetDocument(ctx context.Context, userID string) (*models.CloudDocument, error)

	// UpsertDocument writes doc for userID with merge semantics: top-level
	// fields absent from the payload are preserved on the remote side.
	// Re-sending an identical document is a no-op in effect, which makes
	// the sync push path idempotent.
	UpsertDocument(ctx context.Context, userID string, doc models.CloudDocument) error

	// SetToken installs the bearer token attached to every request.
	SetToken(token string)
}
