// Package sync implements the client-side sync orchestrator: the lifecycle
// glue between the local record store, the pure merge engine and the remote
// document store adapter.
//
// One orchestrator exists per signed-in session. Pull operations fetch the
// user's cloud document, reconcile it against the in-memory state and hand
// the result back; push operations serialise the full local state into a
// cloud document and upsert it remotely. All pushes are full-document and
// idempotent, so retries and overlapping writes converge.
package sync

import (
	"context"

	"github.com/fitkeeper/go-fit-keeper/models"
)

// Orchestrator coordinates sync between local state and the remote document
// store.
//
// Every entry point degrades to a no-op when userID is empty: pulls return
// [ErrNotAuthenticated], pushes resolve immediately without error. Signed-out
// usage is an expected state, not a failure.
type Orchestrator interface {
	// PullAndMerge fetches the user's cloud document, reconciles it with
	// local, pushes the merged state back when reconciliation changed
	// anything (or when the user had no document yet), persists the merged
	// state to the local record store and returns it. A failed sync leaves
	// local data untouched and returns the input state unchanged.
	PullAndMerge(ctx context.Context, userID string, local models.LocalState) (models.LocalState, error)

	// PullOnly fetches and reconciles without writing anywhere: no remote
	// push, no local persistence. The caller decides whether to apply the
	// returned state.
	PullOnly(ctx context.Context, userID string, local models.LocalState) (models.LocalState, error)

	// SyncNow is the explicit user-triggered sync. Identical to
	// PullAndMerge.
	SyncNow(ctx context.Context, userID string, local models.LocalState) (models.LocalState, error)

	// PushDebounced schedules a push of state after the debounce window,
	// restarting the window on every call. At most one push is pending per
	// orchestrator: a newer call supersedes the previous one, whose waiter
	// resolves nil. The returned channel yields exactly one value, the
	// push outcome, and is then closed.
	PushDebounced(ctx context.Context, userID string, state models.LocalState) <-chan error

	// PushBeforeExit performs a single best-effort push bounded by the
	// exit timeout. Errors are logged and swallowed; the app is going away
	// and nobody can act on them.
	PushBeforeExit(ctx context.Context, userID string, state models.LocalState)

	// Status returns the current observable sync status.
	Status() models.SyncStatus

	// Subscribe registers fn to be called on every status change and
	// returns a function that removes the subscription.
	Subscribe(fn func(models.SyncStatus)) (unsubscribe func())
}
