package sync

import (
	"errors"

	"github.com/fitkeeper/go-fit-keeper/internal/adapter"
)

// Sentinel errors surfaced by the orchestrator. Callers match against them
// with [errors.Is].
var (
	// ErrNotAuthenticated is returned by pull operations when no user is
	// signed in. Push operations resolve silently instead, because they
	// fire from background paths that cannot prompt the user.
	ErrNotAuthenticated = errors.New("no authenticated user")

	// ErrSyncTimeout is returned when a sync attempt exceeds its time
	// budget. The attempt is abandoned, not cancelled: a write that was
	// already in flight may still land remotely, which is harmless because
	// pushes are idempotent.
	ErrSyncTimeout = errors.New("sync timeout")

	// ErrSyncFailed is returned when the debounced push exhausts its
	// attempt budget. It wraps the last attempt's error.
	ErrSyncFailed = errors.New("sync failed after retries")

	// ErrRemoteUnavailable mirrors the adapter-level sentinel so callers
	// depending on this package alone can classify connectivity failures.
	ErrRemoteUnavailable = adapter.ErrRemoteUnavailable
)
