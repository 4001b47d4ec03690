// SPDX-License-Identifier: Apache-2.0

package sync

import (
	"context"
	"time"

	"github.com/fitkeeper/go-fit-keeper/internal/adapter"
	"github.com/fitkeeper/go-fit-keeper/internal/config"
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/internal/merge"
	"github.com/fitkeeper/go-fit-keeper/internal/store"
	"github.com/fitkeeper/go-fit-keeper/models"
)

// cloudInstantFormat is the ISO-8601 UTC instant with millisecond precision
// used throughout the cloud document.
const cloudInstantFormat = "2006-01-02T15:04:05.000Z07:00"

type orchestrator struct {
	remote adapter.RemoteStore
	local  store.LocalStore
	cfg    config.Sync
	logger *logger.Logger

	status *statusBroadcaster

	// now is swapped out in tests for deterministic timestamps.
	now func() time.Time

	push pushScheduler
}

// NewOrchestrator wires an [Orchestrator] over the given remote adapter and
// local record store. Zero-valued cfg fields are replaced with the standard
// tunables (500ms debounce, 3 attempts, 10s attempt timeout, 3s exit
// timeout, 1s base backoff).
func NewOrchestrator(remote adapter.RemoteStore, local store.LocalStore, cfg config.Sync, log *logger.Logger) Orchestrator {
	cfg = cfg.WithDefaults()
	o := &orchestrator{
		remote: remote,
		local:  local,
		cfg:    cfg,
		logger: log,
		status: newStatusBroadcaster(),
		now:    time.Now,
	}
	o.push.init(o)
	return o
}

func (o *orchestrator) PullAndMerge(ctx context.Context, userID string, local models.LocalState) (models.LocalState, error) {
	if userID == "" {
		return local, ErrNotAuthenticated
	}
	log := logger.FromContext(ctx)

	o.status.setSyncing()

	doc, err := o.remote.GetDocument(ctx, userID)
	if err != nil {
		log.Err(err).
			Str("func", "orchestrator.PullAndMerge").
			Str("user_id", userID).
			Msg("failed to fetch cloud document")
		o.status.setError(err)
		return local, err
	}

	merged, changed := merge.Reconcile(local, doc)
	firstSync := doc == nil
	syncedAt := o.timestamp()

	if changed || firstSync {
		merged.Settings.LastSyncedAt = syncedAt
		if err = o.pushDocument(ctx, userID, merged, syncedAt); err != nil {
			log.Err(err).
				Str("func", "orchestrator.PullAndMerge").
				Str("user_id", userID).
				Msg("failed to push merged state")
			o.status.setError(err)
			return local, err
		}
		if err = o.persistLocal(ctx, merged); err != nil {
			o.status.setError(err)
			return local, err
		}
	}

	o.status.setSynced(syncedAt)
	log.Debug().
		Str("func", "orchestrator.PullAndMerge").
		Str("user_id", userID).
		Bool("changed", changed).
		Bool("first_sync", firstSync).
		Msg("sync completed")
	return merged, nil
}

func (o *orchestrator) PullOnly(ctx context.Context, userID string, local models.LocalState) (models.LocalState, error) {
	if userID == "" {
		return local, ErrNotAuthenticated
	}
	log := logger.FromContext(ctx)

	o.status.setSyncing()

	doc, err := o.remote.GetDocument(ctx, userID)
	if err != nil {
		log.Err(err).
			Str("func", "orchestrator.PullOnly").
			Str("user_id", userID).
			Msg("failed to fetch cloud document")
		o.status.setError(err)
		return local, err
	}

	merged, _ := merge.Reconcile(local, doc)
	o.status.setIdle()
	return merged, nil
}

func (o *orchestrator) SyncNow(ctx context.Context, userID string, local models.LocalState) (models.LocalState, error) {
	return o.PullAndMerge(ctx, userID, local)
}

func (o *orchestrator) PushDebounced(ctx context.Context, userID string, state models.LocalState) <-chan error {
	return o.push.schedule(ctx, userID, state)
}

func (o *orchestrator) PushBeforeExit(ctx context.Context, userID string, state models.LocalState) {
	if userID == "" {
		return
	}

	exitCtx, cancel := context.WithTimeout(ctx, o.cfg.ExitTimeout)
	defer cancel()

	syncedAt := o.timestamp()
	state = state.Clone()
	state.Settings.LastSyncedAt = syncedAt

	if err := o.pushDocument(exitCtx, userID, state, syncedAt); err != nil {
		o.logger.Warn().Err(err).
			Str("func", "orchestrator.PushBeforeExit").
			Str("user_id", userID).
			Msg("exit push failed")
		return
	}
	o.status.setSynced(syncedAt)
}

func (o *orchestrator) Status() models.SyncStatus {
	return o.status.current()
}

func (o *orchestrator) Subscribe(fn func(models.SyncStatus)) func() {
	return o.status.subscribe(fn)
}

// pushDocument serialises the full state into a cloud document and upserts
// it. The remote merge-upsert keeps fields this payload omits, so a repeated
// or stale push never destroys data.
func (o *orchestrator) pushDocument(ctx context.Context, userID string, state models.LocalState, syncedAt string) error {
	deviceID, err := o.local.DeviceID(ctx)
	if err != nil {
		return err
	}

	doc := models.NewCloudDocument(userID, deviceID, syncedAt, state)
	return o.remote.UpsertDocument(ctx, userID, doc)
}

// persistLocal writes the merged state back to the local record store. The
// store commits all records in one transaction, so a merge is applied fully
// or not at all.
func (o *orchestrator) persistLocal(ctx context.Context, state models.LocalState) error {
	if err := o.local.SaveState(ctx, state); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "orchestrator.persistLocal").
			Msg("failed to persist merged state")
		return err
	}
	return nil
}

func (o *orchestrator) timestamp() string {
	return o.now().UTC().Format(cloudInstantFormat)
}
