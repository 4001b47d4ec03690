// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"

	"github.com/fitkeeper/go-fit-keeper/internal/identity"
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/internal/state"
	"github.com/fitkeeper/go-fit-keeper/internal/sync"
	"github.com/fitkeeper/go-fit-keeper/models"
)

// LifecycleEvent is an app lifecycle transition fed to the sync trigger by
// the client shell.
type LifecycleEvent int

const (
	// Foreground fires when the app becomes active again.
	Foreground LifecycleEvent = iota
	// Background fires when the app is about to be backgrounded or closed.
	Background
)

// SyncTriggerWorker converts the three sync triggers into orchestrator
// calls:
//
//   - sign-in: full bidirectional sync, merged state applied;
//   - foreground: pull-only sync, merged state applied and persisted;
//   - background: single best-effort exit push;
//   - local mutation (via the state holder's hook): debounced push.
//
// The worker owns no sync policy itself; retries, debouncing and timeouts
// all live in the orchestrator.
type SyncTriggerWorker struct {
	ctx          context.Context
	identity     identity.Provider
	holder       *state.Holder
	orchestrator sync.Orchestrator
	lifecycle    <-chan LifecycleEvent
	logger       *logger.Logger
}

// NewSyncTriggerWorker wires the trigger worker. lifecycle may be nil for
// headless setups that only want mutation- and identity-driven sync.
func NewSyncTriggerWorker(
	ctx context.Context,
	provider identity.Provider,
	holder *state.Holder,
	orchestrator sync.Orchestrator,
	lifecycle <-chan LifecycleEvent,
	log *logger.Logger,
) *SyncTriggerWorker {
	return &SyncTriggerWorker{
		ctx:          ctx,
		identity:     provider,
		holder:       holder,
		orchestrator: orchestrator,
		lifecycle:    lifecycle,
		logger:       log,
	}
}

// Run implements Worker. It installs the mutation hook and starts the event
// loop goroutine; Run itself returns immediately.
func (w *SyncTriggerWorker) Run() {
	w.holder.SetMutationHook(w.onMutation)
	go w.loop()
}

func (w *SyncTriggerWorker) loop() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case event := <-w.identity.Events():
			w.onIdentityEvent(event)
		case event := <-w.lifecycle:
			w.onLifecycleEvent(event)
		}
	}
}

func (w *SyncTriggerWorker) onIdentityEvent(event identity.Event) {
	if event.Kind != identity.SignedIn {
		return
	}

	merged, err := w.orchestrator.PullAndMerge(w.ctx, event.UserID, w.holder.Snapshot())
	if err != nil {
		w.logger.Warn().Err(err).
			Str("func", "SyncTriggerWorker.onIdentityEvent").
			Str("user_id", event.UserID).
			Msg("login sync failed")
		return
	}
	w.holder.ApplyMerged(merged)
}

func (w *SyncTriggerWorker) onLifecycleEvent(event LifecycleEvent) {
	userID, ok := w.identity.UserID()
	if !ok {
		return
	}

	switch event {
	case Foreground:
		merged, err := w.orchestrator.PullOnly(w.ctx, userID, w.holder.Snapshot())
		if err != nil {
			w.logger.Warn().Err(err).
				Str("func", "SyncTriggerWorker.onLifecycleEvent").
				Str("user_id", userID).
				Msg("foreground sync failed")
			return
		}
		if err = w.holder.Replace(w.ctx, merged); err != nil {
			w.logger.Warn().Err(err).
				Str("func", "SyncTriggerWorker.onLifecycleEvent").
				Msg("failed to apply foreground sync result")
		}
	case Background:
		w.orchestrator.PushBeforeExit(w.ctx, userID, w.holder.Snapshot())
	}
}

// onMutation runs synchronously on the mutating goroutine; scheduling a
// debounced push never blocks, and the outcome is drained in the background
// purely for logging.
func (w *SyncTriggerWorker) onMutation(snapshot models.LocalState) {
	userID, ok := w.identity.UserID()
	if !ok {
		return
	}

	done := w.orchestrator.PushDebounced(w.ctx, userID, snapshot)
	go func() {
		if err := <-done; err != nil {
			w.logger.Warn().Err(err).
				Str("func", "SyncTriggerWorker.onMutation").
				Str("user_id", userID).
				Msg("debounced push failed")
		}
	}()
}
