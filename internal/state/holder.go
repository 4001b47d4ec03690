// Package state owns the in-memory LocalState of the running client.
//
// The holder is the single writer of local state: it loads the record store
// once at startup, applies user mutations in memory, commits each mutation
// to the record store synchronously and notifies an optional hook so the
// sync layer can schedule a push. Reads hand out deep copies, never the
// live slices.
package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/internal/store"
	"github.com/fitkeeper/go-fit-keeper/models"
)

// MutationHook is called after every committed mutation with a snapshot of
// the new state. It runs synchronously on the mutating goroutine; hooks that
// need to block should hand off internally (the sync trigger does).
type MutationHook func(models.LocalState)

// Holder keeps the authoritative in-memory LocalState.
type Holder struct {
	local  store.LocalStore
	logger *logger.Logger

	mu    sync.RWMutex
	state models.LocalState
	hook  MutationHook
}

// NewHolder constructs an empty holder. Call Load before first use.
func NewHolder(local store.LocalStore, log *logger.Logger) *Holder {
	return &Holder{
		local:  local,
		logger: log,
	}
}

// SetMutationHook installs the post-commit notification hook. Passing nil
// removes it.
func (h *Holder) SetMutationHook(hook MutationHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hook = hook
}

// Load reads the full state from the record store. Absent records come back
// as zero values, so a fresh installation loads cleanly.
func (h *Holder) Load(ctx context.Context) error {
	settings, err := h.local.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	trainings, err := h.local.GetCustomTrainings(ctx)
	if err != nil {
		return fmt.Errorf("load custom trainings: %w", err)
	}
	history, err := h.local.GetTrainingHistory(ctx)
	if err != nil {
		return fmt.Errorf("load training history: %w", err)
	}
	language, err := h.local.GetLanguage(ctx)
	if err != nil {
		return fmt.Errorf("load language: %w", err)
	}

	h.mu.Lock()
	h.state = models.LocalState{
		Settings:        settings,
		CustomTrainings: trainings,
		TrainingHistory: history,
		Language:        language,
	}
	h.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy of the current state.
func (h *Holder) Snapshot() models.LocalState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state.Clone()
}

// Replace swaps the whole state and commits it to the record store. Used
// when a pull-only sync produced a new state to apply. The mutation hook is
// not notified: sync results must not schedule further pushes.
func (h *Holder) Replace(ctx context.Context, next models.LocalState) error {
	next = next.Clone()
	if err := h.persistAll(ctx, next); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Holder.Replace").
			Msg("failed to persist replaced state")
		return err
	}

	h.mu.Lock()
	h.state = next
	h.mu.Unlock()
	return nil
}

// ApplyMerged installs a state the sync layer has already persisted, without
// re-committing and without notifying the mutation hook.
func (h *Holder) ApplyMerged(next models.LocalState) {
	h.mu.Lock()
	h.state = next.Clone()
	h.mu.Unlock()
}

// UpdateSettings overwrites the user settings.
func (h *Holder) UpdateSettings(ctx context.Context, settings models.UserSettings) error {
	return h.mutate(ctx, func(s *models.LocalState) error {
		s.Settings = settings.Clone()
		return h.local.SaveSettings(ctx, s.Settings)
	})
}

// AddCustomTraining appends a user-authored training. A training with a
// duplicate id replaces the existing one.
func (h *Holder) AddCustomTraining(ctx context.Context, training models.CustomTraining) error {
	return h.mutate(ctx, func(s *models.LocalState) error {
		replaced := false
		for i := range s.CustomTrainings {
			if s.CustomTrainings[i].ID == training.ID {
				s.CustomTrainings[i] = training.Clone()
				replaced = true
				break
			}
		}
		if !replaced {
			s.CustomTrainings = append(s.CustomTrainings, training.Clone())
		}
		return h.local.SaveCustomTrainings(ctx, s.CustomTrainings)
	})
}

// DeleteCustomTraining removes the training with the given id. Deleting an
// unknown id is a no-op that still commits (and so still triggers a push).
func (h *Holder) DeleteCustomTraining(ctx context.Context, id string) error {
	return h.mutate(ctx, func(s *models.LocalState) error {
		kept := s.CustomTrainings[:0]
		for _, tr := range s.CustomTrainings {
			if tr.ID != id {
				kept = append(kept, tr)
			}
		}
		s.CustomTrainings = kept
		return h.local.SaveCustomTrainings(ctx, s.CustomTrainings)
	})
}

// RecordTrainingHistory appends one completed workout. History is
// append-only; entries are never rewritten or removed.
func (h *Holder) RecordTrainingHistory(ctx context.Context, entry models.TrainingHistory) error {
	return h.mutate(ctx, func(s *models.LocalState) error {
		s.TrainingHistory = append(s.TrainingHistory, entry.Clone())
		return h.local.SaveTrainingHistory(ctx, s.TrainingHistory)
	})
}

// SetLanguage changes the UI language.
func (h *Holder) SetLanguage(ctx context.Context, language string) error {
	return h.mutate(ctx, func(s *models.LocalState) error {
		s.Language = language
		return h.local.SaveLanguage(ctx, language)
	})
}

// mutate applies fn under the write lock and notifies the hook with the new
// snapshot. If fn fails the in-memory state may already be changed; callers
// treat a failed commit as fatal for the session, matching the synchronous
// write-through contract.
func (h *Holder) mutate(ctx context.Context, fn func(*models.LocalState) error) error {
	h.mu.Lock()
	err := fn(&h.state)
	snapshot := h.state.Clone()
	hook := h.hook
	h.mu.Unlock()

	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Holder.mutate").
			Msg("failed to commit state mutation")
		return err
	}

	if hook != nil {
		hook(snapshot)
	}
	return nil
}

// persistAll commits the full state through the store's transactional
// write, keeping whole-state replacement all-or-nothing.
func (h *Holder) persistAll(ctx context.Context, s models.LocalState) error {
	return h.local.SaveState(ctx, s)
}
