// SPDX-License-Identifier: Apache-2.0

// Package merge implements the reconciliation engine that combines a
// device-local state snapshot with the remote cloud document into a single
// resolved state.
//
// Reconcile is a pure function: no I/O, no clock access, no error paths.
// Conflict handling is deliberately simple: whole-object last-write-wins
// for settings, additive union for history, createdAt-based update for
// custom trainings. A rare concurrent edit on two devices may silently
// drop one device's change; the app's offline-first model accepts that.
package merge

import (
	"reflect"
	"time"

	"github.com/fitkeeper/go-fit-keeper/models"
)

// Reconcile merges local state with the remote document and reports whether
// the result differs from the local input.
//
// A nil remote means the user has no cloud document yet (first sync for this
// account): local state is returned unchanged and the caller's subsequent
// push seeds the cloud side.
//
// Rules applied per field:
//   - Settings: the side with the chronologically later lastSyncedAt wins
//     wholesale. A missing or malformed remote timestamp degrades to "local
//     wins"; a missing local timestamp with a valid remote one means remote
//     wins.
//   - TrainingHistory: union by id. Local order is preserved, remote-only
//     entries are appended in the remote document's order. Nothing is ever
//     removed or overwritten.
//   - CustomTrainings: union by id. On id collision the remote copy replaces
//     the local one only if its createdAt is strictly later; ties keep local.
//   - Language: remote wins when non-empty.
func Reconcile(local models.LocalState, remote *models.CloudDocument) (models.LocalState, bool) {
	if remote == nil {
		return local, false
	}

	merged := models.LocalState{
		Settings:        mergeSettings(local.Settings, remote.Settings),
		TrainingHistory: mergeHistory(local.TrainingHistory, remote.TrainingHistory),
		CustomTrainings: mergeTrainings(local.CustomTrainings, remote.CustomTrainings),
		Language:        mergeLanguage(local.Language, remote.Language),
	}

	shouldUpdate := !reflect.DeepEqual(merged.Settings, local.Settings) ||
		!reflect.DeepEqual(merged.TrainingHistory, local.TrainingHistory) ||
		!reflect.DeepEqual(merged.CustomTrainings, local.CustomTrainings) ||
		merged.Language != local.Language

	return merged, shouldUpdate
}

// mergeSettings applies whole-object last-write-wins. Settings are never
// field-merged: the later snapshot replaces the earlier one entirely.
func mergeSettings(local, remote models.UserSettings) models.UserSettings {
	switch {
	case remote.LastSyncedAt != "" && local.LastSyncedAt != "":
		remoteAt, remoteOK := parseInstant(remote.LastSyncedAt)
		localAt, localOK := parseInstant(local.LastSyncedAt)
		if remoteOK && localOK && remoteAt.After(localAt) {
			return remote
		}
		// ties and malformed timestamps keep local
		return local
	case remote.LastSyncedAt != "":
		// only the remote side has ever synced
		if _, ok := parseInstant(remote.LastSyncedAt); ok {
			return remote
		}
		return local
	default:
		// local-only timestamp or neither present
		return local
	}
}

// mergeHistory produces the id-union of both lists. History is append-only
// and merge-safe by construction: every local entry survives unmodified.
func mergeHistory(local, remote []models.TrainingHistory) []models.TrainingHistory {
	seen := make(map[string]struct{}, len(local))
	for _, entry := range local {
		seen[entry.ID] = struct{}{}
	}

	var additions []models.TrainingHistory
	for _, entry := range remote {
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		additions = append(additions, entry)
	}
	if len(additions) == 0 {
		return local
	}

	// copy so that appends never write into the caller's backing array
	merged := make([]models.TrainingHistory, 0, len(local)+len(additions))
	merged = append(merged, local...)
	return append(merged, additions...)
}

// mergeTrainings unions both lists by id with update-on-conflict: a remote
// copy replaces the local one only when its createdAt is strictly later.
// Trainings are otherwise immutable by id, so this models the rare case of
// a rename on another device propagating here.
func mergeTrainings(local, remote []models.CustomTraining) []models.CustomTraining {
	index := make(map[string]int, len(local))
	for i, t := range local {
		index[t.ID] = i
	}

	var changed bool
	merged := make([]models.CustomTraining, len(local), len(local)+len(remote))
	copy(merged, local)

	for _, rt := range remote {
		i, ok := index[rt.ID]
		if !ok {
			merged = append(merged, rt)
			changed = true
			continue
		}

		remoteAt, remoteOK := parseInstant(rt.CreatedAt)
		localAt, localOK := parseInstant(merged[i].CreatedAt)
		if remoteOK && localOK && remoteAt.After(localAt) {
			merged[i] = rt
			changed = true
		}
	}

	if !changed {
		// hand the original slice back so an untouched nil stays nil
		return local
	}
	return merged
}

func mergeLanguage(local, remote string) string {
	if remote != "" {
		return remote
	}
	return local
}

// parseInstant parses an ISO-8601 timestamp. The second return is false for
// empty or malformed values, which callers treat as "absent" so that bad
// data degrades to keeping local state instead of failing the merge.
func parseInstant(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
