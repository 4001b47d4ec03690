package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/models"
)

// memoryStore is an in-memory LocalStore. saveErr, when set, fails every
// write.
type memoryStore struct {
	settings  models.UserSettings
	trainings []models.CustomTraining
	history   []models.TrainingHistory
	language  string
	saveErr   error
	saves     int
}

func (m *memoryStore) GetSettings(context.Context) (models.UserSettings, error) {
	return m.settings, nil
}

func (m *memoryStore) SaveSettings(_ context.Context, s models.UserSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = s
	m.saves++
	return nil
}

func (m *memoryStore) GetCustomTrainings(context.Context) ([]models.CustomTraining, error) {
	return m.trainings, nil
}

func (m *memoryStore) SaveCustomTrainings(_ context.Context, tr []models.CustomTraining) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.trainings = tr
	m.saves++
	return nil
}

func (m *memoryStore) GetTrainingHistory(context.Context) ([]models.TrainingHistory, error) {
	return m.history, nil
}

func (m *memoryStore) SaveTrainingHistory(_ context.Context, h []models.TrainingHistory) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.history = h
	m.saves++
	return nil
}

func (m *memoryStore) GetLanguage(context.Context) (string, error) {
	return m.language, nil
}

func (m *memoryStore) SaveLanguage(_ context.Context, lang string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.language = lang
	m.saves++
	return nil
}

func (m *memoryStore) SaveState(_ context.Context, s models.LocalState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = s.Settings
	m.trainings = s.CustomTrainings
	m.history = s.TrainingHistory
	if s.Language != "" {
		m.language = s.Language
	}
	m.saves++
	return nil
}

func (m *memoryStore) DeviceID(context.Context) (string, error) {
	return "device-test", nil
}

func newLoadedHolder(t *testing.T, store *memoryStore) *Holder {
	t.Helper()
	h := NewHolder(store, logger.Nop())
	require.NoError(t, h.Load(context.Background()))
	return h
}

func TestHolder_LoadAndSnapshot(t *testing.T) {
	store := &memoryStore{
		settings: models.UserSettings{UserName: "Anna"},
		trainings: []models.CustomTraining{
			{ID: "ct-1", Name: "Neck Relief", CreatedAt: "2026-08-20T08:00:00.000Z"},
		},
		language: "de",
	}
	h := newLoadedHolder(t, store)

	snap := h.Snapshot()

	assert.Equal(t, "Anna", snap.Settings.UserName)
	assert.Len(t, snap.CustomTrainings, 1)
	assert.Equal(t, "de", snap.Language)
}

func TestHolder_SnapshotIsDeepCopy(t *testing.T) {
	store := &memoryStore{
		trainings: []models.CustomTraining{{ID: "ct-1", Name: "Neck Relief"}},
	}
	h := newLoadedHolder(t, store)

	snap := h.Snapshot()
	snap.CustomTrainings[0].Name = "mutated"

	assert.Equal(t, "Neck Relief", h.Snapshot().CustomTrainings[0].Name)
}

func TestHolder_UpdateSettingsCommitsAndNotifies(t *testing.T) {
	store := &memoryStore{}
	h := newLoadedHolder(t, store)

	var hooked *models.LocalState
	h.SetMutationHook(func(s models.LocalState) { hooked = &s })

	err := h.UpdateSettings(context.Background(), models.UserSettings{UserName: "Boris"})

	require.NoError(t, err)
	assert.Equal(t, "Boris", store.settings.UserName)
	require.NotNil(t, hooked)
	assert.Equal(t, "Boris", hooked.Settings.UserName)
}

func TestHolder_AddCustomTraining(t *testing.T) {
	store := &memoryStore{}
	h := newLoadedHolder(t, store)
	ctx := context.Background()

	require.NoError(t, h.AddCustomTraining(ctx, models.CustomTraining{ID: "ct-1", Name: "Neck Relief"}))
	require.NoError(t, h.AddCustomTraining(ctx, models.CustomTraining{ID: "ct-2", Name: "Back Care"}))

	assert.Len(t, h.Snapshot().CustomTrainings, 2)

	// same id replaces instead of duplicating
	require.NoError(t, h.AddCustomTraining(ctx, models.CustomTraining{ID: "ct-1", Name: "Neck Relief v2"}))

	snap := h.Snapshot()
	assert.Len(t, snap.CustomTrainings, 2)
	assert.Equal(t, "Neck Relief v2", snap.CustomTrainings[0].Name)
}

func TestHolder_DeleteCustomTraining(t *testing.T) {
	store := &memoryStore{
		trainings: []models.CustomTraining{
			{ID: "ct-1", Name: "Neck Relief"},
			{ID: "ct-2", Name: "Back Care"},
		},
	}
	h := newLoadedHolder(t, store)

	require.NoError(t, h.DeleteCustomTraining(context.Background(), "ct-1"))

	snap := h.Snapshot()
	require.Len(t, snap.CustomTrainings, 1)
	assert.Equal(t, "ct-2", snap.CustomTrainings[0].ID)
}

func TestHolder_DeleteUnknownTrainingStillNotifies(t *testing.T) {
	store := &memoryStore{}
	h := newLoadedHolder(t, store)

	notified := false
	h.SetMutationHook(func(models.LocalState) { notified = true })

	require.NoError(t, h.DeleteCustomTraining(context.Background(), "ghost"))
	assert.True(t, notified)
}

func TestHolder_RecordTrainingHistoryAppends(t *testing.T) {
	store := &memoryStore{}
	h := newLoadedHolder(t, store)
	ctx := context.Background()

	require.NoError(t, h.RecordTrainingHistory(ctx, models.TrainingHistory{ID: "h-1", TrainingID: "1"}))
	require.NoError(t, h.RecordTrainingHistory(ctx, models.TrainingHistory{ID: "h-2", TrainingID: "2"}))

	assert.Len(t, h.Snapshot().TrainingHistory, 2)
	assert.Len(t, store.history, 2)
}

func TestHolder_SetLanguage(t *testing.T) {
	store := &memoryStore{}
	h := newLoadedHolder(t, store)

	require.NoError(t, h.SetLanguage(context.Background(), "ru"))

	assert.Equal(t, "ru", h.Snapshot().Language)
	assert.Equal(t, "ru", store.language)
}

func TestHolder_ReplacePersistsEverything(t *testing.T) {
	store := &memoryStore{}
	h := newLoadedHolder(t, store)

	next := models.LocalState{
		Settings:        models.UserSettings{UserName: "Clara"},
		CustomTrainings: []models.CustomTraining{{ID: "ct-9"}},
		TrainingHistory: []models.TrainingHistory{{ID: "h-9"}},
		Language:        "fr",
	}

	require.NoError(t, h.Replace(context.Background(), next))

	assert.Equal(t, "Clara", store.settings.UserName)
	assert.Len(t, store.trainings, 1)
	assert.Len(t, store.history, 1)
	assert.Equal(t, "fr", store.language)
}

// TestHolder_ReplaceFailureAppliesNothing verifies the all-or-nothing
// contract of whole-state replacement: a storage failure leaves both the
// store and the in-memory state untouched.
func TestHolder_ReplaceFailureAppliesNothing(t *testing.T) {
	store := &memoryStore{settings: models.UserSettings{UserName: "Anna"}}
	h := newLoadedHolder(t, store)
	store.saveErr = errors.New("disk I/O error")

	next := models.LocalState{
		Settings:        models.UserSettings{UserName: "Clara"},
		TrainingHistory: []models.TrainingHistory{{ID: "h-9"}},
	}

	require.Error(t, h.Replace(context.Background(), next))

	assert.Equal(t, "Anna", store.settings.UserName)
	assert.Empty(t, store.history)
	assert.Equal(t, "Anna", h.Snapshot().Settings.UserName)
}

func TestHolder_ApplyMergedSkipsPersistAndHook(t *testing.T) {
	store := &memoryStore{}
	h := newLoadedHolder(t, store)

	notified := false
	h.SetMutationHook(func(models.LocalState) { notified = true })

	h.ApplyMerged(models.LocalState{Language: "es"})

	assert.Equal(t, "es", h.Snapshot().Language)
	assert.False(t, notified)
	assert.Zero(t, store.saves)
}

func TestHolder_ReplaceDoesNotNotifyHook(t *testing.T) {
	store := &memoryStore{}
	h := newLoadedHolder(t, store)

	notified := false
	h.SetMutationHook(func(models.LocalState) { notified = true })

	require.NoError(t, h.Replace(context.Background(), models.LocalState{Language: "fr"}))

	assert.Equal(t, "fr", store.language)
	assert.False(t, notified)
}

func TestHolder_FailedCommitPropagatesAndSkipsHook(t *testing.T) {
	store := &memoryStore{saveErr: errors.New("disk full")}
	h := newLoadedHolder(t, store)

	notified := false
	h.SetMutationHook(func(models.LocalState) { notified = true })

	err := h.SetLanguage(context.Background(), "ru")

	require.Error(t, err)
	assert.False(t, notified)
}
