// SPDX-License-Identifier: Apache-2.0

package sync

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitkeeper/go-fit-keeper/internal/config"
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/models"
)

// stubRemote is an in-memory RemoteStore. failures makes the first N upserts
// fail before succeeding.
type stubRemote struct {
	mu       stdsync.Mutex
	doc      *models.CloudDocument
	getErr   error
	failures int
	upserts  []models.CloudDocument
	getCalls int
	attempts []time.Time
}

func (r *stubRemote) GetDocument(_ context.Context, _ string) (*models.CloudDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.doc == nil {
		return nil, nil
	}
	doc := *r.doc
	return &doc, nil
}

func (r *stubRemote) UpsertDocument(_ context.Context, _ string, doc models.CloudDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, time.Now())
	if r.failures > 0 {
		r.failures--
		return fmt.Errorf("upsert refused")
	}
	r.upserts = append(r.upserts, doc)
	return nil
}

func (r *stubRemote) SetToken(string) {}

func (r *stubRemote) upsertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.upserts)
}

func (r *stubRemote) attemptTimes() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Time, len(r.attempts))
	copy(out, r.attempts)
	return out
}

func (r *stubRemote) lastUpsert(t *testing.T) models.CloudDocument {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.upserts)
	return r.upserts[len(r.upserts)-1]
}

// stubLocal is an in-memory LocalStore that counts writes.
type stubLocal struct {
	mu        stdsync.Mutex
	settings  models.UserSettings
	history   []models.TrainingHistory
	trainings []models.CustomTraining
	language  string
	saves     int
	stateErr  error
}

func (l *stubLocal) GetSettings(context.Context) (models.UserSettings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings, nil
}

func (l *stubLocal) SaveSettings(_ context.Context, s models.UserSettings) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings = s
	l.saves++
	return nil
}

func (l *stubLocal) GetTrainingHistory(context.Context) ([]models.TrainingHistory, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.history, nil
}

func (l *stubLocal) SaveTrainingHistory(_ context.Context, h []models.TrainingHistory) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = h
	l.saves++
	return nil
}

func (l *stubLocal) GetCustomTrainings(context.Context) ([]models.CustomTraining, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.trainings, nil
}

func (l *stubLocal) SaveCustomTrainings(_ context.Context, tr []models.CustomTraining) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trainings = tr
	l.saves++
	return nil
}

func (l *stubLocal) GetLanguage(context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.language, nil
}

func (l *stubLocal) SaveLanguage(_ context.Context, lang string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.language = lang
	l.saves++
	return nil
}

// SaveState mirrors the real store's transactional contract: when stateErr
// is set nothing is applied, otherwise everything is.
func (l *stubLocal) SaveState(_ context.Context, s models.LocalState) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stateErr != nil {
		return l.stateErr
	}
	l.settings = s.Settings
	l.trainings = s.CustomTrainings
	l.history = s.TrainingHistory
	if s.Language != "" {
		l.language = s.Language
	}
	l.saves++
	return nil
}

func (l *stubLocal) DeviceID(context.Context) (string, error) {
	return "device-test", nil
}

func (l *stubLocal) saveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saves
}

func fastSyncConfig() config.Sync {
	return config.Sync{
		DebounceWindow: 50 * time.Millisecond,
		MaxAttempts:    3,
		AttemptTimeout: 500 * time.Millisecond,
		ExitTimeout:    200 * time.Millisecond,
		BaseBackoff:    5 * time.Millisecond,
	}
}

func newTestOrchestrator(remote *stubRemote, local *stubLocal) *orchestrator {
	o := NewOrchestrator(remote, local, fastSyncConfig(), logger.Nop()).(*orchestrator)
	o.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return o
}

func localStateFixture() models.LocalState {
	return models.LocalState{
		Settings: models.UserSettings{
			UserName:     "Anna",
			UnitSystem:   models.UnitSystemMetric,
			LastSyncedAt: "2026-08-29T10:00:00.000Z",
		},
		CustomTrainings: []models.CustomTraining{
			{ID: "ct-1", Name: "Neck Relief", CreatedAt: "2026-08-20T08:00:00.000Z"},
		},
		TrainingHistory: []models.TrainingHistory{
			{ID: "h-1", TrainingID: "1", TrainingName: "Morning Stretch", Date: "2026-08-28T07:00:00.000Z"},
		},
		Language: "en",
	}
}

func waitPush(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for push result")
		return nil
	}
}

// ── PullAndMerge ─────────────────────────────────────────────────────────────

func TestPullAndMerge_NotAuthenticated(t *testing.T) {
	remote := &stubRemote{}
	o := newTestOrchestrator(remote, &stubLocal{})
	local := localStateFixture()

	got, err := o.PullAndMerge(context.Background(), "", local)

	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, local, got)
	assert.Zero(t, remote.getCalls)
}

func TestPullAndMerge_FirstSyncPushesLocalState(t *testing.T) {
	remote := &stubRemote{} // no cloud document yet
	localStore := &stubLocal{}
	o := newTestOrchestrator(remote, localStore)
	local := localStateFixture()

	got, err := o.PullAndMerge(context.Background(), "user-1", local)

	require.NoError(t, err)
	require.Equal(t, 1, remote.upsertCount())

	doc := remote.lastUpsert(t)
	assert.Equal(t, "user-1", doc.UserID)
	assert.Equal(t, "device-test", doc.DeviceID)
	assert.Equal(t, "2026-08-30T12:00:00.000Z", doc.LastSyncedAt)
	assert.Equal(t, local.CustomTrainings, doc.CustomTrainings)

	// merged state carries the fresh sync stamp and was persisted
	assert.Equal(t, "2026-08-30T12:00:00.000Z", got.Settings.LastSyncedAt)
	assert.Positive(t, localStore.saveCount())
	assert.Equal(t, "2026-08-30T12:00:00.000Z", o.Status().LastSyncedAt)
}

func TestPullAndMerge_NoChangesSkipsPushAndPersist(t *testing.T) {
	local := localStateFixture()
	doc := models.NewCloudDocument("user-1", "device-other", local.Settings.LastSyncedAt, local)
	remote := &stubRemote{doc: &doc}
	localStore := &stubLocal{}
	o := newTestOrchestrator(remote, localStore)

	got, err := o.PullAndMerge(context.Background(), "user-1", local)

	require.NoError(t, err)
	assert.Zero(t, remote.upsertCount())
	assert.Zero(t, localStore.saveCount())
	assert.Equal(t, local, got)
	assert.False(t, o.Status().IsSyncing)
}

func TestPullAndMerge_RemoteAdditionsArePushedBack(t *testing.T) {
	local := localStateFixture()

	remoteState := local.Clone()
	remoteState.TrainingHistory = append(remoteState.TrainingHistory,
		models.TrainingHistory{ID: "h-2", TrainingID: "2", TrainingName: "Full Body Flexibility", Date: "2026-08-29T07:00:00.000Z"})
	doc := models.NewCloudDocument("user-1", "device-other", "2026-08-29T12:00:00.000Z", remoteState)
	remote := &stubRemote{doc: &doc}
	localStore := &stubLocal{}
	o := newTestOrchestrator(remote, localStore)

	got, err := o.PullAndMerge(context.Background(), "user-1", local)

	require.NoError(t, err)
	assert.Len(t, got.TrainingHistory, 2)
	assert.Equal(t, 1, remote.upsertCount())
	assert.Len(t, localStore.history, 2)
}

// TestPullAndMerge_PersistFailureIsAllOrNothing verifies that a failed
// write-back applies nothing: the caller gets the input state back and the
// store holds no subset of the merge result.
func TestPullAndMerge_PersistFailureIsAllOrNothing(t *testing.T) {
	local := localStateFixture()

	remoteState := local.Clone()
	remoteState.TrainingHistory = append(remoteState.TrainingHistory,
		models.TrainingHistory{ID: "h-2", TrainingID: "2", TrainingName: "Full Body Flexibility", Date: "2026-08-29T07:00:00.000Z"})
	doc := models.NewCloudDocument("user-1", "device-other", "2026-08-29T12:00:00.000Z", remoteState)
	remote := &stubRemote{doc: &doc}
	localStore := &stubLocal{stateErr: errors.New("disk I/O error")}
	o := newTestOrchestrator(remote, localStore)

	got, err := o.PullAndMerge(context.Background(), "user-1", local)

	require.Error(t, err)
	assert.Equal(t, local, got)
	assert.Zero(t, localStore.saveCount())
	assert.Empty(t, localStore.history)
	assert.Empty(t, localStore.settings.UserName)
}

func TestPullAndMerge_FetchErrorLeavesLocalUntouched(t *testing.T) {
	remote := &stubRemote{getErr: errors.New("connection refused")}
	localStore := &stubLocal{}
	o := newTestOrchestrator(remote, localStore)
	local := localStateFixture()

	got, err := o.PullAndMerge(context.Background(), "user-1", local)

	require.Error(t, err)
	assert.Equal(t, local, got)
	assert.Zero(t, localStore.saveCount())
	assert.NotEmpty(t, o.Status().Error)
}

// ── PullOnly ─────────────────────────────────────────────────────────────────

func TestPullOnly_NeverWrites(t *testing.T) {
	local := localStateFixture()

	remoteState := local.Clone()
	remoteState.TrainingHistory = append(remoteState.TrainingHistory,
		models.TrainingHistory{ID: "h-2", TrainingID: "2", TrainingName: "Full Body Flexibility", Date: "2026-08-29T07:00:00.000Z"})
	doc := models.NewCloudDocument("user-1", "device-other", "2026-08-29T12:00:00.000Z", remoteState)
	remote := &stubRemote{doc: &doc}
	localStore := &stubLocal{}
	o := newTestOrchestrator(remote, localStore)

	got, err := o.PullOnly(context.Background(), "user-1", local)

	require.NoError(t, err)
	assert.Len(t, got.TrainingHistory, 2)
	assert.Zero(t, remote.upsertCount())
	assert.Zero(t, localStore.saveCount())
}

func TestPullOnly_NotAuthenticated(t *testing.T) {
	o := newTestOrchestrator(&stubRemote{}, &stubLocal{})

	_, err := o.PullOnly(context.Background(), "", localStateFixture())

	require.ErrorIs(t, err, ErrNotAuthenticated)
}

// ── PushDebounced ────────────────────────────────────────────────────────────

func TestPushDebounced_CoalescesBurstIntoOnePush(t *testing.T) {
	remote := &stubRemote{}
	o := newTestOrchestrator(remote, &stubLocal{})
	ctx := context.Background()

	first := localStateFixture()
	first.Language = "en"
	second := first.Clone()
	second.Language = "de"
	third := first.Clone()
	third.Language = "ru"

	done1 := o.PushDebounced(ctx, "user-1", first)
	done2 := o.PushDebounced(ctx, "user-1", second)
	done3 := o.PushDebounced(ctx, "user-1", third)

	// superseded waiters resolve nil without a push having happened
	require.NoError(t, waitPush(t, done1))
	require.NoError(t, waitPush(t, done2))
	require.NoError(t, waitPush(t, done3))

	assert.Equal(t, 1, remote.upsertCount())
	assert.Equal(t, "ru", remote.lastUpsert(t).Language)
}

func TestPushDebounced_RetriesUntilSuccess(t *testing.T) {
	remote := &stubRemote{failures: 2}
	o := newTestOrchestrator(remote, &stubLocal{})

	done := o.PushDebounced(context.Background(), "user-1", localStateFixture())

	require.NoError(t, waitPush(t, done))
	assert.Equal(t, 1, remote.upsertCount())
}

// TestPushDebounced_RetryBackoffSpacing verifies the retry budget shape:
// exactly MaxAttempts attempts, with exponentially growing gaps between
// them (base, then double the base).
func TestPushDebounced_RetryBackoffSpacing(t *testing.T) {
	remote := &stubRemote{failures: 2}
	local := &stubLocal{}
	cfg := fastSyncConfig()
	cfg.BaseBackoff = 60 * time.Millisecond
	o := NewOrchestrator(remote, local, cfg, logger.Nop()).(*orchestrator)

	done := o.PushDebounced(context.Background(), "user-1", localStateFixture())

	require.NoError(t, waitPush(t, done))

	attempts := remote.attemptTimes()
	require.Len(t, attempts, 3)
	assert.GreaterOrEqual(t, attempts[1].Sub(attempts[0]), cfg.BaseBackoff)
	assert.GreaterOrEqual(t, attempts[2].Sub(attempts[1]), 2*cfg.BaseBackoff)
}

// TestPushDebounced_StaleTimerYieldsToRestartedWindow pins the generation
// guard: a timer callback from a superseded window must not push the newer
// request before its own debounce window elapses.
func TestPushDebounced_StaleTimerYieldsToRestartedWindow(t *testing.T) {
	remote := &stubRemote{}
	o := newTestOrchestrator(remote, &stubLocal{})

	done := o.PushDebounced(context.Background(), "user-1", localStateFixture())

	// A callback armed before the schedule call carries an older generation.
	o.push.fire(o.push.gen - 1)
	assert.Zero(t, remote.upsertCount())

	// The current window still delivers exactly one push.
	require.NoError(t, waitPush(t, done))
	assert.Equal(t, 1, remote.upsertCount())
}

func TestPushDebounced_ExhaustionSurfacesErrSyncFailed(t *testing.T) {
	remote := &stubRemote{failures: 100}
	o := newTestOrchestrator(remote, &stubLocal{})

	done := o.PushDebounced(context.Background(), "user-1", localStateFixture())

	err := waitPush(t, done)
	require.ErrorIs(t, err, ErrSyncFailed)
	assert.Zero(t, remote.upsertCount())
	assert.NotEmpty(t, o.Status().Error)
}

func TestPushDebounced_SignedOutResolvesImmediately(t *testing.T) {
	remote := &stubRemote{}
	o := newTestOrchestrator(remote, &stubLocal{})

	done := o.PushDebounced(context.Background(), "", localStateFixture())

	require.NoError(t, waitPush(t, done))
	assert.Zero(t, remote.upsertCount())
}

func TestPushDebounced_StampsAndPersistsSyncInstant(t *testing.T) {
	remote := &stubRemote{}
	localStore := &stubLocal{}
	o := newTestOrchestrator(remote, localStore)

	done := o.PushDebounced(context.Background(), "user-1", localStateFixture())

	require.NoError(t, waitPush(t, done))
	doc := remote.lastUpsert(t)
	assert.Equal(t, "2026-08-30T12:00:00.000Z", doc.LastSyncedAt)
	assert.Equal(t, "2026-08-30T12:00:00.000Z", doc.Settings.LastSyncedAt)
	assert.Equal(t, "2026-08-30T12:00:00.000Z", localStore.settings.LastSyncedAt)
}

// ── PushBeforeExit ───────────────────────────────────────────────────────────

func TestPushBeforeExit_PushesOnce(t *testing.T) {
	remote := &stubRemote{}
	o := newTestOrchestrator(remote, &stubLocal{})

	o.PushBeforeExit(context.Background(), "user-1", localStateFixture())

	assert.Equal(t, 1, remote.upsertCount())
	assert.Equal(t, "2026-08-30T12:00:00.000Z", o.Status().LastSyncedAt)
}

func TestPushBeforeExit_SwallowsErrors(t *testing.T) {
	remote := &stubRemote{failures: 100}
	o := newTestOrchestrator(remote, &stubLocal{})

	// must not retry, must not panic, must not surface the failure
	o.PushBeforeExit(context.Background(), "user-1", localStateFixture())

	assert.Zero(t, remote.upsertCount())
}

func TestPushBeforeExit_SignedOutIsNoOp(t *testing.T) {
	remote := &stubRemote{}
	o := newTestOrchestrator(remote, &stubLocal{})

	o.PushBeforeExit(context.Background(), "", localStateFixture())

	assert.Zero(t, remote.upsertCount())
}

// ── Status ───────────────────────────────────────────────────────────────────

func TestStatus_SubscribeObservesTransitions(t *testing.T) {
	remote := &stubRemote{}
	o := newTestOrchestrator(remote, &stubLocal{})

	var mu stdsync.Mutex
	var seen []models.SyncStatus
	unsubscribe := o.Subscribe(func(s models.SyncStatus) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})
	defer unsubscribe()

	_, err := o.PullAndMerge(context.Background(), "user-1", localStateFixture())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(seen), 2)
	assert.True(t, seen[0].IsSyncing)
	last := seen[len(seen)-1]
	assert.False(t, last.IsSyncing)
	assert.NotEmpty(t, last.LastSyncedAt)
}

func TestStatus_UnsubscribeStopsDelivery(t *testing.T) {
	o := newTestOrchestrator(&stubRemote{}, &stubLocal{})

	calls := 0
	unsubscribe := o.Subscribe(func(models.SyncStatus) { calls++ })
	unsubscribe()

	_, err := o.PullAndMerge(context.Background(), "user-1", localStateFixture())
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestSyncStatus_State(t *testing.T) {
	assert.Equal(t, models.SyncStateIdle, models.SyncStatus{}.State())
	assert.Equal(t, models.SyncStateSyncing, models.SyncStatus{IsSyncing: true}.State())
	assert.Equal(t, models.SyncStateError, models.SyncStatus{Error: "boom"}.State())
}

// ── FormatTimeSince ──────────────────────────────────────────────────────────

func TestFormatTimeSince(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		stamp  string
		expect string
	}{
		{"empty stamp", "", "never"},
		{"malformed stamp", "yesterday", "never"},
		{"just now", "2026-08-30T11:59:55.000Z", "just now"},
		{"seconds", "2026-08-30T11:59:30.000Z", "30s ago"},
		{"minutes", "2026-08-30T11:45:00.000Z", "15m ago"},
		{"hours", "2026-08-30T09:00:00.000Z", "3h ago"},
		{"days", "2026-08-27T12:00:00.000Z", "3d ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, FormatTimeSince(tc.stamp, now))
		})
	}
}
