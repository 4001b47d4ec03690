package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fitkeeper/go-fit-keeper/internal/adapter"
	"github.com/fitkeeper/go-fit-keeper/internal/config"
	"github.com/fitkeeper/go-fit-keeper/internal/identity"
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/internal/state"
	"github.com/fitkeeper/go-fit-keeper/internal/store"
	syncpkg "github.com/fitkeeper/go-fit-keeper/internal/sync"
	"github.com/fitkeeper/go-fit-keeper/internal/workers"
	"github.com/fitkeeper/go-fit-keeper/models"
)

// App is the client application runtime facade.
//
// A UI shell interacts with the sync engine exclusively through App: it
// signs the user in and out, mutates local state, reports lifecycle
// transitions, and subscribes to sync status updates. Every mutation made
// through App is committed to local storage first and then scheduled for a
// debounced cloud push; the app remains fully usable when the backend is
// unreachable.
var _ Client = (*App)(nil)

type App struct {
	remote   adapter.RemoteStore
	identity *identity.TokenProvider
	holder   *state.Holder
	sync     syncpkg.Orchestrator

	lifecycle chan workers.LifecycleEvent
	workers   *workers.Workers

	logger *logger.Logger
}

// NewApp wires the client runtime from the given configuration. The local
// SQLite store is opened (and its schema created) eagerly so that a broken
// storage path fails fast instead of on the first mutation.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	remote := adapter.NewHTTPRemoteStore(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.BaseURL,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	return &App{
		remote:    remote,
		identity:  identity.NewTokenProvider(),
		holder:    state.NewHolder(storages.Records, log),
		sync:      syncpkg.NewOrchestrator(remote, storages.Records, cfg.Sync, log),
		lifecycle: make(chan workers.LifecycleEvent, 4),
		logger:    log,
	}, nil
}

// Run loads persisted state, starts the background sync trigger worker, and
// blocks until the process receives a stop signal. On shutdown a single
// best-effort exit push is attempted for signed-in users.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := a.holder.Load(ctx); err != nil {
		return fmt.Errorf("load local state: %w", err)
	}

	a.workers = workers.NewWorkers(
		workers.NewSyncTriggerWorker(ctx, a.identity, a.holder, a.sync, a.lifecycle, a.logger),
	)
	a.workers.Run()

	a.logger.Info().Msg("client runtime started")
	<-ctx.Done()

	if userID, ok := a.identity.UserID(); ok {
		a.sync.PushBeforeExit(context.Background(), userID, a.holder.Snapshot())
	}

	a.logger.Info().Msg("client runtime stopped")
	return nil
}

// SignIn installs the backend-issued bearer token. The token subject
// becomes the active identity; a change of subject triggers a full
// bidirectional sync in the background.
func (a *App) SignIn(token string) error {
	a.remote.SetToken(token)
	return a.identity.SetToken(token)
}

// SignOut clears the active identity. Local state is kept so the app stays
// usable offline; pushes are suspended until the next sign-in.
func (a *App) SignOut() {
	a.remote.SetToken("")
	a.identity.Clear()
}

// NotifyForeground reports that the app became active again, triggering a
// pull-only refresh.
func (a *App) NotifyForeground() {
	a.lifecycle <- workers.Foreground
}

// NotifyBackground reports that the app is about to be backgrounded,
// triggering a best-effort exit push.
func (a *App) NotifyBackground() {
	a.lifecycle <- workers.Background
}

// SyncNow runs an immediate full bidirectional sync and applies the result.
func (a *App) SyncNow(ctx context.Context) error {
	userID, ok := a.identity.UserID()
	if !ok {
		return syncpkg.ErrNotAuthenticated
	}

	merged, err := a.sync.SyncNow(ctx, userID, a.holder.Snapshot())
	if err != nil {
		return err
	}
	a.holder.ApplyMerged(merged)
	return nil
}

// Status returns the current sync status snapshot.
func (a *App) Status() models.SyncStatus {
	return a.sync.Status()
}

// SubscribeStatus registers fn for sync status updates and returns an
// unsubscribe func.
func (a *App) SubscribeStatus(fn func(models.SyncStatus)) func() {
	return a.sync.Subscribe(fn)
}

// State returns a deep copy of the current local state.
func (a *App) State() models.LocalState {
	return a.holder.Snapshot()
}

// Catalog returns the built-in training catalog. Catalog entries are not
// synced; only user-authored trainings travel through the cloud document.
func (a *App) Catalog() []models.Training {
	return models.BuiltinTrainings
}

// UpdateSettings commits new user settings locally and schedules a push.
func (a *App) UpdateSettings(ctx context.Context, settings models.UserSettings) error {
	return a.holder.UpdateSettings(ctx, settings)
}

// AddCustomTraining commits a user-authored training locally and schedules
// a push.
func (a *App) AddCustomTraining(ctx context.Context, training models.CustomTraining) error {
	return a.holder.AddCustomTraining(ctx, training)
}

// DeleteCustomTraining removes a user-authored training locally and
// schedules a push.
func (a *App) DeleteCustomTraining(ctx context.Context, id string) error {
	return a.holder.DeleteCustomTraining(ctx, id)
}

// RecordTrainingHistory appends a completed-workout record locally and
// schedules a push.
func (a *App) RecordTrainingHistory(ctx context.Context, entry models.TrainingHistory) error {
	return a.holder.RecordTrainingHistory(ctx, entry)
}

// SetLanguage commits the preferred UI language locally and schedules a
// push.
func (a *App) SetLanguage(ctx context.Context, language string) error {
	return a.holder.SetLanguage(ctx, language)
}
