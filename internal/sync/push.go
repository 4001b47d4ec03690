// SPDX-License-Identifier: Apache-2.0

package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/fitkeeper/go-fit-keeper/models"
)

// pushRequest is one scheduled debounced push. done carries exactly one
// value and is closed afterwards.
type pushRequest struct {
	ctx    context.Context
	userID string
	state  models.LocalState
	done   chan error
}

// pushScheduler owns the single debounce timer of an orchestrator. A new
// schedule call supersedes the pending request: the old waiter resolves nil
// and the window restarts with the new state snapshot, which already
// contains every earlier mutation.
type pushScheduler struct {
	o *orchestrator

	mu      sync.Mutex
	pending *pushRequest
	timer   *time.Timer

	// gen increments on every schedule call. A timer callback carries the
	// generation it was armed for; a stale generation means a newer call
	// restarted the window while the timer was already firing, and the
	// callback must yield to the new timer instead of pushing early.
	gen uint64
}

func (p *pushScheduler) init(o *orchestrator) {
	p.o = o
}

func (p *pushScheduler) schedule(ctx context.Context, userID string, state models.LocalState) <-chan error {
	done := make(chan error, 1)
	if userID == "" {
		done <- nil
		close(done)
		return done
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending != nil {
		p.pending.done <- nil
		close(p.pending.done)
	}
	p.pending = &pushRequest{
		ctx:    ctx,
		userID: userID,
		state:  state.Clone(),
		done:   done,
	}

	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(p.o.cfg.DebounceWindow, func() { p.fire(gen) })

	return done
}

// fire runs on the timer goroutine once the debounce window elapses without
// another schedule call. gen guards against a timer that already fired when
// a concurrent schedule call restarted the window: the stale callback must
// not push the superseding request before its own window elapses.
func (p *pushScheduler) fire(gen uint64) {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	req := p.pending
	p.pending = nil
	p.timer = nil
	p.mu.Unlock()

	if req == nil {
		return
	}

	err := p.pushWithRetry(req.ctx, req.userID, req.state)
	req.done <- err
	close(req.done)
}

// pushWithRetry drives the full retry budget for one debounced push: up to
// MaxAttempts attempts, each bounded by AttemptTimeout, with exponential
// backoff between them. A timed-out attempt is abandoned rather than
// cancelled mid-write; full-document idempotent pushes make that safe.
func (p *pushScheduler) pushWithRetry(ctx context.Context, userID string, state models.LocalState) error {
	o := p.o
	o.status.setSyncing()

	syncedAt := o.timestamp()
	state.Settings.LastSyncedAt = syncedAt

	backoff := retry.WithMaxRetries(uint64(o.cfg.MaxAttempts-1), retry.NewExponential(o.cfg.BaseBackoff))
	attempt := 0

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, o.cfg.AttemptTimeout)
		defer cancel()

		if pushErr := o.pushDocument(attemptCtx, userID, state, syncedAt); pushErr != nil {
			o.logger.Warn().Err(pushErr).
				Str("func", "pushScheduler.pushWithRetry").
				Str("user_id", userID).
				Int("attempt", attempt).
				Msg("push attempt failed")
			return retry.RetryableError(pushErr)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", ErrSyncTimeout, err)
		}
		err = fmt.Errorf("%w: %w", ErrSyncFailed, err)
		o.status.setError(err)
		return err
	}

	// The push carried the new stamp; mirror it locally so the next
	// reconciliation sees this device as current. Failure here is not a
	// sync failure; the next push re-stamps.
	if saveErr := o.local.SaveSettings(ctx, state.Settings); saveErr != nil {
		o.logger.Warn().Err(saveErr).
			Str("func", "pushScheduler.pushWithRetry").
			Msg("failed to persist sync stamp")
	}

	o.status.setSynced(syncedAt)
	return nil
}
