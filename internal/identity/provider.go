// Package identity tells the sync layer who is signed in.
//
// The sync orchestrator never authenticates anyone itself: it asks a
// [Provider] for the current user id before every remote operation and
// reacts to sign-in/sign-out events pushed through the provider's event
// stream.
package identity

import (
	"sync"
)

// EventKind distinguishes identity transitions.
type EventKind int

const (
	// SignedIn is emitted when a user becomes authenticated.
	SignedIn EventKind = iota
	// SignedOut is emitted when the current user signs out.
	SignedOut
)

// Event describes a single identity transition. UserID is empty for
// SignedOut events.
type Event struct {
	Kind   EventKind
	UserID string
}

// Provider exposes the current authentication state.
//
// UserID reports the signed-in user id; ok is false when nobody is
// authenticated. Events yields identity transitions; the channel is never
// closed while the provider is in use and sends never block the caller
// (slow consumers drop events rather than stall sign-in).
type Provider interface {
	UserID() (id string, ok bool)
	Events() <-chan Event
}

// StaticProvider is a Provider with an explicitly managed user id. The demo
// client signs a fixed account in at startup; tests flip identity by calling
// SignIn and SignOut directly.
type StaticProvider struct {
	mu     sync.RWMutex
	userID string
	events chan Event
}

// NewStaticProvider returns a signed-out provider. Call SignIn to
// authenticate.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		events: make(chan Event, 8),
	}
}

// UserID implements Provider.
func (p *StaticProvider) UserID() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.userID, p.userID != ""
}

// Events implements Provider.
func (p *StaticProvider) Events() <-chan Event {
	return p.events
}

// SignIn sets the current user and emits a SignedIn event. Signing in the
// already-current user is a no-op.
func (p *StaticProvider) SignIn(userID string) {
	if userID == "" {
		return
	}

	p.mu.Lock()
	if p.userID == userID {
		p.mu.Unlock()
		return
	}
	p.userID = userID
	p.mu.Unlock()

	p.emit(Event{Kind: SignedIn, UserID: userID})
}

// SignOut clears the current user and emits a SignedOut event. A no-op when
// nobody is signed in.
func (p *StaticProvider) SignOut() {
	p.mu.Lock()
	if p.userID == "" {
		p.mu.Unlock()
		return
	}
	p.userID = ""
	p.mu.Unlock()

	p.emit(Event{Kind: SignedOut})
}

func (p *StaticProvider) emit(event Event) {
	select {
	case p.events <- event:
	default:
	}
}
