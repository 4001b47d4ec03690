package identity

import (
	"fmt"
	"sync"

	"github.com/fitkeeper/go-fit-keeper/internal/utils"
)

// TokenProvider derives identity from bearer tokens handed to it by the
// login flow. The user id is the token's subject claim; the token itself is
// kept so the transport layer can attach it to outgoing requests.
//
// The client cannot verify the token signature (it does not hold the sign
// key), so the subject is extracted without verification. The backend
// re-validates every request.
type TokenProvider struct {
	mu     sync.RWMutex
	userID string
	token  string
	events chan Event
}

// NewTokenProvider returns a signed-out provider. Call SetToken after a
// successful login.
func NewTokenProvider() *TokenProvider {
	return &TokenProvider{
		events: make(chan Event, 8),
	}
}

// UserID implements Provider.
func (p *TokenProvider) UserID() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.userID, p.userID != ""
}

// Events implements Provider.
func (p *TokenProvider) Events() <-chan Event {
	return p.events
}

// Token returns the current bearer token, or empty when signed out.
func (p *TokenProvider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

// SetToken installs a new bearer token and emits a SignedIn event for its
// subject. Returns an error if the token cannot be parsed or carries no
// subject; the previous identity is kept in that case.
func (p *TokenProvider) SetToken(token string) error {
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return fmt.Errorf("invalid identity token: %w", err)
	}

	p.mu.Lock()
	sameUser := p.userID == userID
	p.userID = userID
	p.token = token
	p.mu.Unlock()

	// Token refreshes for the same account are not identity transitions.
	if !sameUser {
		p.emit(Event{Kind: SignedIn, UserID: userID})
	}
	return nil
}

// Clear drops the current token and emits a SignedOut event. A no-op when
// already signed out.
func (p *TokenProvider) Clear() {
	p.mu.Lock()
	if p.userID == "" {
		p.mu.Unlock()
		return
	}
	p.userID = ""
	p.token = ""
	p.mu.Unlock()

	p.emit(Event{Kind: SignedOut})
}

func (p *TokenProvider) emit(event Event) {
	select {
	case p.events <- event:
	default:
	}
}
