package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session.
// It intentionally stores only an identity reference, not auth state,
// so credential changes are always read fresh on resolve.
type Session struct {
	SessionID string    // unique session identifier
	UserID    string    // references users.id
	CreatedAt time.Time // when the session was established
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
// Implementations must treat tokens as opaque and Delete as idempotent.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
