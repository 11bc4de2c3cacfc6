package session

import (
	"context"
	"net/http"
	"time"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/credentials"
)

// Manager bridges transport-level request/response to identity. Sessions
// reference users by id only; Resolve always re-fetches the record from
// the credential store rather than trusting a cached snapshot.
type Manager struct {
	store  Store
	users  credentials.Store
	ttl    time.Duration
	cookie CookieOptions
}

func NewManager(store Store, users credentials.Store, ttl time.Duration, cookie CookieOptions) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		store:  store,
		users:  users,
		ttl:    ttl,
		cookie: cookie,
	}
}

// Establish creates a new session for userID and attaches the session
// cookie to the response. Existing sessions for the user are untouched;
// multiple concurrent sessions per user are permitted.
func (m *Manager) Establish(ctx context.Context, w http.ResponseWriter, userID string) (string, error) {
	sessionID, err := GenerateID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	expiresAt := now.Add(m.ttl)

	if err := m.store.Create(ctx, Session{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", err
	}

	SetCookie(w, sessionID, expiresAt, m.cookie)
	return sessionID, nil
}

// Resolve returns the user for the request's session token, or (nil, nil)
// when the request is anonymous: no cookie, unknown or expired token, or
// a session whose user has since been removed. Errors are reserved for
// store failures.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*credentials.User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	sess, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	if time.Now().After(sess.ExpiresAt) {
		_ = m.store.Delete(ctx, sess.SessionID)
		return nil, nil
	}

	user, err := m.users.FindByID(ctx, sess.UserID)
	if err == credentials.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Destroy removes the request's session, if any, and clears the cookie.
// Destroying an absent or unknown token is a no-op.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err == nil && cookie.Value != "" {
		if err := m.store.Delete(ctx, cookie.Value); err != nil {
			return err
		}
	}

	ClearCookie(w, m.cookie)
	return nil
}
