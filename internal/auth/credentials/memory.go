package credentials

import (
	"context"
	"sync"
	"time"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by tests and for running the
// server without Postgres. A single mutex makes every lookup-or-insert
// atomic, which is all the find-or-create contract requires.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[string]*User  // id -> user
	byUsername map[string]string // username -> id
	bySubject  map[string]string // provider + "\x00" + subject -> id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]*User),
		byUsername: make(map[string]string),
		bySubject:  make(map[string]string),
	}
}

func subjectKey(provider, subjectID string) string {
	return provider + "\x00" + subjectID
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *s.users[id]
	return &clone, nil
}

func (s *MemoryStore) FindByFederatedSubject(ctx context.Context, provider, subjectID string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.bySubject[subjectKey(provider, subjectID)]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *s.users[id]
	return &clone, nil
}

func (s *MemoryStore) CreateLocal(
	ctx context.Context,
	username, passwordHash, hashVersion, firstName, lastName string,
) (*User, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return nil, ErrDuplicateUsername
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		HashVersion:  hashVersion,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now(),
	}

	s.users[u.ID] = u
	s.byUsername[username] = u.ID

	clone := *u
	return &clone, nil
}

func (s *MemoryStore) FindOrCreateFederated(
	ctx context.Context,
	identity *auth.Identity,
) (*User, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	key := subjectKey(identity.Provider, identity.ProviderUserID)
	if id, ok := s.bySubject[key]; ok {
		clone := *s.users[id]
		return &clone, nil
	}

	u := &User{
		ID:        uuid.NewString(),
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		CreatedAt: time.Now(),
	}

	s.users[u.ID] = u
	s.bySubject[key] = u.ID

	clone := *u
	return &clone, nil
}

// Remove deletes a user record. Sessions referencing the id resolve to
// anonymous afterwards; only tests exercise this.
func (s *MemoryStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return
	}
	delete(s.users, id)
	if u.Username != "" {
		delete(s.byUsername, u.Username)
	}
	for key, userID := range s.bySubject {
		if userID == id {
			delete(s.bySubject, key)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
