package credentials

import (
	"context"
	"errors"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store owns user identity records. It is the ONLY place where
// identity persistence lives; strategies and sessions hold user ids,
// never copies of credential data.
type Store interface {
	// FindByID returns the user with the given id or ErrNotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername returns the user holding the local credential for
	// username or ErrNotFound. Usernames are case-sensitive unique keys.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByFederatedSubject returns the user linked to the given
	// provider subject or ErrNotFound.
	FindByFederatedSubject(ctx context.Context, provider, subjectID string) (*User, error)

	// CreateLocal creates a user with a local credential. It fails with
	// ErrDuplicateUsername when the username is already taken and must
	// never leave a partial record behind.
	CreateLocal(ctx context.Context, username, passwordHash, hashVersion, firstName, lastName string) (*User, error)

	// FindOrCreateFederated is an atomic lookup-or-insert: concurrent
	// calls for the same (provider, subject) yield exactly one record,
	// with the loser of the race reusing the winner's user.
	FindOrCreateFederated(ctx context.Context, identity *auth.Identity) (*User, error)
}
