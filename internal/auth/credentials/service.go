package credentials

import (
	"context"
	"errors"
)

// Service implements local username/password authentication on top of a
// Store. Hashing and verification live here, never on the record itself.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a user with a local credential and returns it.
// Registration is all-or-nothing: the password is hashed before any
// store call, and a duplicate username creates no second record.
func (s *Service) Register(
	ctx context.Context,
	username string,
	password string,
	firstName string,
	lastName string,
) (*User, error) {

	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	hash, version, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	return s.store.CreateLocal(ctx, username, hash, version, firstName, lastName)
}

// Authenticate verifies a (username, password) pair. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(
	ctx context.Context,
	username string,
	password string,
) (*User, error) {

	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.store.FindByUsername(ctx, username)
	if err == ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !u.HasLocalCredential() {
		return nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
