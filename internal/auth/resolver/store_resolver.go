package resolver

import (
	"context"
	"errors"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/credentials"
)

// StoreResolver resolves identities through the credential store's
// atomic find-or-create. Replaying a callback for an already-linked
// subject returns the existing user instead of minting a second one.
type StoreResolver struct {
	users credentials.Store
}

func NewStoreResolver(users credentials.Store) *StoreResolver {
	return &StoreResolver{users: users}
}

func (r *StoreResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
) (string, error) {

	if identity == nil {
		return "", errors.New("identity is nil")
	}

	user, err := r.users.FindOrCreateFederated(ctx, identity)
	if err != nil {
		return "", err
	}

	return user.ID, nil
}

var _ Resolver = (*StoreResolver)(nil)
