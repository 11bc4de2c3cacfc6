package credentials

import (
	"context"
	"database/sql"
	"errors"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/db"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// PostgresStore is the canonical Store backed by Postgres. Uniqueness of
// usernames and federated subjects is enforced by database constraints,
// so concurrent writers cannot duplicate a record.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `
	id,
	COALESCE(username, ''),
	COALESCE(password_hash, ''),
	COALESCE(hash_version, ''),
	first_name,
	last_name,
	created_at
`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.HashVersion,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1
	`, username))
}

func (s *PostgresStore) FindByFederatedSubject(ctx context.Context, provider, subjectID string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN identities i ON i.user_id = u.id
		WHERE i.provider = $1
		  AND i.provider_user_id = $2
	`, provider, subjectID))
}

func (s *PostgresStore) CreateLocal(
	ctx context.Context,
	username, passwordHash, hashVersion, firstName, lastName string,
) (*User, error) {

	u, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, hash_version, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, username, passwordHash, hashVersion, firstName, lastName))

	if isUniqueViolation(err) {
		return nil, ErrDuplicateUsername
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindOrCreateFederated inserts inside a transaction and relies on the
// (provider, provider_user_id) unique constraint to resolve races: a
// loser rolls back its provisional user and reuses the winner's record.
func (s *PostgresStore) FindOrCreateFederated(
	ctx context.Context,
	identity *auth.Identity,
) (*User, error) {

	if identity == nil {
		return nil, errors.New("identity is nil")
	}

	// Fast path: subject already linked.
	u, err := s.FindByFederatedSubject(ctx, identity.Provider, identity.ProviderUserID)
	if err == nil {
		return u, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var userID string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id
	`, identity.FirstName, identity.LastName).Scan(&userID)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO identities (user_id, provider, provider_user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (provider, provider_user_id) DO NOTHING
	`, userID, identity.Provider, identity.ProviderUserID)
	if err != nil {
		return nil, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if inserted == 0 {
		// Lost the race: drop the provisional user and reuse the
		// record the concurrent callback created.
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			return nil, err
		}
		return s.FindByFederatedSubject(ctx, identity.Provider, identity.ProviderUserID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.FindByID(ctx, userID)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

var _ Store = (*PostgresStore)(nil)
