package credentials

import "time"

// User is the canonical identity record. A user carries a local
// credential (username + password hash), a federated identity, or both.
// Federated identities live in a separate relation keyed by
// (provider, provider_user_id) so a later link never duplicates the record.
type User struct {
	ID           string
	Username     string // empty for federated-only accounts
	PasswordHash string // never the raw password
	HashVersion  string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// HasLocalCredential reports whether the user can log in with a password.
func (u *User) HasLocalCredential() bool {
	return u.Username != "" && u.PasswordHash != ""
}
