package middleware

import (
	"context"
	"net/http"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/credentials"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/session"
)

const LoginPath = "/login"

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (*credentials.User, bool) {
	u, ok := ctx.Value(userKey).(*credentials.User)
	return u, ok
}

// AuthMiddleware is the authorization gate: protected handlers run only
// for requests that resolve to a non-anonymous identity.
type AuthMiddleware struct {
	Sessions *session.Manager
}

func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{Sessions: sessions}
}

// RequireAuth short-circuits anonymous requests with a redirect to the
// login page before the protected handler can run. Store failures are
// not treated as anonymous; they fail the request.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.Sessions.Resolve(r.Context(), r)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if user == nil {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
