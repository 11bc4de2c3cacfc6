package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/credentials"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/provider"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/catalog"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProvider stands in for the external identity provider so the
// authorization-code flow can be driven without a network.
type fakeProvider struct {
	identity *auth.Identity
}

func (f *fakeProvider) Name() string { return "google" }

func (f *fakeProvider) AuthCodeURL(state, codeChallenge string) string {
	return "https://provider.example/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) ExchangeCode(ctx context.Context, code, codeVerifier string) (*auth.Identity, error) {
	if code != "valid-code" {
		return nil, errors.New("invalid or expired code")
	}
	return f.identity, nil
}

type testEnv struct {
	router  *gin.Engine
	users   *credentials.MemoryStore
	catalog *catalog.MemoryStore
}

func newTestEnv(t *testing.T, providers ...provider.OAuthProvider) *testEnv {
	t.Helper()

	users := credentials.NewMemoryStore()
	products := catalog.NewMemoryStore()

	router := NewRouter(Dependencies{
		Users:        users,
		Sessions:     session.NewMemoryStore(),
		Catalog:      products,
		Providers:    provider.NewRegistry(providers...),
		SessionTTL:   time.Hour,
		CookieSecure: false,
	})

	return &testEnv{router: router, users: users, catalog: products}
}

// client carries cookies across requests like a browser would.
type client struct {
	router  *gin.Engine
	cookies map[string]string
}

func newClient(router *gin.Engine) *client {
	return &client{router: router, cookies: make(map[string]string)}
}

func (c *client) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie.Value
	}

	return w
}

func TestPublicPages(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(env.router)

	for _, path := range []string{"/", "/login", "/register", "/products", "/health"} {
		w := c.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestComposeRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(env.router)

	w := c.do(t, http.MethodGet, "/compose", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = c.do(t, http.MethodPost, "/compose", url.Values{"name": {"Widget"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// The anonymous POST must not have touched the catalog.
	products, err := env.catalog.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRegisterLoginComposeLogout(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(env.router)
	ctx := context.Background()

	// Register: creates the account and establishes a session.
	w := c.do(t, http.MethodPost, "/register", url.Values{
		"username":  {"alice"},
		"password":  {"secret-1234"},
		"firstName": {"Alice"},
		"lastName":  {"Smith"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	require.NotEmpty(t, c.cookies[session.CookieName])

	alice, err := env.users.FindByUsername(ctx, "alice")
	require.NoError(t, err)

	// Login with the same pair resolves the same identity.
	w = c.do(t, http.MethodPost, "/login", url.Values{
		"username": {"alice"},
		"password": {"secret-1234"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))

	// Compose while authenticated.
	w = c.do(t, http.MethodPost, "/compose", url.Values{
		"name":        {"Widget"},
		"description": {"A fine widget"},
		"quantity":    {"3"},
		"price":       {"1299"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))

	products, err := env.catalog.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, 3, products[0].Quantity)
	assert.Equal(t, int64(1299), products[0].PriceCents)

	// Creator attribution comes from the session identity.
	assert.Equal(t, alice.ID, products[0].CreatorID)

	// Logout destroys the session.
	w = c.do(t, http.MethodGet, "/logout", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Empty(t, c.cookies[session.CookieName])

	// Repeating the compose POST redirects to login; no record appears.
	w = c.do(t, http.MethodPost, "/compose", url.Values{"name": {"Gadget"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	products, err = env.catalog.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	first := newClient(env.router)
	w := first.do(t, http.MethodPost, "/register", url.Values{
		"username": {"alice"},
		"password": {"secret-1234"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	second := newClient(env.router)
	w = second.do(t, http.MethodPost, "/register", url.Values{
		"username": {"alice"},
		"password": {"other-secret"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))

	// No session was granted to the failed registration.
	assert.Empty(t, second.cookies[session.CookieName])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	c := newClient(env.router)
	w := c.do(t, http.MethodPost, "/register", url.Values{
		"username": {"alice"},
		"password": {"secret-1234"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	c.do(t, http.MethodGet, "/logout", nil)

	for _, form := range []url.Values{
		{"username": {"alice"}, "password": {"wrong-password"}},
		{"username": {"nobody"}, "password": {"secret-1234"}},
		{"username": {""}, "password": {""}},
	} {
		w = c.do(t, http.MethodPost, "/login", form)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Empty(t, c.cookies[session.CookieName])
	}
}

// federatedLogin drives the full authorization-code flow for c and
// returns the final callback response.
func federatedLogin(t *testing.T, c *client, code string) *httptest.ResponseRecorder {
	t.Helper()

	w := c.do(t, http.MethodGet, "/auth/google", nil)
	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	return c.do(t, http.MethodGet, "/auth/google/callback?code="+code+"&state="+url.QueryEscape(state), nil)
}

func TestFederatedLogin(t *testing.T) {
	identity := &auth.Identity{
		Provider:       "google",
		ProviderUserID: "sub-42",
		FirstName:      "Alice",
		LastName:       "Smith",
	}
	env := newTestEnv(t, &fakeProvider{identity: identity})
	ctx := context.Background()

	c := newClient(env.router)
	w := federatedLogin(t, c, "valid-code")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))
	require.NotEmpty(t, c.cookies[session.CookieName])

	user, err := env.users.FindByFederatedSubject(ctx, "google", "sub-42")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FirstName)
	assert.Empty(t, user.Username)

	// The session gates protected routes like any local login.
	w = c.do(t, http.MethodGet, "/compose", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A second full login for the same subject reuses the record.
	other := newClient(env.router)
	w = federatedLogin(t, other, "valid-code")
	require.Equal(t, http.StatusFound, w.Code)

	again, err := env.users.FindByFederatedSubject(ctx, "google", "sub-42")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestFederatedLoginFailures(t *testing.T) {
	identity := &auth.Identity{Provider: "google", ProviderUserID: "sub-42"}
	env := newTestEnv(t, &fakeProvider{identity: identity})

	// Exchange failure: provider rejects the code.
	c := newClient(env.router)
	w := federatedLogin(t, c, "expired-code")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, c.cookies[session.CookieName])

	// State mismatch: callback state does not match the cookie.
	c = newClient(env.router)
	w = c.do(t, http.MethodGet, "/auth/google", nil)
	require.Equal(t, http.StatusFound, w.Code)
	w = c.do(t, http.MethodGet, "/auth/google/callback?code=valid-code&state=forged", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Provider error response: no detail leaks, caller lands on login.
	c = newClient(env.router)
	w = c.do(t, http.MethodGet, "/auth/google", nil)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	w = c.do(t, http.MethodGet, "/auth/google/callback?error=access_denied&state="+url.QueryEscape(state), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Unknown provider.
	c = newClient(env.router)
	w = c.do(t, http.MethodGet, "/auth/linkedin", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
