package app

import (
	"context"
	"net/http"
	"time"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/credentials"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/handler"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/provider"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/provider/google"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/resolver"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/catalog"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/config"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/logger"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/middleware"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/session"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/web"

	"github.com/gin-gonic/gin"
)

// Dependencies carries the stores and providers the router is wired
// with. Tests construct it directly with in-memory implementations.
type Dependencies struct {
	Users     credentials.Store
	Sessions  session.Store
	Catalog   catalog.Store
	Providers *provider.Registry

	SessionTTL   time.Duration
	CookieSecure bool
}

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Stores
	// ----------------------------

	deps := Dependencies{
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
	}

	if infra.DB != nil {
		deps.Users = credentials.NewPostgresStore(infra.DB)
		deps.Catalog = catalog.NewPostgresStore(infra.DB)
	} else {
		deps.Users = credentials.NewMemoryStore()
		deps.Catalog = catalog.NewMemoryStore()
	}

	if infra.Redis != nil {
		deps.Sessions = session.NewRedisStore(infra.Redis.Client)
	} else {
		deps.Sessions = session.NewMemoryStore()
	}

	// ----------------------------
	// Federated providers
	// ----------------------------

	var providers []provider.OAuthProvider

	if cfg.GoogleClientID != "" || cfg.GoogleClientSecret != "" || cfg.GoogleRedirectURL != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, googleProvider)
	} else {
		logger.Warn("google oauth not configured, federated login disabled", nil)
	}

	deps.Providers = provider.NewRegistry(providers...)

	router := NewRouter(deps)

	return router, infra.Close, nil
}

// NewRouter wires the identity core and the catalog onto a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {

	sessionManager := session.NewManager(
		deps.Sessions,
		deps.Users,
		deps.SessionTTL,
		session.CookieOptions{
			Secure:   deps.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		},
	)

	credentialService := credentials.NewService(deps.Users)
	identityResolver := resolver.NewStoreResolver(deps.Users)

	authHandler := handler.NewHandler(
		deps.Providers,
		sessionManager,
		credentialService,
		identityResolver,
		deps.CookieSecure,
	)

	gate := middleware.NewAuthMiddleware(sessionManager)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(web.Templates())

	// ----------------------------
	// Public Routes
	// ----------------------------

	web.NewHandler().RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Catalog (listing public, compose gated)
	// ----------------------------

	catalog.NewHandler(deps.Catalog).RegisterRoutes(router, gate)

	return router
}
