package handler

import (
	"net/http"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/credentials"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/provider"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/resolver"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/logger"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	homePath     = "/"
	loginPath    = "/login"
	registerPath = "/register"
	landingPath  = "/products"
)

type Handler struct {
	providers    *provider.Registry
	sessions     *session.Manager
	credentials  *credentials.Service
	resolver     resolver.Resolver
	secureCookie bool
}

func NewHandler(
	registry *provider.Registry,
	sessions *session.Manager,
	creds *credentials.Service,
	resolver resolver.Resolver,
	secureCookie bool,
) *Handler {
	return &Handler{
		providers:    registry,
		sessions:     sessions,
		credentials:  creds,
		resolver:     resolver,
		secureCookie: secureCookie,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/auth/:provider", h.oauthLogin)
	r.GET("/auth/:provider/callback", h.oauthCallback)
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.GET("/logout", h.Logout)
}

func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	state := generateState(c, h.secureCookie)
	_, codeChallenge := generatePKCE(c, h.secureCookie)

	authURL := p.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	if !validateState(c) {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	// Provider signalled an error (user denied consent, expired request).
	// No detail is surfaced to the end user.
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
		})
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	identity, err := p.ExchangeCode(
		c.Request.Context(),
		code,
		codeVerifier,
	)
	if err != nil {
		logger.Warn("oauth code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	userID, err := h.resolver.Resolve(c.Request.Context(), identity)
	if err != nil {
		logger.Error("failed to resolve federated identity", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if _, err := h.sessions.Establish(c.Request.Context(), c.Writer, userID); err != nil {
		logger.Error("failed to establish session", map[string]any{
			"error": err.Error(),
		})
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	logger.Info("federated login succeeded", map[string]any{
		"provider": providerName,
		"user_id":  userID,
	})

	c.Redirect(http.StatusFound, landingPath)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c.Request.Context(), c.Writer, c.Request); err != nil {
		logger.Error("failed to destroy session", map[string]any{
			"error": err.Error(),
		})
	}

	// Logging out an anonymous caller is a no-op, not an error.
	c.Redirect(http.StatusFound, homePath)
}
