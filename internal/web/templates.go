// Package web is the view renderer: it turns plain data structures into
// HTML pages. No identity or catalog logic lives here.
package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Handler serves the static-ish pages: home, login form, register form.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/login", h.loginPage)
	r.GET("/register", h.registerPage)
}

func (h *Handler) home(c *gin.Context) {
	c.HTML(200, "home.html", nil)
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(200, "login.html", nil)
}

func (h *Handler) registerPage(c *gin.Context) {
	c.HTML(200, "register.html", nil)
}
