package handler

import (
	"net/http"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/auth/credentials"
	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/logger"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username  string `form:"username" json:"username"`
	Password  string `form:"password" json:"password"`
	FirstName string `form:"firstName" json:"firstName"`
	LastName  string `form:"lastName" json:"lastName"`
}

// Register creates a local account and immediately establishes a
// session; registration implies login.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusFound, registerPath)
		return
	}

	user, err := h.credentials.Register(
		c.Request.Context(),
		req.Username,
		req.Password,
		req.FirstName,
		req.LastName,
	)
	if err != nil {
		// Duplicate username and validation failures are surfaced
		// generically; the caller just lands back on the form.
		if err != credentials.ErrDuplicateUsername {
			logger.Warn("registration rejected", map[string]any{
				"error": err.Error(),
			})
		}
		c.Redirect(http.StatusFound, registerPath)
		return
	}

	if _, err := h.sessions.Establish(c.Request.Context(), c.Writer, user.ID); err != nil {
		logger.Error("failed to establish session", map[string]any{
			"error": err.Error(),
		})
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusFound, homePath)
}
