package handler

import (
	"net/http"

	"github.com/himanshu-mamgain/Product-Card---Rest-API/internal/logger"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Login verifies the submitted credentials before any session is
// established. There is no framework-default login step to fall
// through to.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	user, err := h.credentials.Authenticate(
		c.Request.Context(),
		req.Username,
		req.Password,
	)
	if err != nil {
		// Unknown username and wrong password look identical here.
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	if _, err := h.sessions.Establish(c.Request.Context(), c.Writer, user.ID); err != nil {
		logger.Error("failed to establish session", map[string]any{
			"error": err.Error(),
		})
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusFound, landingPath)
}
