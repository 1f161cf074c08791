package handlers

import (
	"net/http"

	"user_accounts/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      Login
// @Description  Verifies HTTP Basic credentials and issues a bearer token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.Envelope  "SUCCESS with access_token, INVALID_CREDENTIALS, or SERVER_ERROR"
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		// A missing or malformed Basic header is indistinguishable from bad
		// credentials for the caller.
		if h.log != nil {
			h.log.Infow("login_missing_basic_auth")
		}
		c.JSON(http.StatusOK, models.InvalidCredentials())
		return
	}

	token, err := h.services.Login(c.Request.Context(), username, password)
	if err != nil {
		h.respondFault(c, "login_failed", err)
		return
	}

	h.respondSuccess(c, token)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
