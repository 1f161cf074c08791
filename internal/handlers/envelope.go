package handlers

import (
	"errors"
	"net/http"

	"user_accounts/internal/models"
	"user_accounts/internal/service"

	"github.com/gin-gonic/gin"
)

// The envelope endpoints always answer HTTP 200; the real outcome lives in
// the body's response code. This is the one place where service errors are
// translated, so handlers never catch-and-wrap individually.

func (h *Handler) respondSuccess(c *gin.Context, result any) {
	c.JSON(http.StatusOK, models.Success(result))
}

func (h *Handler) respondNotFound(c *gin.Context) {
	c.JSON(http.StatusOK, models.NotFound())
}

// respondFault maps a service error onto the envelope. Anything that is not
// an invalid-credentials outcome becomes SERVER_ERROR carrying the error
// text; error values in this codebase never embed hashes or the signing
// secret.
func (h *Handler) respondFault(c *gin.Context, logKey string, err error) {
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusOK, models.InvalidCredentials())
		return
	}
	if h.log != nil {
		h.log.Errorw(logKey, "err", err)
	}
	c.JSON(http.StatusOK, models.ServerError(err.Error()))
}
