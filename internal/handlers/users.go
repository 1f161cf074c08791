package handlers

import (
	"errors"
	"io"

	"user_accounts/internal/models"
	"user_accounts/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for creating a user. The password travels plaintext in the
// body and is hashed before storage.
type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role,omitempty"`
}

// Request DTO for deleting a user.
type deleteUserRequest struct {
	ID int `json:"id" binding:"required"`
}

// bindEnvelopeJSON binds the body into dst; on failure it answers with a
// SERVER_ERROR envelope (still HTTP 200) and reports false. allowEmpty lets
// endpoints with optional bodies treat a missing body as the zero value.
func (h *Handler) bindEnvelopeJSON(c *gin.Context, dst any, allowEmpty bool) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if allowEmpty && errors.Is(err, io.EOF) {
		return true
	}
	if h.log != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
	}
	h.respondFault(c, "bind_body_failed", err)
	return false
}

// @Summary      Query users
// @Description  Filters users by optional exact-match predicates. Soft-deleted rows are returned only when is_deleted is requested explicitly.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body   models.UserFilter  false  "Optional filter"
// @Success      200   {object}  models.Envelope  "SUCCESS with array of users"
// @Router       /users/get_users [post]
func (h *Handler) getUsers(c *gin.Context) {
	var filter models.UserFilter
	if ok := h.bindEnvelopeJSON(c, &filter, true); !ok {
		return
	}

	users, err := h.services.GetUsers(c.Request.Context(), filter)
	if err != nil {
		h.respondFault(c, "get_users_failed", err)
		return
	}

	h.respondSuccess(c, users)
}

// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body   createUserRequest  true  "New account"
// @Success      200   {object}  models.Envelope  "SUCCESS with created user, or SERVER_ERROR on duplicate username"
// @Router       /users/create_user [post]
func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if ok := h.bindEnvelopeJSON(c, &req, false); !ok {
		return
	}

	user, err := h.services.CreateUser(c.Request.Context(), service.CreateUserParams{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondFault(c, "create_user_failed", err)
		return
	}

	h.respondSuccess(c, user)
}

// @Summary      Update user
// @Description  Applies only the fields present in the body; refreshes updated_at.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body   models.UserUpdate  true  "id plus fields to change"
// @Success      200   {object}  models.Envelope  "SUCCESS with updated user, or NOT_FOUND"
// @Router       /users/update_user [post]
func (h *Handler) updateUser(c *gin.Context) {
	var req models.UserUpdate
	if ok := h.bindEnvelopeJSON(c, &req, false); !ok {
		return
	}

	user, err := h.services.UpdateUser(c.Request.Context(), req)
	if err != nil {
		h.respondFault(c, "update_user_failed", err)
		return
	}
	if user == nil {
		h.respondNotFound(c)
		return
	}

	h.respondSuccess(c, user)
}

// @Summary      Delete user
// @Description  Soft-deletes the account; the username stays reserved.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body   deleteUserRequest  true  "id to delete"
// @Success      200   {object}  models.Envelope  "SUCCESS with true, or NOT_FOUND"
// @Router       /users/delete_user [post]
func (h *Handler) deleteUser(c *gin.Context) {
	var req deleteUserRequest
	if ok := h.bindEnvelopeJSON(c, &req, false); !ok {
		return
	}

	deleted, err := h.services.DeleteUser(c.Request.Context(), req.ID)
	if err != nil {
		h.respondFault(c, "delete_user_failed", err)
		return
	}
	if !deleted {
		h.respondNotFound(c)
		return
	}

	h.respondSuccess(c, deleted)
}
