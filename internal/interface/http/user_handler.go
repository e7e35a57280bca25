package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/shop-api/internal/application"
	"github.com/avolkov/shop-api/pkg/response"
	"github.com/avolkov/shop-api/pkg/validation"
)

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

type listUsersQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Activate handles GET /user/activate/?token=<uuid>. A malformed token is
// indistinguishable from an unknown one: both are 404.
func (h *UserHandler) Activate(c *gin.Context) {
	token := c.Query("token")
	if err := h.Users.ActivateUserByToken(c.Request.Context(), token); err != nil {
		if errors.Is(err, application.ErrInvalidActivationToken) || errors.Is(err, application.ErrUserAlreadyActivated) {
			response.Error(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("activation failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	c.Status(http.StatusOK)
}

// SetActivation returns the admin handler for POST /user/:id/activate and
// POST /user/:id/deactivate.
func (h *UserHandler) SetActivation(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := h.Users.ChangeUserActivation(c.Request.Context(), id, active); err != nil {
			if errors.Is(err, application.ErrUserNotExist) {
				response.Error(c, http.StatusNotFound, err.Error(), nil)
				return
			}
			h.Logger.WithError(err).WithField("user_id", id).Error("activation change failed")
			response.Error(c, http.StatusInternalServerError, "internal error", nil)
			return
		}
		c.Status(http.StatusOK)
	}
}

// List handles GET /users/?limit=&offset= (admin only).
func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	users, err := h.Users.GetUsers(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
