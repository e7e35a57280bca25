package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/avolkov/shop-api/internal/domain/entity"
	handlers "github.com/avolkov/shop-api/internal/interface/http"
	"github.com/avolkov/shop-api/internal/interface/middleware"
)

// UserModule wires the activation endpoint and the admin-only user routes.
// Public: GET /user/activate/
// Admin:  POST /user/:id/activate, POST /user/:id/deactivate, GET /users/
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/user/activate/", m.Handler.Activate)

	admin := rg.Group("/")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.POST("/user/:id/activate", m.Handler.SetActivation(true))
		admin.POST("/user/:id/deactivate", m.Handler.SetActivation(false))
		admin.GET("/users/", m.Handler.List)
	}
}
