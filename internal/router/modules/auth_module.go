package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/avolkov/shop-api/internal/interface/http"
)

// AuthModule wires the public sign-in/sign-up endpoints.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/sign_in", m.Handler.SignIn)
	rg.POST("/auth/sign_up", m.Handler.SignUp)
}
