package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/shop-api/internal/application"
	"github.com/avolkov/shop-api/internal/domain/entity"
	"github.com/avolkov/shop-api/pkg/helpers"
	"github.com/avolkov/shop-api/pkg/response"
)

const (
	ctxPrincipalKey   = "principal"
	ctxAuthInvalidKey = "auth_invalid"
)

// Authenticate resolves the "Authentication: Bearer <token>" header into a
// Principal stored in the context. An absent or invalid token is not an
// error here; only RequireRole-guarded routes reject.
func Authenticate(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authentication")
		if header == "" {
			c.Next()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		p, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, helpers.ErrInvalidToken) {
				c.Set(ctxAuthInvalidKey, true)
				c.Next()
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "internal error", nil)
			return
		}
		c.Set(ctxPrincipalKey, p)
		c.Next()
	}
}

// RequireRole guards a route: no principal is 401, a principal whose role is
// not in the allowed set is 403.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal(c)
		if p == nil {
			if c.GetBool(ctxAuthInvalidKey) {
				response.AbortError(c, http.StatusUnauthorized, "bad authentication credentials", nil)
			} else {
				response.AbortError(c, http.StatusUnauthorized, "authentication header is absent", nil)
			}
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusForbidden, "bad user role", nil)
	}
}

// Principal returns the authenticated principal set by Authenticate, or nil.
func Principal(c *gin.Context) *application.Principal {
	if v, ok := c.Get(ctxPrincipalKey); ok {
		if p, ok := v.(*application.Principal); ok {
			return p
		}
	}
	return nil
}
