package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

// Context keys set by AuthMiddleware.
const (
	CtxRole    = "role"
	CtxSubject = "subject"
)

// AuthMiddleware -> validates the bearer token and stores role and subject
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondJSON(c, http.StatusUnauthorized, "Authorization header missing", nil)
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondJSON(c, http.StatusUnauthorized, "Authorization header must be a bearer token", nil)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondJSON(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Set(CtxRole, claims.Role)
		c.Set(CtxSubject, claims.Subject)
		c.Next()
	}
}

// CurrentRole returns the role stored by AuthMiddleware.
func CurrentRole(c *gin.Context) (models.Role, bool) {
	v, ok := c.Get(CtxRole)
	if !ok {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}

// CurrentSubject returns the login identifier stored by AuthMiddleware.
func CurrentSubject(c *gin.Context) string {
	return c.GetString(CtxSubject)
}
