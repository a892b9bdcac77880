package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

// RoleRequired lets the request through only for the listed roles. Must run
// after AuthMiddleware.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			utils.RespondJSON(c, http.StatusUnauthorized, "unauthorized", nil)
			c.Abort()
			return
		}
		if !allowed[role] {
			utils.RespondJSON(c, http.StatusForbidden, "role "+string(role)+" may not access this resource", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
