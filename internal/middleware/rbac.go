package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
	"github.com/scolara/scolara-api/pkg/response"
)

// RequireRoles gates a route to the listed roles. The global admin passes
// every role gate.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if claims.Role == models.RoleGlobalAdmin {
			c.Next()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// TenantScope binds non-global users to their own school: the :schoolID
// route param must match the token's tenant claim. The global admin may
// address any tenant.
func TenantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if claims.Role == models.RoleGlobalAdmin {
			c.Next()
			return
		}
		schoolID := c.Param("schoolID")
		if schoolID == "" || schoolID != claims.SchoolID {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "school outside token scope"))
			c.Abort()
			return
		}
		c.Next()
	}
}
