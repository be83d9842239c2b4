package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/models"
)

type activityRecorder interface {
	LogActivity(ctx context.Context, schoolID string, entry models.ActivityLog) error
}

// Activity appends an audit line to the tenant's trail after a successful
// mutation. Global-admin actions log against the configured home tenant.
func Activity(store activityRecorder, homeTenantID, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}
		claims, ok := CurrentUser(c)
		if !ok {
			return
		}
		schoolID := c.Param("schoolID")
		if claims.Role == models.RoleGlobalAdmin && schoolID == "" {
			schoolID = homeTenantID
		}
		if schoolID == "" {
			return
		}
		entry := models.ActivityLog{
			ActorID:   claims.UserID,
			ActorName: claims.FullName,
			Role:      claims.Role,
			Action:    action,
			Detail:    c.Request.Method + " " + c.FullPath(),
		}
		// audit writes must not fail the request that already succeeded
		_ = store.LogActivity(c.Request.Context(), schoolID, entry)
	}
}
