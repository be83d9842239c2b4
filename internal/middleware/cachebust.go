package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/service"
)

// CacheBust drops a tenant's cached aggregates after any successful
// mutation so dashboards never serve stale numbers. Read requests and
// failed writes pass through untouched.
func CacheBust(cache *service.CacheService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		schoolID := c.Param("schoolID")
		if schoolID == "" || !cache.Enabled() {
			return
		}
		// best effort: stale entries still expire via TTL
		_ = cache.InvalidateSchool(c.Request.Context(), schoolID)
	}
}
