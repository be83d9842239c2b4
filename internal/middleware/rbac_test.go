package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/scolara/scolara-api/internal/models"
)

func contextWithClaims(claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if claims != nil {
		c.Set(ContextUserKey, claims)
	}
	return c, rec
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	c, rec := contextWithClaims(&models.JWTClaims{Role: models.RoleTeacher})

	RequireRoles(models.RoleAdmin, models.RoleTeacher)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesRejectsUnlistedRole(t *testing.T) {
	c, rec := contextWithClaims(&models.JWTClaims{Role: models.RoleStudent})

	RequireRoles(models.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesGlobalAdminBypassesEveryGate(t *testing.T) {
	c, _ := contextWithClaims(&models.JWTClaims{Role: models.RoleGlobalAdmin})

	RequireRoles(models.RoleParent)(c)

	assert.False(t, c.IsAborted())
}

func TestRequireRolesRejectsMissingClaims(t *testing.T) {
	c, rec := contextWithClaims(nil)

	RequireRoles(models.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantScopeMatchesPathAgainstToken(t *testing.T) {
	c, _ := contextWithClaims(&models.JWTClaims{Role: models.RoleAdmin, SchoolID: "northwood-high"})
	c.Params = gin.Params{{Key: "schoolID", Value: "northwood-high"}}

	TenantScope()(c)

	assert.False(t, c.IsAborted())
}

func TestTenantScopeRejectsForeignTenant(t *testing.T) {
	c, rec := contextWithClaims(&models.JWTClaims{Role: models.RoleAdmin, SchoolID: "other-school"})
	c.Params = gin.Params{{Key: "schoolID", Value: "northwood-high"}}

	TenantScope()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTenantScopeGlobalAdminCrossesTenants(t *testing.T) {
	c, _ := contextWithClaims(&models.JWTClaims{Role: models.RoleGlobalAdmin})
	c.Params = gin.Params{{Key: "schoolID", Value: "northwood-high"}}

	TenantScope()(c)

	assert.False(t, c.IsAborted())
}
