package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolara/scolara-api/internal/models"
	"github.com/scolara/scolara-api/internal/service"
	"github.com/scolara/scolara-api/internal/store"
	"github.com/scolara/scolara-api/pkg/config"
)

const testSecret = "router-test-secret"

// memoryRemote keeps tenant documents in memory so router tests run
// against a real store without Postgres.
type memoryRemote struct {
	schools map[string]*models.SchoolData
}

func newMemoryRemote(seed ...models.SchoolData) *memoryRemote {
	r := &memoryRemote{schools: make(map[string]*models.SchoolData)}
	for i := range seed {
		school := seed[i]
		r.schools[school.ID] = &school
	}
	return r
}

func (r *memoryRemote) All(context.Context) ([]models.SchoolData, error) {
	out := make([]models.SchoolData, 0, len(r.schools))
	for _, school := range r.schools {
		out = append(out, *school)
	}
	return out, nil
}

func (r *memoryRemote) Merge(context.Context, string, map[string]interface{}) error {
	return nil
}

func (r *memoryRemote) AppendElement(context.Context, string, string, interface{}) error {
	return nil
}

func (r *memoryRemote) RemoveElement(context.Context, string, string, string) error {
	return nil
}

func (r *memoryRemote) Insert(_ context.Context, school *models.SchoolData) error {
	r.schools[school.ID] = school
	return nil
}

func (r *memoryRemote) Seed(_ context.Context, schools []models.SchoolData) error {
	for i := range schools {
		school := schools[i]
		r.schools[school.ID] = &school
	}
	return nil
}

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(newMemoryRemote(models.SchoolData{
		ID: "northwood-high",
		Profile: models.SchoolProfile{
			Name:          "Northwood High",
			GradingSystem: models.GradingTwentyPoint,
		},
		Students: []models.Student{
			{ID: "stu-1", FullName: "Amara Sy", ClassID: "cls-10a", Status: models.StatusActive},
		},
		Classes: []models.Class{
			{ID: "cls-10a", Name: "Grade 10-A", GradeLevel: "Grade 10"},
		},
		Grades: []models.Grade{
			{ID: "grd-1", StudentID: "stu-1", Subject: "Mathematics", Score: "16"},
		},
	}), nil)
	require.NoError(t, st.Load(context.Background(), nil))

	academics := service.NewAcademicsService(st, nil, nil)
	cacheSvc := service.NewCacheService(nil, nil, 0, nil, false)

	cfg := &config.Config{APIPrefix: "/api/v1"}
	cfg.JWT.Secret = testSecret
	cfg.Platform.HomeTenantID = "northwood-high"

	r := gin.New()
	RegisterRoutes(r, cfg, st, cacheSvc, Handlers{
		Academics:   NewAcademicsHandler(academics),
		Attendance:  NewAttendanceHandler(service.NewAttendanceService(st, nil)),
		Finance:     NewFinanceHandler(service.NewFinanceService(st, nil, nil)),
		Admissions:  NewAdmissionHandler(service.NewAdmissionService(st, nil)),
		Community:   NewCommunityHandler(service.NewCommunityService(st, nil)),
		Dashboard:   NewDashboardHandler(service.NewDashboardService(st, cacheSvc, nil)),
		Leaderboard: NewLeaderboardHandler(service.NewLeaderboardService(st, 10, nil)),
		Insights:    NewInsightsHandler(service.NewInsightsService(st, nil, false, nil)),
		Platform:    NewPlatformHandler(service.NewProvisioningService(st, nil, nil, nil), service.NewRollupService(st, "northwood-high", nil)),
		Metrics:     NewMetricsHandler(service.NewMetricsService()),
	})
	return r
}

func signToken(t *testing.T, role models.UserRole, schoolID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID:   "usr-1",
		Role:     role,
		FullName: "Test User",
		SchoolID: schoolID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterRejectsMissingToken(t *testing.T) {
	r := buildRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/v1/schools/northwood-high/students", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterRejectsCrossTenantAccess(t *testing.T) {
	r := buildRouter(t)
	token := signToken(t, models.RoleAdmin, "other-school")

	rec := doRequest(r, http.MethodGet, "/api/v1/schools/northwood-high/students", token, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterGlobalAdminCrossesTenants(t *testing.T) {
	r := buildRouter(t)
	token := signToken(t, models.RoleGlobalAdmin, "")

	rec := doRequest(r, http.MethodGet, "/api/v1/schools/northwood-high/students", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterListStudents(t *testing.T) {
	r := buildRouter(t)
	token := signToken(t, models.RoleAdmin, "northwood-high")

	rec := doRequest(r, http.MethodGet, "/api/v1/schools/northwood-high/students", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.Student `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Amara Sy", envelope.Data[0].FullName)
}

func TestRouterStudentCannotCreateStudents(t *testing.T) {
	r := buildRouter(t)
	token := signToken(t, models.RoleStudent, "northwood-high")

	rec := doRequest(r, http.MethodPost, "/api/v1/schools/northwood-high/students", token, map[string]string{
		"full_name":   "New Kid",
		"grade_level": "Grade 10",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterRecordGradeAsTeacher(t *testing.T) {
	r := buildRouter(t)
	token := signToken(t, models.RoleTeacher, "northwood-high")

	rec := doRequest(r, http.MethodPost, "/api/v1/schools/northwood-high/grades", token, map[string]string{
		"student_id": "stu-1",
		"subject":    "Mathematics",
		"score":      "17.5",
		"type":       "Exam",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data struct {
			Score   string `json:"score"`
			Display string `json:"display"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "17.5/20", envelope.Data.Display)
}

func TestRouterNetworkRollupNeedsGlobalAdmin(t *testing.T) {
	r := buildRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/v1/network/rollup", signToken(t, models.RoleAdmin, "northwood-high"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(r, http.MethodGet, "/api/v1/network/rollup", signToken(t, models.RoleGlobalAdmin, ""), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterHealth(t *testing.T) {
	r := buildRouter(t)

	rec := doRequest(r, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterReadyReflectsMirror(t *testing.T) {
	r := buildRouter(t)

	rec := doRequest(r, http.MethodGet, "/ready", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status  string `json:"status"`
		Schools int    `json:"schools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, 1, body.Schools)
}

func TestRouterReadyBeforeLoad(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := store.New(newMemoryRemote(), nil)

	cfg := &config.Config{APIPrefix: "/api/v1"}
	cfg.JWT.Secret = testSecret

	r := gin.New()
	RegisterRoutes(r, cfg, st, service.NewCacheService(nil, nil, 0, nil, false), Handlers{
		Metrics: NewMetricsHandler(service.NewMetricsService()),
	})

	rec := doRequest(r, http.MethodGet, "/ready", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
