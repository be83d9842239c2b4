package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolara/scolara-api/internal/middleware"
	"github.com/scolara/scolara-api/internal/models"
	"github.com/scolara/scolara-api/internal/service"
	"github.com/scolara/scolara-api/internal/store"
	"github.com/scolara/scolara-api/pkg/config"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Academics   *AcademicsHandler
	Attendance  *AttendanceHandler
	Finance     *FinanceHandler
	Admissions  *AdmissionHandler
	Community   *CommunityHandler
	Dashboard   *DashboardHandler
	Leaderboard *LeaderboardHandler
	Insights    *InsightsHandler
	Platform    *PlatformHandler
	Reports     *ReportHandler
	Metrics     *MetricsHandler
}

// RegisterRoutes mounts the API surface under cfg.APIPrefix. Every route
// below the prefix requires a bearer token; tenant routes additionally
// match the token's school against the path.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, st *store.Store, cache *service.CacheService, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		// Seeding guarantees at least the home tenant, so an empty
		// mirror means the load never completed.
		ids := st.SchoolIDs()
		if len(ids) == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "schools": len(ids)})
	})
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(cfg.APIPrefix)

	// Signed token is the whole credential for downloads, so the route
	// stays outside the JWT group.
	if h.Reports != nil {
		api.GET("/reports/download/:token", h.Reports.Download)
	}

	api.Use(middleware.JWT(cfg.JWT.Secret))

	act := func(action string) gin.HandlerFunc {
		return middleware.Activity(st, cfg.Platform.HomeTenantID, action)
	}

	network := api.Group("/network", middleware.RequireRoles(models.RoleGlobalAdmin))
	{
		network.GET("/rollup", h.Platform.NetworkRollup)
		network.GET("/leaderboard", h.Leaderboard.Network)
		network.GET("/metrics", h.Metrics.Snapshot)
		network.POST("/schools", act("school.provision"), h.Platform.ProvisionSchool)
		network.PUT("/schools/:schoolID/subscription", act("school.subscription"), h.Platform.UpdateSubscription)
	}

	school := api.Group("/schools/:schoolID", middleware.TenantScope(), middleware.CacheBust(cache))
	{
		staff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)
		admin := middleware.RequireRoles(models.RoleAdmin)

		school.GET("/dashboard", staff, h.Dashboard.Overview)

		school.GET("/students", staff, h.Academics.ListStudents)
		school.POST("/students", admin, act("student.create"), h.Academics.CreateStudent)
		school.GET("/students/:id", h.Academics.GetStudent)
		school.PUT("/students/:id", admin, act("student.update"), h.Academics.UpdateStudent)
		school.PATCH("/students/:id/status", admin, act("student.status"), h.Academics.SetStudentStatus)
		school.POST("/students/:id/notes", staff, act("student.note"), h.Academics.AddBehaviorNote)
		school.GET("/students/:id/report-card", h.Academics.ReportCard)
		if h.Insights != nil {
			school.GET("/students/:id/insights", staff, h.Insights.Student)
		}

		school.GET("/teachers", staff, h.Academics.ListTeachers)
		school.POST("/teachers", admin, act("teacher.create"), h.Academics.CreateTeacher)
		school.PUT("/teachers/:id", admin, act("teacher.update"), h.Academics.UpdateTeacher)
		school.DELETE("/teachers/:id", admin, act("teacher.delete"), h.Academics.DeleteTeacher)

		school.GET("/classes", h.Academics.ListClasses)
		school.POST("/classes", admin, act("class.create"), h.Academics.CreateClass)
		school.PUT("/classes/:id", admin, act("class.update"), h.Academics.UpdateClass)

		school.GET("/courses", h.Academics.ListCourses)
		school.POST("/courses", admin, act("course.create"), h.Academics.CreateCourse)
		school.PUT("/courses/:id", admin, act("course.update"), h.Academics.UpdateCourse)

		school.GET("/grades", h.Academics.ListGrades)
		school.POST("/grades", staff, act("grade.record"), h.Academics.RecordGrade)

		school.GET("/attendance", staff, h.Attendance.List)
		school.POST("/attendance", staff, act("attendance.record"), h.Attendance.Record)
		school.GET("/attendance/summary", staff, h.Attendance.SchoolSummary)
		school.GET("/attendance/students/:id", h.Attendance.StudentSummary)

		school.GET("/finance/fees", staff, h.Finance.ListFees)
		school.POST("/finance/fees", admin, act("fee.charge"), h.Finance.ChargeFee)
		school.POST("/finance/fees/:id/payments", admin, act("fee.payment"), h.Finance.RecordPayment)
		school.POST("/finance/ledger", admin, act("ledger.append"), h.Finance.AddLedgerEntry)
		school.GET("/finance/summary", admin, h.Finance.Summary)

		school.GET("/admissions", staff, h.Admissions.List)
		school.POST("/admissions", act("admission.submit"), h.Admissions.Submit)
		school.POST("/admissions/:id/decision", admin, act("admission.decide"), h.Admissions.Decide)

		school.GET("/teams", h.Community.ListTeams)
		school.POST("/teams", staff, act("team.create"), h.Community.CreateTeam)
		school.GET("/competitions", h.Community.ListCompetitions)
		school.POST("/competitions", staff, act("competition.schedule"), h.Community.ScheduleCompetition)
		school.POST("/competitions/:id/result", staff, act("competition.result"), h.Community.RecordResult)

		school.GET("/messages", h.Community.Inbox)
		school.POST("/messages", act("message.send"), h.Community.SendMessage)
		school.POST("/messages/:id/read", h.Community.MarkRead)

		school.GET("/leaderboards/school", h.Leaderboard.School)
		school.GET("/leaderboards/classes/:classID", h.Leaderboard.Class)
		school.GET("/leaderboards/teachers/:id", staff, h.Leaderboard.TeacherPerformance)

		if h.Reports != nil {
			school.POST("/reports", staff, act("report.create"), h.Reports.Create)
			school.GET("/reports/:id", staff, h.Reports.Status)
		}
	}
}
