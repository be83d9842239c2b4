// Package seed ships the bootstrap dataset loaded into an empty
// deployment so the home tenant exists from the first request.
package seed

import (
	"time"

	"github.com/scolara/scolara-api/internal/models"
)

// Schools returns the bootstrap tenants. The first entry is the platform
// home tenant that global-admin activity and operating expenses are booked
// against.
func Schools(homeTenantID string) []models.SchoolData {
	now := time.Now().UTC()
	term := now.AddDate(0, 1, 0)

	return []models.SchoolData{
		{
			ID: homeTenantID,
			Profile: models.SchoolProfile{
				Name:          "Northwood High",
				Address:       "12 Cedar Avenue",
				ContactEmail:  "office@northwood-high.example",
				Tier:          models.TierPremium,
				Currency:      "USD",
				GradingSystem: models.GradingTwentyPoint,
				Subscription: models.Subscription{
					MonthlyAmount: 450,
					Status:        models.SubscriptionPaid,
				},
			},
			Teachers: []models.Teacher{
				{ID: "tch-1", FullName: "Maya Okafor", Email: "maya.okafor@northwood-high.example", Subject: "Mathematics", Status: models.StatusActive, CreatedAt: now},
				{ID: "tch-2", FullName: "Daniel Reyes", Email: "daniel.reyes@northwood-high.example", Subject: "History", Status: models.StatusActive, CreatedAt: now},
			},
			Classes: []models.Class{
				{ID: "cls-10a", Name: "Grade 10-A", GradeLevel: "Grade 10", HomeroomTeacher: "tch-1", Room: "B204"},
				{ID: "cls-10b", Name: "Grade 10-B", GradeLevel: "Grade 10", HomeroomTeacher: "tch-2", Room: "B206"},
			},
			Courses: []models.Course{
				{
					ID: "crs-math-10a", Subject: "Mathematics", TeacherID: "tch-1", ClassID: "cls-10a",
					Schedule: []models.ScheduleSlot{{Day: "Monday", StartTime: "08:00", EndTime: "09:30", Room: "B204"}},
				},
				{
					ID: "crs-hist-10a", Subject: "History", TeacherID: "tch-2", ClassID: "cls-10a",
					Schedule: []models.ScheduleSlot{{Day: "Tuesday", StartTime: "10:00", EndTime: "11:30", Room: "B204"}},
				},
			},
			Students: []models.Student{
				{
					ID: "stu-1", FullName: "Amara Sy", GradeLevel: "Grade 10", ClassID: "cls-10a",
					ParentName: "Fatou Sy", ParentEmail: "fatou.sy@example.com",
					Status: models.StatusActive, CreatedAt: now,
				},
				{
					ID: "stu-2", FullName: "Jonas Keller", GradeLevel: "Grade 10", ClassID: "cls-10a",
					ParentName: "Petra Keller", ParentEmail: "petra.keller@example.com",
					Status: models.StatusActive, CreatedAt: now,
				},
			},
			Grades: []models.Grade{
				{ID: "grd-1", StudentID: "stu-1", Subject: "Mathematics", Score: "16", Type: "Exam", TeacherID: "tch-1", TeacherName: "Maya Okafor", RecordedAt: now},
				{ID: "grd-2", StudentID: "stu-2", Subject: "History", Score: "13.5", Type: "Quiz", TeacherID: "tch-2", TeacherName: "Daniel Reyes", RecordedAt: now},
			},
			Attendance: []models.AttendanceRecord{
				{ID: "att-1", StudentID: "stu-1", CourseID: "crs-math-10a", Date: now.Format("2006-01-02"), Status: models.AttendancePresent},
				{ID: "att-2", StudentID: "stu-2", CourseID: "crs-math-10a", Date: now.Format("2006-01-02"), Status: models.AttendanceLate},
			},
			Fees: []models.FinanceRecord{
				{ID: "fee-1", StudentID: "stu-1", Description: "First term tuition", TotalAmount: 1200, AmountPaid: 1200, DueDate: term, CreatedAt: now},
				{ID: "fee-2", StudentID: "stu-2", Description: "First term tuition", TotalAmount: 1200, AmountPaid: 400, DueDate: term, CreatedAt: now},
			},
			Expenses: []models.Expense{
				{ID: "exp-1", Type: models.LedgerExpense, Description: "Server hosting", Category: "Platform", Amount: 320, Date: now},
			},
			Admissions:   []models.Admission{},
			Teams:        []models.Team{},
			Competitions: []models.Competition{},
			Messages:     []models.Message{},
			Activity:     []models.ActivityLog{},
		},
	}
}
