package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type stubLeaderboardStore struct {
	schools []models.SchoolData
}

func (s *stubLeaderboardStore) Snapshot(schoolID string) (*models.SchoolData, error) {
	for i := range s.schools {
		if s.schools[i].ID == schoolID {
			clone := s.schools[i]
			return &clone, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrTenantMissing, "")
}

func (s *stubLeaderboardStore) Schools() []models.SchoolData {
	return s.schools
}

func leaderboardFixture() models.SchoolData {
	return models.SchoolData{
		ID:      "northwood-high",
		Profile: models.SchoolProfile{Name: "Northwood High", GradingSystem: models.GradingTwentyPoint},
		Students: []models.Student{
			{ID: "stu-1", FullName: "Ama Mensah", ClassID: "cls-10a", Status: models.StatusActive},
			{ID: "stu-2", FullName: "Brian Otieno", ClassID: "cls-10a", Status: models.StatusActive},
			{ID: "stu-3", FullName: "Chloe Dupont", ClassID: "cls-10a", Status: models.StatusActive},
			{ID: "stu-4", FullName: "Dora Eze", ClassID: "cls-10b", Status: models.StatusActive},
			{ID: "stu-5", FullName: "Evan Price", ClassID: "cls-10a", Status: models.StatusTransferred},
		},
		Teachers: []models.Teacher{
			{ID: "tch-1", FullName: "Mr. Kamau", Subject: "Mathematics"},
		},
		Classes: []models.Class{
			{ID: "cls-10a", Name: "Grade 10-A"},
			{ID: "cls-10b", Name: "Grade 10-B"},
		},
		Courses: []models.Course{
			{ID: "crs-1", Subject: "Mathematics", TeacherID: "tch-1", ClassID: "cls-10a"},
		},
		Grades: []models.Grade{
			{StudentID: "stu-1", Subject: "Mathematics", Score: "16"},
			{StudentID: "stu-1", Subject: "Mathematics", Score: "18"},
			{StudentID: "stu-2", Subject: "Mathematics", Score: "17"},
			{StudentID: "stu-3", Subject: "Mathematics", Score: "17"},
			{StudentID: "stu-3", Subject: "History", Score: "9"},
			{StudentID: "stu-4", Subject: "Mathematics", Score: "12"},
		},
	}
}

func TestStudentAverageEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, StudentAverage(nil))
}

func TestClassLeaderboardStableTies(t *testing.T) {
	store := &stubLeaderboardStore{schools: []models.SchoolData{leaderboardFixture()}}
	svc := NewLeaderboardService(store, 0, nil)

	resp, err := svc.ClassLeaderboard("northwood-high", "cls-10a")
	require.NoError(t, err)
	require.Len(t, resp.Rankings, 3) // transferred student excluded

	// stu-1 averages (16+18)/2 = 17, stu-2 averages 17, stu-3 averages
	// (17+9)/2 = 13. The tie keeps input order: stu-1 before stu-2.
	assert.Equal(t, "stu-1", resp.Rankings[0].StudentID)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.Equal(t, "stu-2", resp.Rankings[1].StudentID)
	assert.Equal(t, 2, resp.Rankings[1].Rank)
	assert.Equal(t, "stu-3", resp.Rankings[2].StudentID)
	assert.InDelta(t, 13.0, resp.Rankings[2].Average, 0.001)
}

func TestSchoolLeaderboardTopN(t *testing.T) {
	store := &stubLeaderboardStore{schools: []models.SchoolData{leaderboardFixture()}}
	svc := NewLeaderboardService(store, 2, nil)

	resp, err := svc.SchoolLeaderboard("northwood-high")
	require.NoError(t, err)
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, "stu-1", resp.Rankings[0].StudentID)
	assert.Equal(t, "stu-2", resp.Rankings[1].StudentID)
}

func TestNetworkLeaderboardSpansSchools(t *testing.T) {
	second := models.SchoolData{
		ID:      "lakeside-academy",
		Profile: models.SchoolProfile{Name: "Lakeside Academy", GradingSystem: models.GradingLetter},
		Students: []models.Student{
			{ID: "stu-9", FullName: "Zara Khan", ClassID: "cls-1", Status: models.StatusActive},
		},
		Grades: []models.Grade{
			{StudentID: "stu-9", Subject: "Physics", Score: "19"},
		},
	}
	store := &stubLeaderboardStore{schools: []models.SchoolData{leaderboardFixture(), second}}
	svc := NewLeaderboardService(store, 0, nil)

	resp, err := svc.NetworkLeaderboard()
	require.NoError(t, err)
	require.NotEmpty(t, resp.Rankings)
	assert.Equal(t, "stu-9", resp.Rankings[0].StudentID)
	assert.Equal(t, "lakeside-academy", resp.Rankings[0].SchoolID)
	// 19/20 renders as A+ under the letter system
	assert.Equal(t, "A+", resp.Rankings[0].Display)
}

func TestTeacherPerformanceMultiHop(t *testing.T) {
	store := &stubLeaderboardStore{schools: []models.SchoolData{leaderboardFixture()}}
	svc := NewLeaderboardService(store, 0, nil)

	perf, err := svc.TeacherPerformance("northwood-high", "tch-1")
	require.NoError(t, err)

	assert.Equal(t, 1, perf.CourseCount)
	// cls-10a roster includes the transferred student
	assert.Equal(t, 4, perf.StudentCount)
	// only Mathematics grades of cls-10a students count: 16, 18, 17, 17
	assert.Equal(t, 4, perf.GradeCount)
	assert.InDelta(t, 17.0, perf.Average, 0.001)
}

func TestTeacherPerformanceDuplicateCoursePair(t *testing.T) {
	school := leaderboardFixture()
	// A second Mathematics course for the same class (a split timetable)
	// must not double the grade walk.
	school.Courses = append(school.Courses, models.Course{
		ID: "crs-2", Subject: "Mathematics", TeacherID: "tch-1", ClassID: "cls-10a",
	})
	store := &stubLeaderboardStore{schools: []models.SchoolData{school}}
	svc := NewLeaderboardService(store, 0, nil)

	perf, err := svc.TeacherPerformance("northwood-high", "tch-1")
	require.NoError(t, err)

	assert.Equal(t, 2, perf.CourseCount)
	assert.Equal(t, 4, perf.StudentCount)
	assert.Equal(t, 4, perf.GradeCount)
	assert.InDelta(t, 17.0, perf.Average, 0.001)
}

func TestTeacherPerformanceUnknownTeacher(t *testing.T) {
	store := &stubLeaderboardStore{schools: []models.SchoolData{leaderboardFixture()}}
	svc := NewLeaderboardService(store, 0, nil)

	_, err := svc.TeacherPerformance("northwood-high", "tch-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
