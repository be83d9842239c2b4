package service

import (
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type leaderboardStore interface {
	schoolReader
	Schools() []models.SchoolData
}

// LeaderboardService ranks students by their grade average, per class,
// per school or network-wide.
type LeaderboardService struct {
	store  leaderboardStore
	topN   int
	logger *zap.Logger
}

// NewLeaderboardService constructs the ranking service. topN caps every
// leaderboard; zero means unlimited.
func NewLeaderboardService(store leaderboardStore, topN int, logger *zap.Logger) *LeaderboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaderboardService{store: store, topN: topN, logger: logger}
}

// StudentAverage is the mean of a student's numeric grades on the 0-20
// scale, or 0 when the student has none.
func StudentAverage(grades []models.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += ParseScore(g.Score)
	}
	return sum / float64(len(grades))
}

// rankStudents sorts rows by average descending. The sort is stable so
// tied students keep their input order, then rank is assigned by position.
func rankStudents(rows []dto.StudentRanking, topN int) []dto.StudentRanking {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Average > rows[j].Average
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func schoolRankings(school *models.SchoolData, classID string) []dto.StudentRanking {
	byStudent := make(map[string][]models.Grade, len(school.Students))
	for _, g := range school.Grades {
		byStudent[g.StudentID] = append(byStudent[g.StudentID], g)
	}
	rows := make([]dto.StudentRanking, 0, len(school.Students))
	for _, stu := range school.Students {
		if classID != "" && stu.ClassID != classID {
			continue
		}
		if stu.Status != models.StatusActive {
			continue
		}
		grades := byStudent[stu.ID]
		avg := StudentAverage(grades)
		rows = append(rows, dto.StudentRanking{
			StudentID:   stu.ID,
			StudentName: stu.FullName,
			ClassID:     stu.ClassID,
			SchoolID:    school.ID,
			SchoolName:  school.Profile.Name,
			Average:     avg,
			Display:     FormatScore(formatFloat(avg), school.Profile.GradingSystem),
			GradeCount:  len(grades),
		})
	}
	return rows
}

// ClassLeaderboard ranks active students of one class.
func (s *LeaderboardService) ClassLeaderboard(schoolID, classID string) (*dto.LeaderboardResponse, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	rows := rankStudents(schoolRankings(school, classID), s.topN)
	return &dto.LeaderboardResponse{Scope: "class", SchoolID: schoolID, ClassID: classID, Rankings: rows}, nil
}

// SchoolLeaderboard ranks active students across a whole school.
func (s *LeaderboardService) SchoolLeaderboard(schoolID string) (*dto.LeaderboardResponse, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	rows := rankStudents(schoolRankings(school, ""), s.topN)
	return &dto.LeaderboardResponse{Scope: "school", SchoolID: schoolID, Rankings: rows}, nil
}

// NetworkLeaderboard ranks students across every school. School order is
// the store's stable listing, so cross-school ties stay deterministic.
func (s *LeaderboardService) NetworkLeaderboard() (*dto.LeaderboardResponse, error) {
	var rows []dto.StudentRanking
	for _, school := range s.store.Schools() {
		sc := school
		rows = append(rows, schoolRankings(&sc, "")...)
	}
	rows = rankStudents(rows, s.topN)
	return &dto.LeaderboardResponse{Scope: "network", Rankings: rows}, nil
}

// TeacherPerformance walks teacher → courses → class roster → grades in
// the teacher's subject. Only grades whose subject matches the course
// subject count toward the teacher's figure.
func (s *LeaderboardService) TeacherPerformance(schoolID, teacherID string) (*dto.TeacherPerformance, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	var teacher *models.Teacher
	for i := range school.Teachers {
		if school.Teachers[i].ID == teacherID {
			teacher = &school.Teachers[i]
			break
		}
	}
	if teacher == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	perf := &dto.TeacherPerformance{
		TeacherID:   teacher.ID,
		TeacherName: teacher.FullName,
		Subject:     teacher.Subject,
	}

	studentsByClass := make(map[string][]string)
	for _, stu := range school.Students {
		studentsByClass[stu.ClassID] = append(studentsByClass[stu.ClassID], stu.ID)
	}
	gradesByStudent := make(map[string][]models.Grade)
	for _, g := range school.Grades {
		gradesByStudent[g.StudentID] = append(gradesByStudent[g.StudentID], g)
	}

	var sum float64
	seenStudents := make(map[string]struct{})
	seenPairs := make(map[string]struct{})
	for _, course := range school.Courses {
		if course.TeacherID != teacherID {
			continue
		}
		perf.CourseCount++
		// Grades match on (class, subject), so two courses sharing that
		// pair must not walk the same grades twice.
		pair := course.ClassID + "|" + course.Subject
		if _, dup := seenPairs[pair]; dup {
			continue
		}
		seenPairs[pair] = struct{}{}
		for _, studentID := range studentsByClass[course.ClassID] {
			if _, seen := seenStudents[studentID]; !seen {
				seenStudents[studentID] = struct{}{}
				perf.StudentCount++
			}
			for _, g := range gradesByStudent[studentID] {
				if g.Subject != course.Subject {
					continue
				}
				perf.GradeCount++
				sum += ParseScore(g.Score)
			}
		}
	}
	if perf.GradeCount > 0 {
		perf.Average = sum / float64(perf.GradeCount)
	}
	return perf, nil
}
