package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
)

// DashboardService assembles the per-tenant overview. The payload is a
// pure derivation of the tenant snapshot, so it is cached aggressively
// and invalidated on any store mutation.
type DashboardService struct {
	store  schoolReader
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(store schoolReader, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: store, cache: cache, logger: logger, now: time.Now}
}

// SchoolOverview returns the dashboard payload for one tenant. The
// boolean reports whether the payload was served from cache.
func (s *DashboardService) SchoolOverview(ctx context.Context, schoolID string) (*dto.SchoolOverview, bool, error) {
	cacheKey := dashboardCacheKey(schoolID, "overview")
	var cached dto.SchoolOverview
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, false, err
	}
	overview := s.buildOverview(school)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, overview, 0); err != nil {
			s.logger.Warn("cache overview", zap.String("school_id", schoolID), zap.Error(err))
		}
	}
	return overview, false, nil
}

func (s *DashboardService) buildOverview(school *models.SchoolData) *dto.SchoolOverview {
	now := s.now().UTC()
	overview := &dto.SchoolOverview{
		SchoolID:     school.ID,
		Name:         school.Profile.Name,
		Tier:         school.Profile.Tier,
		StudentCount: len(school.Students),
		TeacherCount: len(school.Teachers),
		ClassCount:   len(school.Classes),
		Finance:      SumFinanceTotals(school.Fees, now),
		LedgerNet:    LedgerNet(school.Expenses),
		Attendance:   SummarizeAttendance(school.Attendance),
		GeneratedAt:  now,
	}
	for _, stu := range school.Students {
		if stu.Status == models.StatusActive {
			overview.ActiveStudents++
		}
	}
	for _, adm := range school.Admissions {
		if adm.Status == models.AdmissionPending {
			overview.PendingAdmissions++
		}
	}
	for _, msg := range school.Messages {
		if !msg.Read {
			overview.UnreadMessages++
		}
	}
	// newest activity last in storage; surface the most recent ten
	activity := school.Activity
	if len(activity) > 10 {
		activity = activity[len(activity)-10:]
	}
	overview.RecentActivity = append([]models.ActivityLog(nil), activity...)
	return overview
}
