package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

// RemoteStore is the persistence collaborator behind the in-memory mirror.
type RemoteStore interface {
	All(ctx context.Context) ([]models.SchoolData, error)
	Merge(ctx context.Context, id string, fields map[string]interface{}) error
	AppendElement(ctx context.Context, id, field string, elem interface{}) error
	RemoveElement(ctx context.Context, id, field, elemID string) error
	Insert(ctx context.Context, school *models.SchoolData) error
	Seed(ctx context.Context, schools []models.SchoolData) error
}

// ActionObserver receives the timing of each named store action,
// remote write included.
type ActionObserver interface {
	ObserveStoreAction(action string, duration time.Duration)
}

// Store owns the in-memory tenant map. It is the only writer: collections
// leave the store as copies, and every mutation goes through a named
// action. Each action is two-phase: the remote write must succeed before
// the local mirror is patched, so a failed call leaves the mirror at its
// last-known-good state with nothing to roll back.
type Store struct {
	mu       sync.RWMutex
	remote   RemoteStore
	schools  map[string]*models.SchoolData
	logger   *zap.Logger
	observer ActionObserver
	now      func() time.Time
}

// New constructs an empty store; call Load before serving.
func New(remote RemoteStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		remote:  remote,
		schools: make(map[string]*models.SchoolData),
		logger:  logger,
		now:     time.Now,
	}
}

// SetObserver registers the metrics sink for action timings. Set it once
// during startup; the field is read without synchronization.
func (s *Store) SetObserver(observer ActionObserver) {
	s.observer = observer
}

// observe is meant to run deferred with the start time captured at the
// top of the action.
func (s *Store) observe(action string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveStoreAction(action, s.now().Sub(start))
	}
}

// Load refreshes the whole mirror from the remote store, seeding it first
// when empty and a seed set is provided.
func (s *Store) Load(ctx context.Context, seed []models.SchoolData) error {
	if len(seed) > 0 {
		if err := s.remote.Seed(ctx, seed); err != nil {
			return err
		}
	}
	schools, err := s.remote.All(ctx)
	if err != nil {
		return err
	}
	next := make(map[string]*models.SchoolData, len(schools))
	for i := range schools {
		school := schools[i]
		next[school.ID] = &school
	}
	s.mu.Lock()
	s.schools = next
	s.mu.Unlock()
	s.logger.Info("tenant mirror loaded", zap.Int("schools", len(next)))
	return nil
}

// Snapshot returns a copy of one tenant's data. Collection slices are
// cloned so callers cannot mutate the mirror.
func (s *Store) Snapshot(schoolID string) (*models.SchoolData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	school, ok := s.schools[schoolID]
	if !ok {
		return nil, appErrors.ErrTenantMissing
	}
	clone := cloneSchool(school)
	return &clone, nil
}

// Schools returns copies of every tenant ordered by ID, for the
// global-admin rollups. The fixed order keeps cross-tenant rankings
// deterministic.
func (s *Store) Schools() []models.SchoolData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SchoolData, 0, len(s.schools))
	for _, school := range s.schools {
		out = append(out, cloneSchool(school))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SchoolIDs lists known tenant identifiers in stable order.
func (s *Store) SchoolIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.schools))
	for id := range s.schools {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddSchool provisions a new tenant document.
func (s *Store) AddSchool(ctx context.Context, school models.SchoolData) error {
	defer s.observe("school.add", s.now())
	if err := s.remote.Insert(ctx, &school); err != nil {
		return remoteErr(err)
	}
	s.mu.Lock()
	s.schools[school.ID] = &school
	s.mu.Unlock()
	return nil
}

// UpdateProfile merges new tenant-level configuration.
func (s *Store) UpdateProfile(ctx context.Context, schoolID string, profile models.SchoolProfile) error {
	defer s.observe("profile.update", s.now())
	if _, err := s.Snapshot(schoolID); err != nil {
		return err
	}
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"profile": profile}); err != nil {
		return remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Profile = profile
	}
	s.mu.Unlock()
	return nil
}

// AddAccount appends a login identity to the tenant document.
func (s *Store) AddAccount(ctx context.Context, schoolID string, account models.Account) (*models.Account, error) {
	defer s.observe("account.add", s.now())
	if _, err := s.Snapshot(schoolID); err != nil {
		return nil, err
	}
	if account.ID == "" {
		account.ID = newID()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = s.now().UTC()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "accounts", account); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Accounts = append(school.Accounts, account)
	}
	s.mu.Unlock()
	return &account, nil
}

// LogActivity appends an audit line to the tenant's trail.
func (s *Store) LogActivity(ctx context.Context, schoolID string, entry models.ActivityLog) error {
	defer s.observe("activity.log", s.now())
	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = s.now().UTC()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "activity", entry); err != nil {
		return remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Activity = append(school.Activity, entry)
	}
	s.mu.Unlock()
	return nil
}

func newID() string {
	return uuid.NewString()
}

func remoteErr(err error) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "remote store write failed")
}

func cloneSchool(school *models.SchoolData) models.SchoolData {
	clone := *school
	clone.Students = append([]models.Student(nil), school.Students...)
	clone.Teachers = append([]models.Teacher(nil), school.Teachers...)
	clone.Classes = append([]models.Class(nil), school.Classes...)
	clone.Courses = append([]models.Course(nil), school.Courses...)
	clone.Grades = append([]models.Grade(nil), school.Grades...)
	clone.Attendance = append([]models.AttendanceRecord(nil), school.Attendance...)
	clone.Fees = append([]models.FinanceRecord(nil), school.Fees...)
	clone.Expenses = append([]models.Expense(nil), school.Expenses...)
	clone.Admissions = append([]models.Admission(nil), school.Admissions...)
	clone.Teams = append([]models.Team(nil), school.Teams...)
	clone.Competitions = append([]models.Competition(nil), school.Competitions...)
	clone.Messages = append([]models.Message(nil), school.Messages...)
	clone.Activity = append([]models.ActivityLog(nil), school.Activity...)
	clone.Accounts = append([]models.Account(nil), school.Accounts...)
	return clone
}
