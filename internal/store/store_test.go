package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/models"
)

type mockRemote struct {
	schools   []models.SchoolData
	merged    map[string]map[string]interface{}
	appended  map[string][]interface{}
	removed   []string
	inserted  []string
	failWrite error
}

func newMockRemote(schools ...models.SchoolData) *mockRemote {
	return &mockRemote{
		schools:  schools,
		merged:   make(map[string]map[string]interface{}),
		appended: make(map[string][]interface{}),
	}
}

func (m *mockRemote) All(ctx context.Context) ([]models.SchoolData, error) {
	return m.schools, nil
}

func (m *mockRemote) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	m.merged[id] = fields
	return nil
}

func (m *mockRemote) AppendElement(ctx context.Context, id, field string, elem interface{}) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	m.appended[id+"/"+field] = append(m.appended[id+"/"+field], elem)
	return nil
}

func (m *mockRemote) RemoveElement(ctx context.Context, id, field, elemID string) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	m.removed = append(m.removed, id+"/"+field+"/"+elemID)
	return nil
}

func (m *mockRemote) Insert(ctx context.Context, school *models.SchoolData) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	m.inserted = append(m.inserted, school.ID)
	return nil
}

func (m *mockRemote) Seed(ctx context.Context, schools []models.SchoolData) error {
	return nil
}

func loadedStore(t *testing.T, remote *mockRemote) *Store {
	t.Helper()
	s := New(remote, zap.NewNop())
	require.NoError(t, s.Load(context.Background(), nil))
	return s
}

func TestStoreAddStudentPatchesLocalAfterRemote(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw"})
	s := loadedStore(t, remote)

	created, err := s.AddStudent(context.Background(), "nw", models.Student{FullName: "Ada"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusActive, created.Status)
	assert.Len(t, remote.appended["nw/students"], 1)

	snap, err := s.Snapshot("nw")
	require.NoError(t, err)
	require.Len(t, snap.Students, 1)
	assert.Equal(t, "Ada", snap.Students[0].FullName)
}

func TestStoreRemoteFailureLeavesMirrorUntouched(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw"})
	s := loadedStore(t, remote)
	remote.failWrite = errors.New("backend down")

	_, err := s.AddStudent(context.Background(), "nw", models.Student{FullName: "Ada"})
	require.Error(t, err)

	snap, err := s.Snapshot("nw")
	require.NoError(t, err)
	assert.Empty(t, snap.Students)
}

func TestStoreUnknownTenant(t *testing.T) {
	s := loadedStore(t, newMockRemote())

	_, err := s.Snapshot("ghost")
	assert.Error(t, err)

	_, err = s.RecordPayment(context.Background(), "ghost", "f1", 100)
	assert.Error(t, err)
}

func TestStoreRecordPaymentIsAdditive(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw", Fees: []models.FinanceRecord{
		{ID: "f1", StudentID: "s1", TotalAmount: 50000, AmountPaid: 10000},
	}})
	s := loadedStore(t, remote)

	fee, err := s.RecordPayment(context.Background(), "nw", "f1", 15000)
	require.NoError(t, err)
	assert.Equal(t, float64(25000), fee.AmountPaid)

	// no clamp: paying past the total is accepted as-is
	fee, err = s.RecordPayment(context.Background(), "nw", "f1", 40000)
	require.NoError(t, err)
	assert.Equal(t, float64(65000), fee.AmountPaid)
}

func TestStoreRecordPaymentRejectsNonPositive(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw", Fees: []models.FinanceRecord{{ID: "f1"}}})
	s := loadedStore(t, remote)

	_, err := s.RecordPayment(context.Background(), "nw", "f1", 0)
	assert.Error(t, err)
	_, err = s.RecordPayment(context.Background(), "nw", "f1", -5)
	assert.Error(t, err)
}

func TestStoreRecordAttendanceReplacesPair(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw", Attendance: []models.AttendanceRecord{
		{ID: "a1", StudentID: "s1", CourseID: "c1", Date: "2026-03-02", Status: models.AttendanceAbsent},
		{ID: "a2", StudentID: "s1", CourseID: "c2", Date: "2026-03-02", Status: models.AttendancePresent},
	}})
	s := loadedStore(t, remote)

	err := s.RecordAttendance(context.Background(), "nw", "c1", "2026-03-02", []models.AttendanceRecord{
		{StudentID: "s1", Status: models.AttendancePresent},
		{StudentID: "s2", Status: models.AttendanceLate},
	})
	require.NoError(t, err)

	snap, err := s.Snapshot("nw")
	require.NoError(t, err)
	require.Len(t, snap.Attendance, 3)
	for _, rec := range snap.Attendance {
		if rec.CourseID == "c1" {
			assert.NotEqual(t, models.AttendanceAbsent, rec.Status)
		}
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw", Students: []models.Student{{ID: "s1", FullName: "Ada"}}})
	s := loadedStore(t, remote)

	snap, err := s.Snapshot("nw")
	require.NoError(t, err)
	snap.Students[0].FullName = "mutated"

	again, err := s.Snapshot("nw")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.Students[0].FullName)
}

func TestStoreDeleteTeacher(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw", Teachers: []models.Teacher{
		{ID: "t1", FullName: "Grace"},
		{ID: "t2", FullName: "Alan"},
	}})
	s := loadedStore(t, remote)

	require.NoError(t, s.DeleteTeacher(context.Background(), "nw", "t1"))
	assert.Contains(t, remote.removed, "nw/teachers/t1")

	snap, err := s.Snapshot("nw")
	require.NoError(t, err)
	require.Len(t, snap.Teachers, 1)
	assert.Equal(t, "t2", snap.Teachers[0].ID)
}

type recordingObserver struct {
	actions []string
}

func (r *recordingObserver) ObserveStoreAction(action string, _ time.Duration) {
	r.actions = append(r.actions, action)
}

func TestStoreActionsReachObserver(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw"})
	s := loadedStore(t, remote)
	obs := &recordingObserver{}
	s.SetObserver(obs)

	_, err := s.AddStudent(context.Background(), "nw", models.Student{FullName: "Ada"})
	require.NoError(t, err)
	_, err = s.AddFee(context.Background(), "nw", models.FinanceRecord{StudentID: "s1", TotalAmount: 100})
	require.NoError(t, err)

	assert.Equal(t, []string{"student.add", "fee.add"}, obs.actions)
}

func TestStoreWithoutObserverStillMutates(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw"})
	s := loadedStore(t, remote)

	_, err := s.AddStudent(context.Background(), "nw", models.Student{FullName: "Ada"})
	require.NoError(t, err)
}

func TestStoreRecordCompetitionResult(t *testing.T) {
	remote := newMockRemote(models.SchoolData{ID: "nw", Competitions: []models.Competition{
		{ID: "m1", TeamID: "team1", Opponent: "Eastside", Date: time.Now()},
	}})
	s := loadedStore(t, remote)

	comp, err := s.RecordCompetitionResult(context.Background(), "nw", "m1", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeWin, comp.Outcome())
}
