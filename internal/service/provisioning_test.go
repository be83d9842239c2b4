package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type stubProvisioningStore struct {
	mu       sync.Mutex
	schools  map[string]*models.SchoolData
	accounts []models.Account
}

func newStubProvisioningStore() *stubProvisioningStore {
	return &stubProvisioningStore{schools: make(map[string]*models.SchoolData)}
}

func (s *stubProvisioningStore) Snapshot(schoolID string) (*models.SchoolData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	school, ok := s.schools[schoolID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	clone := *school
	return &clone, nil
}

func (s *stubProvisioningStore) AddSchool(_ context.Context, school models.SchoolData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schools[school.ID] = &school
	return nil
}

func (s *stubProvisioningStore) AddAccount(_ context.Context, schoolID string, account models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schools[schoolID]; !ok {
		return nil, appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	account.ID = "acc-new"
	s.accounts = append(s.accounts, account)
	return &account, nil
}

func (s *stubProvisioningStore) UpdateProfile(_ context.Context, schoolID string, profile models.SchoolProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	school, ok := s.schools[schoolID]
	if !ok {
		return appErrors.Clone(appErrors.ErrTenantMissing, "")
	}
	school.Profile = profile
	return nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (r *recordingSender) Send(toName, toEmail, subject, _ string) error {
	r.mu.Lock()
	r.sent = append(r.sent, toEmail)
	r.mu.Unlock()
	if r.done != nil {
		close(r.done)
	}
	return nil
}

func validProvisionRequest() ProvisionSchoolRequest {
	return ProvisionSchoolRequest{
		SchoolID:      "Lakeside Academy",
		Name:          "Lakeside Academy",
		ContactEmail:  "office@lakeside.example",
		Tier:          models.TierStarter,
		Currency:      "EUR",
		GradingSystem: models.GradingLetter,
		MonthlyAmount: 200,
		AdminName:     "Nadia Rossi",
		AdminEmail:    "Nadia@Lakeside.example",
		AdminPassword: "correct-horse-battery",
	}
}

func TestProvisionSchoolCreatesTenantAndAdmin(t *testing.T) {
	store := newStubProvisioningStore()
	sender := &recordingSender{done: make(chan struct{})}
	svc := NewProvisioningService(store, sender, nil, nil)

	school, err := svc.ProvisionSchool(context.Background(), validProvisionRequest())
	require.NoError(t, err)

	assert.Equal(t, "lakeside-academy", school.ID)
	assert.Equal(t, models.TierStarter, school.Profile.Tier)
	assert.Equal(t, models.SubscriptionPaid, school.Profile.Subscription.Status)
	assert.NotNil(t, school.Students)
	assert.Empty(t, school.Students)

	require.Len(t, store.accounts, 1)
	account := store.accounts[0]
	assert.Equal(t, models.RoleAdmin, account.Role)
	assert.Equal(t, "nadia@lakeside.example", account.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("correct-horse-battery")))

	<-sender.done
	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Nadia@Lakeside.example", sender.sent[0])
}

func TestProvisionSchoolRejectsDuplicate(t *testing.T) {
	store := newStubProvisioningStore()
	store.schools["lakeside-academy"] = &models.SchoolData{ID: "lakeside-academy"}
	svc := NewProvisioningService(store, &recordingSender{}, nil, nil)

	_, err := svc.ProvisionSchool(context.Background(), validProvisionRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestProvisionSchoolValidatesPayload(t *testing.T) {
	svc := NewProvisioningService(newStubProvisioningStore(), &recordingSender{}, nil, nil)

	req := validProvisionRequest()
	req.AdminPassword = "short"
	_, err := svc.ProvisionSchool(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateSubscription(t *testing.T) {
	store := newStubProvisioningStore()
	store.schools["lakeside-academy"] = &models.SchoolData{
		ID:      "lakeside-academy",
		Profile: models.SchoolProfile{Name: "Lakeside Academy"},
	}
	svc := NewProvisioningService(store, &recordingSender{}, nil, nil)

	err := svc.UpdateSubscription(context.Background(), "lakeside-academy", models.Subscription{
		MonthlyAmount: 350,
		Status:        models.SubscriptionOverdue,
	})
	require.NoError(t, err)

	school, err := store.Snapshot("lakeside-academy")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionOverdue, school.Profile.Subscription.Status)
	assert.Equal(t, "Lakeside Academy", school.Profile.Name)
}
