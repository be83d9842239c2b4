package store

import (
	"context"

	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

// AddAdmission stores a new application in Pending state.
func (s *Store) AddAdmission(ctx context.Context, schoolID string, admission models.Admission) (*models.Admission, error) {
	defer s.observe("admission.add", s.now())
	if admission.ID == "" {
		admission.ID = newID()
	}
	if admission.SubmittedAt.IsZero() {
		admission.SubmittedAt = s.now().UTC()
	}
	admission.Status = models.AdmissionPending
	if err := s.remote.AppendElement(ctx, schoolID, "admissions", admission); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Admissions = append(school.Admissions, admission)
	}
	s.mu.Unlock()
	return &admission, nil
}

// UpdateAdmission replaces an application record. Transition legality is
// the admission service's concern; the store only persists.
func (s *Store) UpdateAdmission(ctx context.Context, schoolID string, admission models.Admission) (*models.Admission, error) {
	defer s.observe("admission.update", s.now())
	s.mu.RLock()
	school, ok := s.schools[schoolID]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.ErrTenantMissing
	}
	next := append([]models.Admission(nil), school.Admissions...)
	idx := -1
	for i := range next {
		if next[i].ID == admission.ID {
			idx = i
			break
		}
	}
	s.mu.RUnlock()
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "admission not found")
	}
	next[idx] = admission
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"admissions": next}); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Admissions = next
	}
	s.mu.Unlock()
	return &admission, nil
}

// AddTeam registers a roster.
func (s *Store) AddTeam(ctx context.Context, schoolID string, team models.Team) (*models.Team, error) {
	defer s.observe("team.add", s.now())
	if team.ID == "" {
		team.ID = newID()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "teams", team); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Teams = append(school.Teams, team)
	}
	s.mu.Unlock()
	return &team, nil
}

// AddCompetition schedules a match for a team.
func (s *Store) AddCompetition(ctx context.Context, schoolID string, comp models.Competition) (*models.Competition, error) {
	defer s.observe("competition.add", s.now())
	if comp.ID == "" {
		comp.ID = newID()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "competitions", comp); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Competitions = append(school.Competitions, comp)
	}
	s.mu.Unlock()
	return &comp, nil
}

// RecordCompetitionResult stores the two scores; the outcome is always
// derived by comparison, never persisted.
func (s *Store) RecordCompetitionResult(ctx context.Context, schoolID, compID string, homeScore, awayScore int) (*models.Competition, error) {
	defer s.observe("competition.result", s.now())
	s.mu.RLock()
	school, ok := s.schools[schoolID]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.ErrTenantMissing
	}
	next := append([]models.Competition(nil), school.Competitions...)
	idx := -1
	for i := range next {
		if next[i].ID == compID {
			idx = i
			break
		}
	}
	s.mu.RUnlock()
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "competition not found")
	}
	next[idx].HomeScore = &homeScore
	next[idx].AwayScore = &awayScore
	updated := next[idx]
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"competitions": next}); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Competitions = next
	}
	s.mu.Unlock()
	return &updated, nil
}

// SendMessage appends an internal mail item.
func (s *Store) SendMessage(ctx context.Context, schoolID string, message models.Message) (*models.Message, error) {
	defer s.observe("message.send", s.now())
	if message.ID == "" {
		message.ID = newID()
	}
	if message.SentAt.IsZero() {
		message.SentAt = s.now().UTC()
	}
	if err := s.remote.AppendElement(ctx, schoolID, "messages", message); err != nil {
		return nil, remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Messages = append(school.Messages, message)
	}
	s.mu.Unlock()
	return &message, nil
}

// MarkMessageRead flips the delivery flag on a stored message.
func (s *Store) MarkMessageRead(ctx context.Context, schoolID, messageID string) error {
	defer s.observe("message.read", s.now())
	s.mu.RLock()
	school, ok := s.schools[schoolID]
	if !ok {
		s.mu.RUnlock()
		return appErrors.ErrTenantMissing
	}
	next := append([]models.Message(nil), school.Messages...)
	idx := -1
	for i := range next {
		if next[i].ID == messageID {
			idx = i
			break
		}
	}
	s.mu.RUnlock()
	if idx < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "message not found")
	}
	next[idx].Read = true
	if err := s.remote.Merge(ctx, schoolID, map[string]interface{}{"messages": next}); err != nil {
		return remoteErr(err)
	}
	s.mu.Lock()
	if school, ok := s.schools[schoolID]; ok {
		school.Messages = next
	}
	s.mu.Unlock()
	return nil
}
