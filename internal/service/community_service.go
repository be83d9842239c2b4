package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/scolara/scolara-api/internal/dto"
	"github.com/scolara/scolara-api/internal/models"
	appErrors "github.com/scolara/scolara-api/pkg/errors"
)

type communityStore interface {
	schoolReader
	AddTeam(ctx context.Context, schoolID string, team models.Team) (*models.Team, error)
	AddCompetition(ctx context.Context, schoolID string, comp models.Competition) (*models.Competition, error)
	RecordCompetitionResult(ctx context.Context, schoolID, compID string, homeScore, awayScore int) (*models.Competition, error)
	SendMessage(ctx context.Context, schoolID string, message models.Message) (*models.Message, error)
	MarkMessageRead(ctx context.Context, schoolID, messageID string) error
}

// CommunityService covers teams, competitions and internal messaging.
type CommunityService struct {
	store  communityStore
	logger *zap.Logger
}

func NewCommunityService(store communityStore, logger *zap.Logger) *CommunityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommunityService{store: store, logger: logger}
}

// CreateTeam registers a roster.
func (s *CommunityService) CreateTeam(ctx context.Context, schoolID string, team models.Team) (*models.Team, error) {
	if team.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "team name required")
	}
	return s.store.AddTeam(ctx, schoolID, team)
}

// ListTeams returns every team.
func (s *CommunityService) ListTeams(schoolID string) ([]models.Team, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	return school.Teams, nil
}

// ScheduleCompetition registers a match for a team.
func (s *CommunityService) ScheduleCompetition(ctx context.Context, schoolID string, comp models.Competition) (*dto.CompetitionView, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, team := range school.Teams {
		if team.ID == comp.TeamID {
			found = true
			break
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}
	created, err := s.store.AddCompetition(ctx, schoolID, comp)
	if err != nil {
		return nil, err
	}
	return &dto.CompetitionView{Competition: *created, Outcome: created.Outcome()}, nil
}

// RecordResult stores both scores; the outcome is derived on read.
func (s *CommunityService) RecordResult(ctx context.Context, schoolID, compID string, homeScore, awayScore int) (*dto.CompetitionView, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "scores must be non-negative")
	}
	updated, err := s.store.RecordCompetitionResult(ctx, schoolID, compID, homeScore, awayScore)
	if err != nil {
		return nil, err
	}
	return &dto.CompetitionView{Competition: *updated, Outcome: updated.Outcome()}, nil
}

// ListCompetitions returns matches, optionally for one team, with derived
// outcomes.
func (s *CommunityService) ListCompetitions(schoolID, teamID string) ([]dto.CompetitionView, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	views := make([]dto.CompetitionView, 0, len(school.Competitions))
	for _, comp := range school.Competitions {
		if teamID != "" && comp.TeamID != teamID {
			continue
		}
		views = append(views, dto.CompetitionView{Competition: comp, Outcome: comp.Outcome()})
	}
	return views, nil
}

// SendMessage stores an internal mail item.
func (s *CommunityService) SendMessage(ctx context.Context, schoolID string, message models.Message) (*models.Message, error) {
	if message.RecipientID == "" || message.Body == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "recipient and body required")
	}
	return s.store.SendMessage(ctx, schoolID, message)
}

// Inbox lists messages visible to one user: sent or received.
func (s *CommunityService) Inbox(schoolID, userID string) ([]models.Message, error) {
	school, err := s.store.Snapshot(schoolID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Message, 0, len(school.Messages))
	for _, msg := range school.Messages {
		if msg.SenderID == userID || msg.RecipientID == userID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// MarkRead flags a message as read.
func (s *CommunityService) MarkRead(ctx context.Context, schoolID, messageID string) error {
	return s.store.MarkMessageRead(ctx, schoolID, messageID)
}
