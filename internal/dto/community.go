package dto

import "github.com/scolara/scolara-api/internal/models"

// CompetitionView is a match plus its derived outcome from the school
// team's point of view.
type CompetitionView struct {
	models.Competition
	Outcome models.CompetitionOutcome `json:"outcome"`
}

// RecordResultRequest stores both scores of a finished match.
type RecordResultRequest struct {
	HomeScore int `json:"home_score" validate:"gte=0"`
	AwayScore int `json:"away_score" validate:"gte=0"`
}
