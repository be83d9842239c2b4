package models

import "time"

// Team is a sports or activity roster of student IDs.
type Team struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Sport      string   `json:"sport"`
	CoachName  string   `json:"coach_name"`
	StudentIDs []string `json:"student_ids"`
}

// CompetitionOutcome is derived from the recorded scores, never stored.
type CompetitionOutcome string

const (
	OutcomeWin     CompetitionOutcome = "Win"
	OutcomeLoss    CompetitionOutcome = "Loss"
	OutcomeDraw    CompetitionOutcome = "Draw"
	OutcomePending CompetitionOutcome = "Pending"
)

// Competition is a scheduled match for a team, optionally with a recorded
// result (home = this school's team).
type Competition struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	Opponent  string    `json:"opponent"`
	Venue     string    `json:"venue"`
	Date      time.Time `json:"date"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
}

// Outcome derives Win/Loss/Draw from the recorded scores.
func (c Competition) Outcome() CompetitionOutcome {
	if c.HomeScore == nil || c.AwayScore == nil {
		return OutcomePending
	}
	switch {
	case *c.HomeScore > *c.AwayScore:
		return OutcomeWin
	case *c.HomeScore < *c.AwayScore:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}
