package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scolara/scolara-api/internal/models"
)

// ParseScore normalises a string-encoded score onto the 0-20 scale.
// Non-numeric or out-of-range input degrades to 0 rather than erroring;
// a bad record must never take a dashboard down.
func ParseScore(raw string) float64 {
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || score < 0 {
		return 0
	}
	if score > 20 {
		return 20
	}
	return score
}

// LetterGrade maps a 0-20 score onto the fixed letter bands. The bands are
// one platform-wide policy; the school's grading-system setting only
// selects how scores are displayed.
func LetterGrade(score float64) string {
	switch {
	case score >= 18:
		return "A+"
	case score >= 16:
		return "A"
	case score >= 14:
		return "B+"
	case score >= 12:
		return "B"
	case score >= 10:
		return "C"
	case score >= 8:
		return "D"
	case score >= 4:
		return "E"
	default:
		return "F"
	}
}

// GradePoint maps a 0-20 score onto the 0.0-4.0 GPA scale via the fixed
// piecewise bands.
func GradePoint(score float64) float64 {
	switch {
	case score >= 18:
		return 4.0
	case score >= 16:
		return 3.7
	case score >= 14:
		return 3.3
	case score >= 12:
		return 3.0
	case score >= 10:
		return 2.5
	case score >= 8:
		return 2.0
	case score >= 4:
		return 1.0
	default:
		return 0.0
	}
}

// FormatScore renders a raw score per the school's grading system. The
// stored score is untouched; this is display only.
func FormatScore(raw string, system models.GradingSystem) string {
	score := ParseScore(raw)
	switch system {
	case models.GradingLetter:
		return LetterGrade(score)
	case models.GradingGPA:
		return fmt.Sprintf("%.1f", GradePoint(score))
	default:
		return fmt.Sprintf("%.1f/20", score)
	}
}
