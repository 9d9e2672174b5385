package model

import (
	"encoding/json"
	"time"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"

	// GoalStatusArchived is declared for forward compatibility with stored
	// records; no operation currently assigns it.
	GoalStatusArchived = "archived"
)

// Goldilocks difficulty band. Goal creation rejects ratings outside this
// inclusive range.
const (
	GoldilocksMin = 6
	GoldilocksMax = 8
)

// Goal is the unit of tracking. A goal owns its milestones outright; the
// whole record persists as one JSON document inside the per-user array.
type Goal struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"userId"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	DifficultyRating   int             `json:"difficultyRating"`
	EstimatedTimeframe string          `json:"estimatedTimeframe,omitempty"`
	Status             string          `json:"status"`
	Milestones         []Milestone     `json:"milestones"`
	AIAssessment       json.RawMessage `json:"aiAssessment,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// DeriveStatus computes a goal's status from its milestone list. A goal is
// completed only while it has at least one milestone and every milestone is
// completed; an empty list means active. This is the single authority for
// the rule — callers re-derive after every milestone mutation instead of
// caching the result.
func DeriveStatus(milestones []Milestone) string {
	if len(milestones) == 0 {
		return GoalStatusActive
	}
	for _, m := range milestones {
		if !m.IsCompleted {
			return GoalStatusActive
		}
	}
	return GoalStatusCompleted
}
