package model

import "time"

// Reward tier assigned exactly once, when a milestone is completed.
type Reward string

const (
	RewardNone     Reward = "none"
	RewardStandard Reward = "standard"
	RewardJackpot  Reward = "jackpot"
)

// ActionType classifies a milestone action as something to do or something
// to avoid.
type ActionType string

const (
	ActionGo   ActionType = "go"
	ActionNoGo ActionType = "no_go"
)

// Action is immutable once created; milestone updates replace the whole
// action list instead of editing entries in place.
type Action struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Type        ActionType `json:"type"`
}

// Milestone is a checkpoint inside a goal. GoalID is a back-reference used
// for lookup only — the milestone lives embedded in its goal's record, so
// orphans are structurally impossible. Completion is one-way.
type Milestone struct {
	ID             string     `json:"id"`
	GoalID         string     `json:"goalId"`
	Title          string     `json:"title"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	IsCompleted    bool       `json:"isCompleted"`
	RewardReceived Reward     `json:"rewardReceived"`
	Actions        []Action   `json:"actions"`
	Comments       []Comment  `json:"comments"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// HasActionBalance reports whether the action list satisfies the Go/No-Go
// obligation: at least one action to take and at least one to avoid.
func HasActionBalance(actions []Action) bool {
	var hasGo, hasNoGo bool
	for _, a := range actions {
		switch a.Type {
		case ActionGo:
			hasGo = true
		case ActionNoGo:
			hasNoGo = true
		}
	}
	return hasGo && hasNoGo
}
