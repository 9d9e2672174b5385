package repository

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gonogoapp/gonogo/internal/model"
	"github.com/gonogoapp/gonogo/internal/store"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrCommentNotFound   = errors.New("comment not found")
)

// GoalRepository persists each user's goals as a single JSON array in the
// durable store. Every operation is a whole-array read-modify-write; there
// is no caching or incremental update, and insertion order is preserved.
type GoalRepository interface {
	Goals(userID string) ([]model.Goal, error)
	ByID(userID, goalID string) (*model.Goal, error)
	Insert(userID string, goal *model.Goal) error
	Update(userID string, goal *model.Goal) error
	Delete(userID, goalID string) error
	Replace(userID string, goals []model.Goal) error
	Purge(userID string) error
}

type goalRepository struct {
	kv store.KV
}

func NewGoalRepository(kv store.KV) GoalRepository {
	return &goalRepository{kv: kv}
}

// load reads and decodes the full goal array. A stored value that fails to
// parse degrades to an empty collection: the corrupt value is logged and
// left in place, never overwritten with unparseable data, and the caller
// proceeds as if the user had no goals yet.
func (r *goalRepository) load(userID string) ([]model.Goal, error) {
	raw, ok, err := r.kv.Get(store.GoalsKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []model.Goal{}, nil
	}

	var goals []model.Goal
	err = json.Unmarshal([]byte(raw), &goals)
	if err != nil {
		slog.Warn("stored goal array is unparseable, treating as empty",
			"user_id", userID,
			"error", err,
		)
		return []model.Goal{}, nil
	}
	if goals == nil {
		goals = []model.Goal{}
	}

	return goals, nil
}

func (r *goalRepository) save(userID string, goals []model.Goal) error {
	raw, err := json.Marshal(goals)
	if err != nil {
		return err
	}
	return r.kv.Set(store.GoalsKey(userID), string(raw))
}

func (r *goalRepository) Goals(userID string) ([]model.Goal, error) {
	return r.load(userID)
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goals, err := r.load(userID)
	if err != nil {
		return nil, err
	}

	for i := range goals {
		if goals[i].ID == goalID {
			return &goals[i], nil
		}
	}

	return nil, ErrGoalNotFound
}

func (r *goalRepository) Insert(userID string, goal *model.Goal) error {
	goals, err := r.load(userID)
	if err != nil {
		return err
	}

	goals = append(goals, *goal)
	return r.save(userID, goals)
}

func (r *goalRepository) Update(userID string, goal *model.Goal) error {
	goals, err := r.load(userID)
	if err != nil {
		return err
	}

	for i := range goals {
		if goals[i].ID == goal.ID {
			goals[i] = *goal
			return r.save(userID, goals)
		}
	}

	return ErrGoalNotFound
}

// Delete is idempotent by filter: a missing id is a silent no-op, not an
// error. Milestones live embedded in the goal record, so removal cascades
// structurally.
func (r *goalRepository) Delete(userID, goalID string) error {
	goals, err := r.load(userID)
	if err != nil {
		return err
	}

	kept := goals[:0]
	for _, g := range goals {
		if g.ID != goalID {
			kept = append(kept, g)
		}
	}

	return r.save(userID, kept)
}

// Replace overwrites the user's entire goal array. Backup import uses this.
func (r *goalRepository) Replace(userID string, goals []model.Goal) error {
	if goals == nil {
		goals = []model.Goal{}
	}
	return r.save(userID, goals)
}

// Purge removes the user's goal key entirely, for account deletion.
func (r *goalRepository) Purge(userID string) error {
	return r.kv.Delete(store.GoalsKey(userID))
}
