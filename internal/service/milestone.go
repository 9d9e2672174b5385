package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/gonogoapp/gonogo/internal/model"
	"github.com/gonogoapp/gonogo/internal/repository"
)

var (
	ErrActionBalance = errors.New("milestone needs at least one go action and one no_go action")
	ErrEmptyComment  = errors.New("comment text is required")
)

// jackpotProbability is the parameter of the single Bernoulli trial drawn
// on first completion. Draws are i.i.d. — no streak logic, no guarantee of
// an eventual jackpot.
const jackpotProbability = 0.15

const (
	rewardMessageJackpot   = "Jackpot! You hit the bonus reward."
	rewardMessageStandard  = "Milestone complete. Standard reward earned."
	rewardMessageCompleted = "Already completed."
)

// MilestoneService mutates milestones inside their owning goal's record.
// Every operation resolves the owning goal first, applies the change in
// memory, re-derives the goal status, and writes the record back whole.
type MilestoneService struct {
	repo repository.GoalRepository
	rng  func() float64
}

func NewMilestoneService(repo repository.GoalRepository) *MilestoneService {
	return &MilestoneService{
		repo: repo,
		rng:  rand.Float64,
	}
}

// MilestoneUpdate carries the fields Update may merge. A non-nil Actions
// slice replaces the existing list wholesale and is re-validated against
// the Go/No-Go obligation.
type MilestoneUpdate struct {
	Title    *string
	Deadline *time.Time
	Actions  []model.Action
}

func (s *MilestoneService) Create(userID, goalID, title string, deadline *time.Time, actions []model.Action) (*model.Milestone, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !model.HasActionBalance(actions) {
		return nil, ErrActionBalance
	}

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	// Stamp ids on a copy; the caller's slice stays untouched.
	actions = append([]model.Action(nil), actions...)
	for i := range actions {
		actions[i].ID = uuid.New().String()
	}

	milestone := model.Milestone{
		ID:             uuid.New().String(),
		GoalID:         goal.ID,
		Title:          title,
		Deadline:       deadline,
		IsCompleted:    false,
		RewardReceived: model.RewardNone,
		Actions:        actions,
		Comments:       []model.Comment{},
		CreatedAt:      time.Now(),
	}

	goal.Milestones = append(goal.Milestones, milestone)
	err = s.persist(userID, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}

	return &goal.Milestones[len(goal.Milestones)-1], nil
}

func (s *MilestoneService) Update(userID, milestoneID string, in MilestoneUpdate) (*model.Milestone, error) {
	goal, idx, err := s.locate(userID, milestoneID)
	if err != nil {
		return nil, err
	}
	milestone := &goal.Milestones[idx]

	if in.Title != nil {
		if *in.Title == "" {
			return nil, ErrTitleRequired
		}
		milestone.Title = *in.Title
	}
	if in.Deadline != nil {
		milestone.Deadline = in.Deadline
	}
	if in.Actions != nil {
		// Full replacement semantics: the new list stands alone, so the
		// Go/No-Go obligation is checked against it, not the merge.
		if !model.HasActionBalance(in.Actions) {
			return nil, ErrActionBalance
		}
		replacement := append([]model.Action(nil), in.Actions...)
		for i := range replacement {
			if replacement[i].ID == "" {
				replacement[i].ID = uuid.New().String()
			}
		}
		milestone.Actions = replacement
	}

	err = s.persist(userID, goal)
	if err != nil {
		return nil, err
	}

	return milestone, nil
}

func (s *MilestoneService) Delete(userID, milestoneID string) error {
	goal, idx, err := s.locate(userID, milestoneID)
	if err != nil {
		return err
	}

	goal.Milestones = append(goal.Milestones[:idx], goal.Milestones[idx+1:]...)

	// A goal whose last milestone is removed reverts to active: the
	// all-completed rule is vacuously false on an empty list. Explicit
	// policy, enforced by DeriveStatus inside persist.
	return s.persist(userID, goal)
}

// Complete marks a milestone done and draws its reward tier. Completing an
// already-completed milestone is the idempotent happy path: the milestone
// is returned unchanged with an informational message and no random draw.
func (s *MilestoneService) Complete(userID, milestoneID string) (*model.Milestone, string, error) {
	goal, idx, err := s.locate(userID, milestoneID)
	if err != nil {
		return nil, "", err
	}
	milestone := &goal.Milestones[idx]

	if milestone.IsCompleted {
		return milestone, rewardMessageCompleted, nil
	}

	milestone.IsCompleted = true
	milestone.RewardReceived = drawReward(s.rng)

	err = s.persist(userID, goal)
	if err != nil {
		return nil, "", err
	}

	message := rewardMessageStandard
	if milestone.RewardReceived == model.RewardJackpot {
		message = rewardMessageJackpot
	}

	return milestone, message, nil
}

func (s *MilestoneService) AddComment(userID, milestoneID, text string, commentType model.CommentType) (*model.Comment, error) {
	if text == "" {
		return nil, ErrEmptyComment
	}
	if commentType == "" {
		commentType = model.CommentTypeLog
	}

	goal, idx, err := s.locate(userID, milestoneID)
	if err != nil {
		return nil, err
	}
	milestone := &goal.Milestones[idx]

	comment := model.Comment{
		ID:        uuid.New().String(),
		Text:      text,
		Type:      commentType,
		CreatedAt: time.Now(),
	}
	milestone.Comments = append(milestone.Comments, comment)

	err = s.persist(userID, goal)
	if err != nil {
		return nil, err
	}

	return &milestone.Comments[len(milestone.Comments)-1], nil
}

func (s *MilestoneService) DeleteComment(userID, milestoneID, commentID string) error {
	goal, idx, err := s.locate(userID, milestoneID)
	if err != nil {
		return err
	}
	milestone := &goal.Milestones[idx]

	for i, c := range milestone.Comments {
		if c.ID == commentID {
			milestone.Comments = append(milestone.Comments[:i], milestone.Comments[i+1:]...)
			return s.persist(userID, goal)
		}
	}

	return repository.ErrCommentNotFound
}

// locate resolves the goal owning the given milestone by scanning the
// user's array. O(n) over a per-user dataset of tens of records.
func (s *MilestoneService) locate(userID, milestoneID string) (*model.Goal, int, error) {
	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, 0, err
	}

	for i := range goals {
		for j := range goals[i].Milestones {
			if goals[i].Milestones[j].ID == milestoneID {
				return &goals[i], j, nil
			}
		}
	}

	return nil, 0, repository.ErrMilestoneNotFound
}

// persist re-derives the goal status and writes the record back. Status is
// never cached; this is the only write path for milestone mutations.
func (s *MilestoneService) persist(userID string, goal *model.Goal) error {
	goal.Status = model.DeriveStatus(goal.Milestones)
	goal.UpdatedAt = time.Now()
	return s.repo.Update(userID, goal)
}

// drawReward runs the single uniform draw deciding the reward tier.
func drawReward(rng func() float64) model.Reward {
	if rng() < jackpotProbability {
		return model.RewardJackpot
	}
	return model.RewardStandard
}
