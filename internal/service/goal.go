package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gonogoapp/gonogo/internal/model"
	"github.com/gonogoapp/gonogo/internal/repository"
)

var (
	ErrTitleRequired        = errors.New("title is required")
	ErrDifficultyOutOfRange = fmt.Errorf("difficulty rating outside the Goldilocks range [%d,%d]", model.GoldilocksMin, model.GoldilocksMax)
)

type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// GoalUpdate carries the fields Update may merge over an existing goal.
// Nil fields are left untouched. Difficulty and status are deliberately
// absent: difficulty is fixed at creation and status is always derived.
type GoalUpdate struct {
	Title        *string
	Description  *string
	AIAssessment json.RawMessage
}

// Create validates the Goldilocks rule before any write. The assessment
// payload comes from an external suggestion service and is stored verbatim,
// never interpreted.
func (s *GoalService) Create(userID, title, description string, difficulty int, timeframe string, assessment json.RawMessage) (*model.Goal, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	if difficulty < model.GoldilocksMin || difficulty > model.GoldilocksMax {
		return nil, fmt.Errorf("rating %d: %w", difficulty, ErrDifficultyOutOfRange)
	}

	now := time.Now()
	goal := &model.Goal{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Title:              title,
		Description:        description,
		DifficultyRating:   difficulty,
		EstimatedTimeframe: timeframe,
		Status:             model.GoalStatusActive,
		Milestones:         []model.Milestone{},
		AIAssessment:       assessment,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := s.repo.Insert(userID, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Goals(userID string) ([]model.Goal, error) {
	return s.repo.Goals(userID)
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

// Update shallow-merges the provided fields over the stored record.
func (s *GoalService) Update(userID, goalID string, in GoalUpdate) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, ErrTitleRequired
		}
		goal.Title = *in.Title
	}
	if in.Description != nil {
		goal.Description = *in.Description
	}
	if in.AIAssessment != nil {
		goal.AIAssessment = in.AIAssessment
	}
	goal.UpdatedAt = time.Now()

	err = s.repo.Update(userID, goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete is a silent no-op when the id is absent, matching the repository's
// idempotent-by-filter semantics.
func (s *GoalService) Delete(userID, goalID string) error {
	return s.repo.Delete(userID, goalID)
}
