package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gonogoapp/gonogo/internal/ctxkeys"
	"github.com/gonogoapp/gonogo/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type createGoalRequest struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	DifficultyRating   int             `json:"difficultyRating"`
	EstimatedTimeframe string          `json:"estimatedTimeframe"`
	AIAssessment       json.RawMessage `json:"aiAssessment"`
}

type updateGoalRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	AIAssessment json.RawMessage `json:"aiAssessment"`
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(user.ID, goalID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createGoalRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	goal, err := h.goalService.Create(user.ID, req.Title, req.Description, req.DifficultyRating, req.EstimatedTimeframe, req.AIAssessment)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req updateGoalRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	goal, err := h.goalService.Update(user.ID, goalID, service.GoalUpdate{
		Title:        req.Title,
		Description:  req.Description,
		AIAssessment: req.AIAssessment,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(user.ID, goalID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
