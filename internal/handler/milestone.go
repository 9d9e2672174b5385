package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gonogoapp/gonogo/internal/ctxkeys"
	"github.com/gonogoapp/gonogo/internal/model"
	"github.com/gonogoapp/gonogo/internal/service"
)

type MilestoneHandler struct {
	milestoneService *service.MilestoneService
}

func NewMilestoneHandler(milestoneService *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

type createMilestoneRequest struct {
	Title    string         `json:"title"`
	Deadline *time.Time     `json:"deadline"`
	Actions  []model.Action `json:"actions"`
}

type updateMilestoneRequest struct {
	Title    *string        `json:"title"`
	Deadline *time.Time     `json:"deadline"`
	Actions  []model.Action `json:"actions"`
}

type completeMilestoneResponse struct {
	Milestone *model.Milestone `json:"milestone"`
	Message   string           `json:"message"`
}

type addCommentRequest struct {
	Text string            `json:"text"`
	Type model.CommentType `json:"type"`
}

func (h *MilestoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req createMilestoneRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	milestone, err := h.milestoneService.Create(user.ID, goalID, req.Title, req.Deadline, req.Actions)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, milestone)
}

func (h *MilestoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	milestoneID := r.PathValue("id")

	var req updateMilestoneRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	milestone, err := h.milestoneService.Update(user.ID, milestoneID, service.MilestoneUpdate{
		Title:    req.Title,
		Deadline: req.Deadline,
		Actions:  req.Actions,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, milestone)
}

func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	milestoneID := r.PathValue("id")

	err := h.milestoneService.Delete(user.ID, milestoneID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MilestoneHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	milestoneID := r.PathValue("id")

	milestone, message, err := h.milestoneService.Complete(user.ID, milestoneID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, completeMilestoneResponse{
		Milestone: milestone,
		Message:   message,
	})
}

func (h *MilestoneHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	milestoneID := r.PathValue("id")

	var req addCommentRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	comment, err := h.milestoneService.AddComment(user.ID, milestoneID, req.Text, req.Type)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (h *MilestoneHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	milestoneID := r.PathValue("id")
	commentID := r.PathValue("commentID")

	err := h.milestoneService.DeleteComment(user.ID, milestoneID, commentID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
