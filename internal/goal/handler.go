package goal

import (
	"net/http"

	"github.com/redmonkez12/friend-app/internal/auth"
	"github.com/redmonkez12/friend-app/internal/httputil"
)

// Handler contains HTTP handlers for goal endpoints
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create adds a goal for the caller
// @Summary      Create a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body NewGoal true "Goal fields"
// @Success      200 {object} httputil.CreatedResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Failed to create goal"
// @Router       /api/goals [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		return err
	}

	var req NewGoal
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		return err
	}

	id, err := h.repo.Create(r.Context(), userID, req)
	if err != nil {
		return err
	}

	httputil.RespondJSON(w, httputil.CreatedResponse{Success: true, ID: id}, http.StatusOK)
	return nil
}

// List returns the caller's goals
// @Summary      List goals
// @Description  The caller's goals, soonest deadline first.
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Goal
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Failed to fetch goals"
// @Router       /api/goals [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		return err
	}

	goals, err := h.repo.ListForOwner(r.Context(), userID)
	if err != nil {
		return err
	}

	httputil.RespondJSON(w, goals, http.StatusOK)
	return nil
}
