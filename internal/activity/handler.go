package activity

import (
	"net/http"

	"github.com/redmonkez12/friend-app/internal/auth"
	"github.com/redmonkez12/friend-app/internal/httputil"
)

// Handler contains HTTP handlers for activity endpoints
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create logs an activity for the caller
// @Summary      Log an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body NewActivity true "Activity fields"
// @Success      200 {object} httputil.CreatedResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Failed to add activity"
// @Router       /api/activities [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		return err
	}

	var req NewActivity
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

// List returns the caller's activities
// @Summary      List activities
// @Description  The caller's activities, most recent date first.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Activity
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Failed to fetch activities"
// @Router       /api/activities [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		return err
	}

	activities, err := h.repo.ListForOwner(r.Context(), userID)
	if err != nil {
		return err
	}

	httputil.RespondJSON(w, activities, http.StatusOK)
	return nil
}
