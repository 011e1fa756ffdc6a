package message

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/friend-app/internal/apperr"
	"github.com/redmonkez12/friend-app/internal/auth"
	"github.com/redmonkez12/friend-app/internal/httputil"
)

var ErrInvalidUserID = apperr.Validation("Invalid user id")

// Handler contains HTTP handlers for message endpoints
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Send delivers a message from the caller
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body NewMessage true "Recipient and body"
// @Success      200 {object} httputil.CreatedResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing receiverId or invalid body"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Failed to send message"
// @Router       /api/messages [post]
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) error {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		return err
	}

	var req NewMessage
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

// Conversation lists messages exchanged with another user
// @Summary      Conversation with a user
// @Description  Messages in both directions between the caller and otherUserId, oldest first.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        otherUserId path int true "Counterpart user id"
// @Success      200 {array} Message
// @Failure      400 {object} httputil.ErrorResponse "Invalid user id"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Failed to fetch messages"
// @Router       /api/messages/{otherUserId} [get]
func (h *Handler) Conversation(w http.ResponseWriter, r *http.Request) error {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		return err
	}

	otherID, err := strconv.ParseInt(chi.URLParam(r, "otherUserId"), 10, 64)
	if err != nil {
		return ErrInvalidUserID
	}

	messages, err := h.repo.ListBetween(r.Context(), userID, otherID)
	if err != nil {
		return err
	}

	httputil.RespondJSON(w, messages, http.StatusOK)
	return nil
}
