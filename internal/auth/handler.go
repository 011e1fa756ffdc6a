package auth

import (
	"net/http"

	"github.com/redmonkez12/friend-app/internal/httputil"
	"github.com/redmonkez12/friend-app/internal/logging"
	"github.com/redmonkez12/friend-app/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    user.Public `json:"user"`
}

// Signup handles account creation
// @Summary      Create an account
// @Description  Register with username, email and password and receive a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup fields"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing fields or username/email taken"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) error {
	var req SignupRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		return err
	}

	result, err := h.service.Register(r.Context(), RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}

	httputil.RespondJSON(w, AuthResponse{Success: true, Token: result.Token, User: result.User}, http.StatusOK)
	return nil
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing email or password"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	var req LoginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		return err
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	logging.FromContext(r.Context()).Info("user logged in", "user_id", result.User.ID)

	httputil.RespondJSON(w, AuthResponse{Success: true, Token: result.Token, User: result.User}, http.StatusOK)
	return nil
}

// Me returns the caller's profile
// @Summary      Current user
// @Description  Profile of the user the bearer token belongs to.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.Public
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	userID, err := CurrentUserID(r.Context())
	if err != nil {
		return err
	}

	profile, err := h.service.Me(r.Context(), userID)
	if err != nil {
		return err
	}

	httputil.RespondJSON(w, profile, http.StatusOK)
	return nil
}
