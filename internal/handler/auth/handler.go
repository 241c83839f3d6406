package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/suryamp/echo-chat/internal/model/user"
	"github.com/suryamp/echo-chat/internal/repository"
	authService "github.com/suryamp/echo-chat/internal/service/auth"
	"github.com/suryamp/echo-chat/pkg/utils"
)

// Handler serves the signup and login endpoints.
type Handler struct {
	authSvc *authService.Service
}

// New creates the auth handler.
func New(authSvc *authService.Service) *Handler {
	return &Handler{authSvc: authSvc}
}

// RegisterRoutes mounts the auth endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signup", h.handleSignup)
	r.Post("/auth/login", h.handleLogin)
}

type authResponse struct {
	Token string      `json:"token"`
	User  user.Public `json:"user"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || payload.Username == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "email, username and password are required")
		return
	}

	u, token, err := h.authSvc.Signup(r.Context(), payload.Email, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			utils.RespondError(w, http.StatusBadRequest, "email already exists")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "error creating user")
		return
	}

	utils.RespondJSON(w, http.StatusOK, authResponse{Token: token, User: u.Public()})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, token, err := h.authSvc.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.RespondError(w, http.StatusBadRequest, "user not found")
		case errors.Is(err, authService.ErrInvalidCredential):
			utils.RespondError(w, http.StatusBadRequest, "invalid password")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "error logging in")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, authResponse{Token: token, User: u.Public()})
}
