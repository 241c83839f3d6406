package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suryamp/echo-chat/internal/middleware"
	"github.com/suryamp/echo-chat/internal/model/chat"
	chatService "github.com/suryamp/echo-chat/internal/service/chat"
	"github.com/suryamp/echo-chat/pkg/utils"
)

// Handler serves the bearer-protected session and message endpoints.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the session and message endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions", h.handleListSessions)
	r.Post("/sessions", h.handleCreateSession)
	r.Get("/sessions/{sessionID}/messages", h.handleTranscript)
	r.Post("/messages", h.handleSaveMessage)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "access denied")
		return
	}

	sessions, err := h.chatSvc.ListSessions(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching sessions")
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessions)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "access denied")
		return
	}

	session, err := h.chatSvc.CreateSession(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error creating session")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatSvc.LoadTranscript(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "error fetching messages")
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleSaveMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "access denied")
		return
	}

	var payload struct {
		SessionID string `json:"sessionId"`
		Content   string `json:"content"`
		Sender    string `json:"sender"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Sender == "" {
		payload.Sender = chat.SenderUser
	}

	message := chat.Message{
		SessionID: payload.SessionID,
		OwnerID:   userID,
		Content:   payload.Content,
		Sender:    payload.Sender,
	}

	saved, err := h.chatSvc.SaveMessage(r.Context(), message)
	if err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "error saving message")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, saved)
}
