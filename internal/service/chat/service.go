package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/suryamp/echo-chat/internal/model/chat"
	"github.com/suryamp/echo-chat/internal/repository"
)

var ErrSessionNotFound = errors.New("session not found")

// Service encapsulates session and message lifecycle over the injected
// repositories.
type Service struct {
	sessions repository.SessionRepository
	messages repository.MessageRepository
}

// NewService wires the chat service to its stores.
func NewService(sessions repository.SessionRepository, messages repository.MessageRepository) *Service {
	return &Service{sessions: sessions, messages: messages}
}

// CreateSession provisions an empty session owned by the given user.
func (s *Service) CreateSession(ctx context.Context, ownerID string) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
		Messages:  make([]chat.Message, 0, 16),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return chat.Session{}, err
	}
	return session, nil
}

// ListSessions returns the sessions owned by the given user.
func (s *Service) ListSessions(ctx context.Context, ownerID string) ([]chat.Session, error) {
	return s.sessions.ListByOwner(ctx, ownerID)
}

// AppendMessage stamps the message and appends it to the session history.
func (s *Service) AppendMessage(ctx context.Context, sessionID string, message chat.Message) (chat.Message, error) {
	if sessionID == "" {
		return chat.Message{}, ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}

	err := s.sessions.AppendMessage(ctx, sessionID, message)
	if errors.Is(err, repository.ErrNotFound) {
		return chat.Message{}, ErrSessionNotFound
	}
	if err != nil {
		return chat.Message{}, err
	}
	return message, nil
}

// SaveMessage stores an owner-stamped message outside any session document.
// When the message names a session it is appended there as well; the append
// happens first so a missing session leaves no standalone row behind.
func (s *Service) SaveMessage(ctx context.Context, message chat.Message) (chat.Message, error) {
	message.ID = uuid.NewString()
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}

	if message.SessionID != "" {
		embedded := message
		embedded.SessionID = ""
		embedded.OwnerID = ""
		err := s.sessions.AppendMessage(ctx, message.SessionID, embedded)
		if errors.Is(err, repository.ErrNotFound) {
			return chat.Message{}, ErrSessionNotFound
		}
		if err != nil {
			return chat.Message{}, err
		}
	}

	if err := s.messages.Insert(ctx, message); err != nil {
		return chat.Message{}, err
	}
	return message, nil
}

// LoadTranscript returns the stored messages for a session, oldest first.
func (s *Service) LoadTranscript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return session.Messages, nil
}
