package repository

import (
	"context"

	"github.com/suryamp/echo-chat/internal/model/chat"
	"github.com/suryamp/echo-chat/internal/model/user"
)

// UserRepository persists account records. Email uniqueness is enforced at
// creation time.
type UserRepository interface {
	Create(ctx context.Context, u user.User) error
	FindByEmail(ctx context.Context, email string) (user.User, error)
	FindByID(ctx context.Context, id string) (user.User, error)
}

// SessionRepository persists chat sessions with their embedded message
// sequences.
type SessionRepository interface {
	Create(ctx context.Context, s chat.Session) error
	ListByOwner(ctx context.Context, ownerID string) ([]chat.Session, error)
	FindByID(ctx context.Context, id string) (chat.Session, error)
	AppendMessage(ctx context.Context, sessionID string, m chat.Message) error
}

// MessageRepository persists owner-stamped messages outside any session
// document, matching the loose POST /api/messages contract.
type MessageRepository interface {
	Insert(ctx context.Context, m chat.Message) error
}
