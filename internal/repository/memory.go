package repository

import (
	"context"
	"sync"

	"github.com/suryamp/echo-chat/internal/model/chat"
	"github.com/suryamp/echo-chat/internal/model/user"
)

// MemoryUserRepository implements UserRepository with an in-memory map,
// suitable for tests and local runs without Mongo.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
	byID    map[string]user.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byEmail: make(map[string]user.User),
		byID:    make(map[string]user.User),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrDuplicateEmail
	}
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, ErrNotFound
	}
	return u, nil
}

// MemorySessionRepository implements SessionRepository with in-memory maps.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	order    []string
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]chat.Session)}
}

func (r *MemorySessionRepository) Create(_ context.Context, s chat.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	r.order = append(r.order, s.ID)
	return nil
}

func (r *MemorySessionRepository) ListByOwner(_ context.Context, ownerID string) ([]chat.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]chat.Session, 0)
	for _, id := range r.order {
		if s := r.sessions[id]; s.OwnerID == ownerID {
			out = append(out, copySession(s))
		}
	}
	return out, nil
}

func (r *MemorySessionRepository) FindByID(_ context.Context, id string) (chat.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return chat.Session{}, ErrNotFound
	}
	return copySession(s), nil
}

func (r *MemorySessionRepository) AppendMessage(_ context.Context, sessionID string, m chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	s.Messages = append(s.Messages, m)
	r.sessions[sessionID] = s
	return nil
}

func copySession(s chat.Session) chat.Session {
	msgs := make([]chat.Message, len(s.Messages))
	copy(msgs, s.Messages)
	s.Messages = msgs
	return s
}

// MemoryMessageRepository implements MessageRepository with a slice.
type MemoryMessageRepository struct {
	mu       sync.Mutex
	messages []chat.Message
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{}
}

func (r *MemoryMessageRepository) Insert(_ context.Context, m chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	return nil
}

// All returns a snapshot of stored messages, oldest first.
func (r *MemoryMessageRepository) All() []chat.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]chat.Message, len(r.messages))
	copy(out, r.messages)
	return out
}
