package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/suryamp/echo-chat/internal/model/chat"
)

var (
	ErrNoCurrentSession = errors.New("no current session")
	ErrUnknownSession   = errors.New("unknown session")
)

// Store is the process-wide reactive client state: the authenticated user,
// the session list and the current session id. Every mutation is persisted
// to the state file and fanned out to subscribers.
type Store struct {
	mu        sync.RWMutex
	state     State
	api       *API
	file      *StateFile
	responder Responder
	subs      []func(State)
}

// NewStore builds a store around its API client, state file and responder.
func NewStore(api *API, file *StateFile, responder Responder) *Store {
	return &Store{
		api:       api,
		file:      file,
		responder: responder,
		state:     State{Sessions: make([]chat.Session, 0)},
	}
}

// Subscribe registers a callback invoked with a state snapshot after every
// mutation.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Connect hydrates the store from the persisted state file.
func (s *Store) Connect() error {
	loaded, err := s.file.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = loaded
	s.mu.Unlock()

	s.notify()
	return nil
}

// Disconnect flushes state, cancels pending simulated replies and releases
// the responder.
func (s *Store) Disconnect() error {
	s.responder.Close()

	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	return s.file.Save(snapshot)
}

// Login authenticates against the REST API and stores the identity.
func (s *Store) Login(ctx context.Context, email, password string) error {
	authUser, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.setUser(authUser)
}

// Signup registers against the REST API and stores the identity.
func (s *Store) Signup(ctx context.Context, email, username, password string) error {
	authUser, err := s.api.Signup(ctx, email, username, password)
	if err != nil {
		return err
	}
	return s.setUser(authUser)
}

func (s *Store) setUser(authUser AuthUser) error {
	s.mu.Lock()
	s.state.User = &authUser
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.notify()
	return s.file.Save(snapshot)
}

// Logout discards the identity and all local session state, cancelling any
// pending replies.
func (s *Store) Logout() error {
	s.responder.Close()

	s.mu.Lock()
	s.state = State{Sessions: make([]chat.Session, 0)}
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.notify()
	return s.file.Save(snapshot)
}

// CreateSession appends an empty session and makes it current.
func (s *Store) CreateSession() (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Messages:  make([]chat.Message, 0),
	}
	if u := s.currentUser(); u != nil {
		session.OwnerID = u.ID
	}

	s.mu.Lock()
	s.state.Sessions = append(s.state.Sessions, session)
	s.state.CurrentSessionID = session.ID
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.notify()
	return session, s.file.Save(snapshot)
}

// SetCurrentSession switches the active session.
func (s *Store) SetCurrentSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.state.Sessions {
		if session.ID == sessionID {
			s.state.CurrentSessionID = sessionID
			return nil
		}
	}
	return ErrUnknownSession
}

// SendMessage appends a user message to the current session and asks the
// responder for the server reply. The reply is bound to the session the
// message was sent from, not whichever session is current when it arrives.
func (s *Store) SendMessage(content string) error {
	s.mu.RLock()
	sessionID := s.state.CurrentSessionID
	s.mu.RUnlock()

	if sessionID == "" {
		return ErrNoCurrentSession
	}

	message := chat.Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    chat.SenderUser,
		Timestamp: time.Now().UTC(),
	}

	if err := s.AddMessage(sessionID, message); err != nil {
		return err
	}

	s.responder.Respond(sessionID, message, func(id string, reply chat.Message) {
		_ = s.AddMessage(id, reply)
	})
	return nil
}

// AddMessage appends a message to the named session and persists.
func (s *Store) AddMessage(sessionID string, message chat.Message) error {
	s.mu.Lock()
	idx := -1
	for i, session := range s.state.Sessions {
		if session.ID == sessionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return ErrUnknownSession
	}

	s.state.Sessions[idx].Messages = append(s.state.Sessions[idx].Messages, message)
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.notify()
	return s.file.Save(snapshot)
}

// CancelReplies drops pending simulated replies for a session, used when a
// session's lifetime ends.
func (s *Store) CancelReplies(sessionID string) {
	s.responder.Cancel(sessionID)
}

func (s *Store) currentUser() *AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User
}

func (s *Store) notify() {
	s.mu.RLock()
	snapshot := s.state.clone()
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
