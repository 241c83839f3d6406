package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/suryamp/echo-chat/internal/model/chat"
	"github.com/suryamp/echo-chat/internal/model/user"
)

// AuthUser is the locally persisted identity: the public user plus the
// bearer token. Credentials are never written here.
type AuthUser struct {
	user.Public
	Token string `json:"token"`
}

// State is a snapshot of the client store.
type State struct {
	User             *AuthUser      `json:"authUser,omitempty"`
	Sessions         []chat.Session `json:"chatSessions"`
	CurrentSessionID string         `json:"currentSessionId,omitempty"`
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Sessions = make([]chat.Session, len(s.Sessions))
	for i, session := range s.Sessions {
		msgs := make([]chat.Message, len(session.Messages))
		copy(msgs, session.Messages)
		session.Messages = msgs
		out.Sessions[i] = session
	}
	return out
}

// StateFile persists client state as a JSON document, standing in for the
// browser's local storage.
type StateFile struct {
	path string
}

func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Load reads the persisted state. A missing file yields empty state.
func (f *StateFile) Load() (State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{Sessions: make([]chat.Session, 0)}, nil
	}
	if err != nil {
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}
	if state.Sessions == nil {
		state.Sessions = make([]chat.Session, 0)
	}
	return state, nil
}

// Save writes the state atomically via a temp file rename.
func (f *StateFile) Save(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
