package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/suryamp/echo-chat/internal/model/user"
)

// ErrAuthFailed is returned for any rejected login or signup. The server's
// reason is deliberately not surfaced to the UI.
var ErrAuthFailed = errors.New("authentication failed")

// API is the REST client the store uses for auth. The server is the only
// authority over accounts; nothing credential-shaped is handled locally.
type API struct {
	baseURL string
	http    *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type authResponse struct {
	Token string      `json:"token"`
	User  user.Public `json:"user"`
}

// Signup registers an account and returns the authenticated identity.
func (a *API) Signup(ctx context.Context, email, username, password string) (AuthUser, error) {
	return a.authenticate(ctx, "/api/auth/signup", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
}

// Login verifies credentials and returns the authenticated identity.
func (a *API) Login(ctx context.Context, email, password string) (AuthUser, error) {
	return a.authenticate(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (a *API) authenticate(ctx context.Context, path string, payload map[string]string) (AuthUser, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return AuthUser{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return AuthUser{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return AuthUser{}, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AuthUser{}, ErrAuthFailed
	}

	var decoded authResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return AuthUser{}, err
	}
	return AuthUser{Public: decoded.User, Token: decoded.Token}, nil
}
