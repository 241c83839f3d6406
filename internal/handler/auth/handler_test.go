package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/suryamp/echo-chat/internal/config"
	"github.com/suryamp/echo-chat/internal/repository"
	authservice "github.com/suryamp/echo-chat/internal/service/auth"
)

func setupRouter() *chi.Mux {
	svc := authservice.NewService(repository.NewMemoryUserRepository(), config.AuthConfig{
		Secret:     "test-secret",
		BcryptCost: 4,
	})
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postJSON(r http.Handler, path string, body map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSignupReturnsTokenAndUser(t *testing.T) {
	r := setupRouter()

	resp := postJSON(r, "/auth/signup", map[string]string{
		"email":    "a@x.com",
		"username": "alice",
		"password": "pw1",
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var decoded struct {
		Token string `json:"token"`
		User  struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Token == "" {
		t.Fatal("expected a token")
	}
	if decoded.User.Email != "a@x.com" || decoded.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", decoded.User)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := setupRouter()

	first := postJSON(r, "/auth/signup", map[string]string{
		"email": "a@x.com", "username": "alice", "password": "pw1",
	})
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := postJSON(r, "/auth/signup", map[string]string{
		"email": "a@x.com", "username": "bob", "password": "other",
	})
	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", second.Code)
	}
}

func TestSignupMissingFields(t *testing.T) {
	r := setupRouter()

	resp := postJSON(r, "/auth/signup", map[string]string{"email": "a@x.com"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter()

	postJSON(r, "/auth/signup", map[string]string{
		"email": "a@x.com", "username": "alice", "password": "pw1",
	})

	resp := postJSON(r, "/auth/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	r := setupRouter()

	resp := postJSON(r, "/auth/login", map[string]string{
		"email": "nobody@x.com", "password": "pw1",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
