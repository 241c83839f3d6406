package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suryamp/echo-chat/internal/config"
	"github.com/suryamp/echo-chat/internal/repository"
)

func newTestService(ttlMin int) *Service {
	return NewService(repository.NewMemoryUserRepository(), config.AuthConfig{
		Secret:      "test-secret",
		TokenTTLMin: ttlMin,
		BcryptCost:  4,
	})
}

func TestSignupThenLogin(t *testing.T) {
	svc := newTestService(0)
	ctx := context.Background()

	created, token, err := svc.Signup(ctx, "a@x.com", "alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "a@x.com", created.Email)
	assert.NotEqual(t, "pw1", created.PasswordHash)

	logged, loginToken, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, loginToken)
	assert.Equal(t, created.ID, logged.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestService(0)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "a@x.com", "alice", "pw1")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "a@x.com", "bob", "other")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService(0)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "a@x.com", "alice", "pw1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, _, err = svc.Login(ctx, "nobody@x.com", "pw1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(0)

	token, err := svc.IssueToken("user-42")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestVerifyTokenMissing(t *testing.T) {
	svc := newTestService(0)

	_, err := svc.VerifyToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	svc := newTestService(0)

	other := NewService(repository.NewMemoryUserRepository(), config.AuthConfig{
		Secret:     "another-secret",
		BcryptCost: 4,
	})
	token, err := other.IssueToken("user-42")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	svc := newTestService(1)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-42",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	raw, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
