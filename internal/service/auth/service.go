package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/suryamp/echo-chat/internal/config"
	"github.com/suryamp/echo-chat/internal/model/user"
	"github.com/suryamp/echo-chat/internal/repository"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrMissingToken      = errors.New("missing token")
	ErrInvalidToken      = errors.New("invalid token")
)

// Service owns credential verification and bearer-token issuing. Passwords
// are bcrypt-hashed here and nowhere else.
type Service struct {
	users      repository.UserRepository
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewService wires the auth service to its user store and signing config.
func NewService(users repository.UserRepository, cfg config.AuthConfig) *Service {
	return &Service{
		users:      users,
		secret:     []byte(cfg.Secret),
		tokenTTL:   time.Duration(cfg.TokenTTLMin) * time.Minute,
		bcryptCost: cfg.BcryptCost,
	}
}

// Signup creates a user with a hashed password and returns it with a fresh
// token. Fails with repository.ErrDuplicateEmail when the email is taken.
func (s *Service) Signup(ctx context.Context, email, username, password string) (user.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return user.User{}, "", err
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return user.User{}, "", err
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		return user.User{}, "", err
	}
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email fails with repository.ErrNotFound; a wrong password with
// ErrInvalidCredential.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return user.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return user.User{}, "", ErrInvalidCredential
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		return user.User{}, "", err
	}
	return u, token, nil
}

// IssueToken signs an HS256 JWT for the user. A zero TTL omits the expiry
// claim, so the token stays valid until the secret changes.
func (s *Service) IssueToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
	}
	if s.tokenTTL > 0 {
		claims["exp"] = now.Add(s.tokenTTL).Unix()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken resolves a bearer token back to the user id it was issued
// for. Expired and malformed tokens fail with ErrInvalidToken.
func (s *Service) VerifyToken(raw string) (string, error) {
	if raw == "" {
		return "", ErrMissingToken
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
