package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"expense_ledger/internal/apperr"
	"expense_ledger/internal/models"
	"expense_ledger/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AccountService handles user signup and credential verification.
type AccountService struct {
	users repository.Users
	now   func() time.Time
}

func NewAccountService(users repository.Users) *AccountService {
	return &AccountService{users: users, now: time.Now}
}

// SignUp hashes the password and creates a new user. The returned record
// never carries the digest.
func (s *AccountService) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "username and password are required")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "look up user", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "username already exists")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	createdAt := s.now().UTC()
	id, err := s.users.Create(ctx, username, hash, createdAt)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "create user", err)
	}

	return &models.User{ID: id, Username: username, CreatedAt: createdAt}, nil
}

// Authenticate verifies credentials. An unknown username and a wrong
// password are indistinguishable to the caller, so usernames cannot be
// enumerated through the login endpoint.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "username and password are required")
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "look up user", err)
	}
	if u == nil || verifyPassword(u.PasswordHash, password) != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid username or password")
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
