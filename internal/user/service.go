package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/MikeMC777/pickles-ecom/internal/apperr"
)

var (
	ErrDuplicateUser = errors.New("username already exists")
	// ErrInvalidCredentials never says whether the user or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service is the auth gate: signup and login against the credential store.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Signup registers a new account. It does not log the user in.
func (s *Service) Signup(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := apperr.First(
		apperr.Required("username", username),
		apperr.Email("email", email),
		apperr.Required("password", password),
	); err != nil {
		return err
	}

	_, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrDuplicateUser
	case !errors.Is(err, ErrNotFound):
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u := &User{Username: username, Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExist) {
			return ErrDuplicateUser
		}
		return &apperr.PersistenceError{Op: "user", Err: err}
	}
	s.logger.Info("user signed up", zap.String("username", username))
	return nil
}

// Login verifies the password and returns the identity to store in the session.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("lookup user: %w", err)
		}
		CheckPassword(string(dummyHash), password)
		s.logger.Info("login rejected", zap.String("username", username))
		return "", ErrInvalidCredentials
	}
	if !CheckPassword(u.PasswordHash, password) {
		s.logger.Info("login rejected", zap.String("username", username))
		return "", ErrInvalidCredentials
	}
	s.logger.Info("user logged in", zap.String("username", username))
	return u.Username, nil
}
