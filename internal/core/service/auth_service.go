package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
)

const minPasswordLength = 3

// AuthService verifies credentials and changes a principal's own password.
type AuthService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

// Login authenticates a username/password pair. Every failure path returns
// ErrInvalidCredentials so callers cannot probe which usernames exist.
//
// Stored credentials are bcrypt hashes; rows imported from the legacy system
// may still hold the raw password, which is accepted once and rehashed in
// place.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if user.PasswordHash != password {
			return nil, domain.ErrInvalidCredentials
		}
		// Legacy plain-text row: upgrade to a bcrypt hash. The login itself
		// does not depend on the rehash succeeding.
		if hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); hashErr == nil {
			if _, upErr := s.repo.UpdatePassword(ctx, user.ID, string(hash)); upErr == nil {
				user.PasswordHash = string(hash)
			} else {
				s.logger.Warn().Int64("user_id", user.ID).Err(upErr).Msg("legacy password rehash failed")
			}
		}
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return user, nil
}

// ChangePassword verifies the current password and stores a bcrypt hash of
// the new one. On success the principal's in-memory hash is refreshed so the
// session keeps working.
func (s *AuthService) ChangePassword(ctx context.Context, p *domain.Principal, current, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(current)) != nil && p.PasswordHash != current {
		return domain.ErrInvalidCredentials
	}
	if len(newPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	n, err := s.repo.UpdatePassword(ctx, p.ID, string(hash))
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return domain.ErrNoRowsAffected
	}

	p.PasswordHash = string(hash)
	s.logger.Info().Int64("user_id", p.ID).Msg("password changed")
	return nil
}
