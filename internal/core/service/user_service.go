package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
	"github.com/contactdesk/contactdesk/internal/core/undo"
	"github.com/contactdesk/contactdesk/internal/core/validate"
)

// UserService implements the Manager's administrative operations over
// principals, including the user-delete undo ledger.
type UserService struct {
	repo     ports.UserRepository
	validate *validator.Validate
	logger   zerolog.Logger

	deletes undo.Ledger[domain.Principal]
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		validate: validate.New(),
		logger:   logger,
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.Principal, error) {
	return s.repo.List(ctx)
}

// Add creates a new user with a hashed password. Duplicate usernames and
// unrecognised role text are rejected before any write.
func (s *UserService) Add(ctx context.Context, in ports.UserInput) (*domain.Principal, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	if existing, err := s.repo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.Principal{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.repo.Insert(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	u.ID = id

	s.logger.Info().Int64("user_id", id).Str("role", string(role)).Msg("user added")
	return u, nil
}

// Update applies a partial user update; a set Role field reassigns the role
// (promotion). An all-nil patch is rejected.
func (s *UserService) Update(ctx context.Context, id int64, patch ports.UserPatch) (*domain.Principal, error) {
	if patch.FirstName == nil && patch.LastName == nil && patch.Role == nil {
		return nil, domain.ErrNoChanges
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	if patch.FirstName != nil {
		if !validate.IsValidName(*patch.FirstName) {
			return nil, fmt.Errorf("first name must contain letters and spaces only")
		}
		next.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		if !validate.IsValidName(*patch.LastName) {
			return nil, fmt.Errorf("last name must contain letters and spaces only")
		}
		next.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Role != nil {
		role, err := domain.ParseRole(*patch.Role)
		if err != nil {
			return nil, err
		}
		next.Role = role
	}
	next.UpdatedAt = time.Now().UTC()

	n, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	if n == 0 {
		return nil, domain.ErrNoRowsAffected
	}

	s.logger.Info().Int64("user_id", id).Str("role", string(next.Role)).Msg("user updated")
	return &next, nil
}

// Delete removes a user after backing its state up on the delete ledger.
// Self-deletion is rejected before any store access; a failed store write
// pops the just-pushed snapshot so the ledger depth is unchanged.
func (s *UserService) Delete(ctx context.Context, actor *domain.Principal, id int64) (*domain.Principal, error) {
	if actor != nil && actor.ID == id {
		return nil, domain.ErrSelfDelete
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := current.Clone()
	s.deletes.Push(snapshot)

	n, err := s.repo.Delete(ctx, id)
	if err != nil || n == 0 {
		s.deletes.Pop()
		if err != nil {
			return nil, fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil, domain.ErrNoRowsAffected
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return current, nil
}

// UndoLastDelete re-inserts the most recently deleted user with the original
// id, password hash and role.
func (s *UserService) UndoLastDelete(ctx context.Context) (*domain.Principal, error) {
	snapshot, ok := s.deletes.Pop()
	if !ok {
		return nil, domain.ErrNothingToUndo
	}

	n, err := s.repo.Restore(ctx, &snapshot)
	if err != nil || n == 0 {
		s.deletes.Push(snapshot)
		if err != nil {
			return nil, fmt.Errorf("undo user delete: %w", err)
		}
		return nil, domain.ErrNoRowsAffected
	}

	s.logger.Info().Int64("user_id", snapshot.ID).Str("username", snapshot.Username).Msg("user delete undone")
	return &snapshot, nil
}

func (s *UserService) RoleCounts(ctx context.Context) (map[domain.Role]int64, error) {
	return s.repo.CountByRole(ctx)
}

func (s *UserService) PendingDeleteUndos() int { return s.deletes.Len() }

func (s *UserService) Reset() { s.deletes.Clear() }
