package ports

import (
	"context"

	"github.com/contactdesk/contactdesk/internal/core/domain"
)

// UserRepository is the record-store surface for principals. As with
// contacts, writes report their affected row count.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Principal, error)
	GetByUsername(ctx context.Context, username string) (*domain.Principal, error)
	// List returns all users ordered by role then id, the order the Manager
	// staff list is shown in.
	List(ctx context.Context) ([]*domain.Principal, error)
	// Insert stores a new user and returns its generated id.
	Insert(ctx context.Context, u *domain.Principal) (int64, error)
	// Restore inserts a user with its original id preserved, used when
	// replaying a delete snapshot. Returns the affected row count.
	Restore(ctx context.Context, u *domain.Principal) (int64, error)
	Update(ctx context.Context, u *domain.Principal) (int64, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
}
