package ports

import (
	"context"

	"github.com/contactdesk/contactdesk/internal/core/domain"
)

// UserInput carries all fields for the Manager's add-user operation. Role is
// the stored role text and is parsed strictly.
type UserInput struct {
	Username  string `validate:"required"`
	Password  string `validate:"required,min=3"`
	FirstName string `validate:"required,personname"`
	LastName  string `validate:"required,personname"`
	Role      string `validate:"required"`
}

// UserPatch is a partial user update; nil fields keep the current value.
// Setting Role reassigns it (promotion or demotion).
type UserPatch struct {
	FirstName *string
	LastName  *string
	Role      *string
}

// UserService defines the Manager's administrative operations over
// principals. Implementations own the user-delete undo ledger.
type UserService interface {
	List(ctx context.Context) ([]*domain.Principal, error)
	Add(ctx context.Context, in UserInput) (*domain.Principal, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*domain.Principal, error)
	// Delete removes a user after the caller confirmed. The acting principal
	// is required so self-deletion is rejected before any store access.
	Delete(ctx context.Context, actor *domain.Principal, id int64) (*domain.Principal, error)
	UndoLastDelete(ctx context.Context) (*domain.Principal, error)
	RoleCounts(ctx context.Context) (map[domain.Role]int64, error)
	PendingDeleteUndos() int
	Reset()
}

// AuthService authenticates principals and manages their own credentials.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Principal, error)
	ChangePassword(ctx context.Context, p *domain.Principal, current, newPassword string) error
}
