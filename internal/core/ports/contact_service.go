package ports

import (
	"context"

	"github.com/contactdesk/contactdesk/internal/core/domain"
)

// ContactInput carries all user-supplied fields for creating a contact.
// First name, last name and primary phone are mandatory; everything else is
// optional and stored as NULL when blank. Birthdate is the raw YYYY-MM-DD
// prompt text.
type ContactInput struct {
	FirstName      string `validate:"required,personname"`
	MiddleName     string `validate:"omitempty,personname"`
	LastName       string `validate:"required,personname"`
	Nickname       string `validate:"omitempty,personname"`
	PrimaryPhone   string `validate:"required,phone"`
	SecondaryPhone string `validate:"omitempty,phone"`
	Email          string `validate:"omitempty,contactemail"`
	LinkedinURL    string `validate:"omitempty,linkedin"`
	Birthdate      string `validate:"omitempty,birthdate"`
	Address        string
}

// ContactPatch is a partial update: nil fields keep the current value and are
// not validated. Set fields must pass the same format rules as on creation.
type ContactPatch struct {
	FirstName      *string
	MiddleName     *string
	LastName       *string
	Nickname       *string
	PrimaryPhone   *string
	SecondaryPhone *string
	Email          *string
	LinkedinURL    *string
	Birthdate      *string // YYYY-MM-DD
	Address        *string
}

// ContactService defines the contact operations reachable from the session
// menus. Implementations own the session's contact undo ledgers; Reset
// clears them on logout.
type ContactService interface {
	List(ctx context.Context) ([]*domain.Contact, error)
	Sorted(ctx context.Context, key ContactSortKey, descending bool) ([]*domain.Contact, error)
	Search(ctx context.Context, filter ContactSearchFilter) ([]*domain.Contact, error)
	Get(ctx context.Context, id int64) (*domain.Contact, error)
	Add(ctx context.Context, in ContactInput) (*domain.Contact, error)
	Update(ctx context.Context, id int64, patch ContactPatch) (*domain.Contact, error)
	UndoLastUpdate(ctx context.Context) (*domain.Contact, error)
	// Delete removes the contact and returns its pre-delete state. The caller
	// is responsible for obtaining user confirmation first.
	Delete(ctx context.Context, id int64) (*domain.Contact, error)
	UndoLastDelete(ctx context.Context) (*domain.Contact, error)
	Stats(ctx context.Context) (ContactStats, error)
	PendingUpdateUndos() int
	PendingDeleteUndos() int
	Reset()
}
