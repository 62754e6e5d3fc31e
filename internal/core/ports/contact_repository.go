package ports

import (
	"context"

	"github.com/contactdesk/contactdesk/internal/core/domain"
)

// ContactSortKey names a column contacts can be ordered by. SortByCity is a
// derived key (trailing comma token of the address) and is ordered by the
// service rather than the store.
type ContactSortKey string

const (
	SortByFirstName ContactSortKey = "first_name"
	SortByLastName  ContactSortKey = "last_name"
	SortByPhone     ContactSortKey = "phone_primary"
	SortByBirthdate ContactSortKey = "birthdate"
	SortByCity      ContactSortKey = "city"
)

// ContactSort describes an ordering for List. The zero value means natural
// (id) order.
type ContactSort struct {
	Key        ContactSortKey
	Descending bool
}

// ContactSearchFilter carries predicate search terms. All set fields are
// combined conjunctively; partial (contains) matching applies to the text
// fields. Name matches against first or middle name.
type ContactSearchFilter struct {
	Name       string
	LastName   string
	Phone      string
	Email      string
	City       string // matched against the address text
	BirthMonth int    // 1-12, 0 = unset
}

// ContactStats is the aggregate contact view shown to Managers.
type ContactStats struct {
	Total        int64
	WithLinkedin int64
	WithEmail    int64
}

// ContactRepository is the record-store surface for contacts. Every write
// returns the affected row count; the services key their snapshot push/pop
// decisions off it.
type ContactRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context, sort ContactSort) ([]*domain.Contact, error)
	Search(ctx context.Context, filter ContactSearchFilter) ([]*domain.Contact, error)
	// Insert stores a new contact and returns its generated id.
	Insert(ctx context.Context, c *domain.Contact) (int64, error)
	// Restore inserts a contact with its original id preserved, used when
	// replaying a delete snapshot. Returns the affected row count.
	Restore(ctx context.Context, c *domain.Contact) (int64, error)
	Update(ctx context.Context, c *domain.Contact) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Stats(ctx context.Context) (ContactStats, error)
}
