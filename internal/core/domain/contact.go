package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrContactNotFound = errors.New("contact not found")
var ErrNothingToUndo = errors.New("nothing to undo")
var ErrNoRowsAffected = errors.New("no rows affected")

// Contact is a managed person record, distinct from the login Principal.
// Optional fields are pointers so a restored snapshot reproduces NULLs
// exactly.
type Contact struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"first_name"`
	MiddleName     *string    `json:"middle_name,omitempty"`
	LastName       string     `json:"last_name"`
	Nickname       *string    `json:"nickname,omitempty"`
	PrimaryPhone   string     `json:"phone_primary"`
	SecondaryPhone *string    `json:"phone_secondary,omitempty"`
	Birthdate      *time.Time `json:"birthdate,omitempty"`
	Email          *string    `json:"email,omitempty"`
	LinkedinURL    *string    `json:"linkedin_url,omitempty"`
	Address        *string    `json:"address,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// City derives the sort key used for "sort by city": the trailing
// comma-separated token of the address, trimmed. Empty when the contact has
// no address.
func (c *Contact) City() string {
	if c.Address == nil {
		return ""
	}
	parts := strings.Split(*c.Address, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

// Clone returns a deep copy of the contact. Snapshots pushed onto undo
// ledgers are clones so later edits cannot reach back into the history.
func (c *Contact) Clone() Contact {
	out := *c
	out.MiddleName = clonePtr(c.MiddleName)
	out.Nickname = clonePtr(c.Nickname)
	out.SecondaryPhone = clonePtr(c.SecondaryPhone)
	out.Birthdate = clonePtr(c.Birthdate)
	out.Email = clonePtr(c.Email)
	out.LinkedinURL = clonePtr(c.LinkedinURL)
	out.Address = clonePtr(c.Address)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
