package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of roles a principal can hold. The stored role text
// in the users table matches these values exactly.
type Role string

const (
	RoleTester          Role = "Tester"
	RoleJuniorDeveloper Role = "Junior Developer"
	RoleSeniorDeveloper Role = "Senior Developer"
	RoleManager         Role = "Manager"
)

var ErrUnknownRole = errors.New("unknown role")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrSelfDelete = errors.New("cannot delete own account")
var ErrPasswordTooShort = errors.New("password is too short")
var ErrNoChanges = errors.New("no changes requested")

// ParseRole maps stored role text to a Role. Unrecognised text is an error;
// there is no silent default.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleTester:
		return RoleTester, nil
	case RoleJuniorDeveloper:
		return RoleJuniorDeveloper, nil
	case RoleSeniorDeveloper:
		return RoleSeniorDeveloper, nil
	case RoleManager:
		return RoleManager, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Principal is an authenticated user of the system.
type Principal struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Clone returns an independent copy of the principal, used as the snapshot
// pushed onto an undo ledger before a destructive operation.
func (p *Principal) Clone() Principal {
	return *p
}
