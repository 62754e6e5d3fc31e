package console

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/validate"
)

// errorMessage maps known domain errors to the line shown to the operator.
// Unknown errors pass through verbatim; nothing here is fatal and control
// always returns to the menu.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrContactNotFound):
		return "Contact not found."
	case errors.Is(err, domain.ErrUserNotFound):
		return "User not found."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid credentials."
	case errors.Is(err, domain.ErrUserExists):
		return "That username is already taken."
	case errors.Is(err, domain.ErrSelfDelete):
		return "You cannot delete your own account."
	case errors.Is(err, domain.ErrNothingToUndo):
		return "Nothing to undo."
	case errors.Is(err, domain.ErrNoRowsAffected):
		return "The operation did not change anything."
	case errors.Is(err, domain.ErrPasswordTooShort):
		return "Password is too short."
	case errors.Is(err, domain.ErrNoChanges):
		return "No changes made."
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return validate.Message(err)
	}
	return err.Error()
}
