package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
)

// Session binds an authenticated principal to its resolved capability set
// and dispatches menu selections to service operations. The undo ledgers
// live inside the services for the duration of the session and are cleared
// on logout.
type Session struct {
	principal *domain.Principal
	caps      domain.CapabilitySet

	auth     ports.AuthService
	contacts ports.ContactService
	users    ports.UserService

	ui     *UI
	prompt *Prompter
	logger zerolog.Logger
}

// menuItem couples a capability tag with its menu label and handler. The
// per-role menus are the catalogue filtered by the session's capability set,
// so dispatch is a set lookup, not a role comparison.
type menuItem struct {
	cap   domain.Capability
	label func(s *Session) string
	run   func(s *Session, ctx context.Context) error
}

func staticLabel(text string) func(*Session) string {
	return func(*Session) string { return text }
}

var menuCatalogue = []menuItem{
	{domain.CapChangeOwnPassword, staticLabel("Change password"), (*Session).changePassword},
	{domain.CapListContacts, staticLabel("List all contacts"), (*Session).listContacts},
	{domain.CapSearchContacts, staticLabel("Search contacts"), (*Session).searchContacts},
	{domain.CapSortContacts, staticLabel("Sort contacts"), (*Session).sortContacts},
	{domain.CapUpdateContact, staticLabel("Update existing contact"), (*Session).updateContact},
	{domain.CapUndoContactUpdate, func(s *Session) string {
		return undoLabel("Undo last contact update", s.contacts.PendingUpdateUndos())
	}, (*Session).undoContactUpdate},
	{domain.CapAddContact, staticLabel("Add new contact"), (*Session).addContact},
	{domain.CapDeleteContact, staticLabel("Delete contact"), (*Session).deleteContact},
	{domain.CapUndoContactDelete, func(s *Session) string {
		return undoLabel("Undo last contact delete", s.contacts.PendingDeleteUndos())
	}, (*Session).undoContactDelete},
	{domain.CapListUsers, staticLabel("List all users"), (*Session).listUsers},
	{domain.CapAddUser, staticLabel("Add new user (employ)"), (*Session).addUser},
	{domain.CapUpdateUser, staticLabel("Update existing user (promote)"), (*Session).updateUser},
	{domain.CapDeleteUser, staticLabel("Delete user (fire)"), (*Session).deleteUser},
	{domain.CapUndoUserDelete, func(s *Session) string {
		return undoLabel("Undo last user delete", s.users.PendingDeleteUndos())
	}, (*Session).undoUserDelete},
	{domain.CapViewContactStats, staticLabel("Show system statistics"), (*Session).showStats},
}

func undoLabel(text string, depth int) string {
	if depth == 0 {
		return text + " (empty)"
	}
	return fmt.Sprintf("%s (%d)", text, depth)
}

// Run drives the role menu until logout. Undo history never survives past
// this method: ledgers are cleared on every exit path.
func (s *Session) Run(ctx context.Context) error {
	defer func() {
		s.contacts.Reset()
		s.users.Reset()
	}()

	title := fmt.Sprintf("%s Panel: %s %s", s.principal.Role, s.principal.FirstName, s.principal.LastName)

	for {
		items := s.menuItems()
		options := make([]string, 0, len(items)+2)
		for i, item := range items {
			options = append(options, fmt.Sprintf("%d) %s", i+1, item.label(s)))
		}
		options = append(options, "", "0) Logout")
		s.ui.Menu(title, options)

		choice, err := s.prompt.Line("Select")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if choice == "0" {
			s.ui.Info("Logging out...")
			s.logger.Info().Int64("user_id", s.principal.ID).Msg("logout")
			return nil
		}

		n, convErr := strconv.Atoi(choice)
		if convErr != nil || n < 1 || n > len(items) {
			s.ui.Error("Invalid choice, please try again.")
			continue
		}

		if err := items[n-1].run(s, ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.ui.Error(errorMessage(err))
		}
	}
}

func (s *Session) menuItems() []menuItem {
	items := make([]menuItem, 0, len(menuCatalogue))
	for _, item := range menuCatalogue {
		if s.caps.Grants(item.cap) {
			items = append(items, item)
		}
	}
	return items
}
