package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
	"github.com/contactdesk/contactdesk/internal/core/validate"
)

var roleMenu = []domain.Role{
	domain.RoleTester,
	domain.RoleJuniorDeveloper,
	domain.RoleSeniorDeveloper,
	domain.RoleManager,
}

func (s *Session) listUsers(ctx context.Context) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		s.ui.Error("No users found.")
		return nil
	}
	s.ui.Header("REGISTERED USERS")
	s.ui.UserTable(users)
	return nil
}

func (s *Session) addUser(ctx context.Context) error {
	s.ui.Header("ADD NEW USER")

	in := ports.UserInput{}
	var err error
	if in.Username, err = s.prompt.RequiredField("Username", notBlank, "Username cannot be empty."); err != nil {
		return err
	}
	if in.Password, err = s.prompt.Password("Password (min 3 characters)"); err != nil {
		return err
	}
	if in.FirstName, err = s.prompt.RequiredField("First name", validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if in.LastName, err = s.prompt.RequiredField("Last name", validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}

	role, ok, err := s.promptRole("")
	if err != nil {
		return err
	}
	if !ok {
		s.ui.Error("Invalid role choice.")
		return nil
	}
	in.Role = string(role)

	created, err := s.users.Add(ctx, in)
	if err != nil {
		return err
	}
	s.ui.Info(fmt.Sprintf("User %q created with id %d as %s.", created.Username, created.ID, created.Role))
	return nil
}

func (s *Session) updateUser(ctx context.Context) error {
	s.ui.Header("UPDATE USER")
	if err := s.listUsers(ctx); err != nil {
		return err
	}

	id, err := s.promptTargetID("Enter user ID to update (0 to cancel)")
	if err != nil || id == 0 {
		return err
	}

	patch := ports.UserPatch{}
	if patch.FirstName, err = s.prompt.PatchField("First name", "", validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if patch.LastName, err = s.prompt.PatchField("Last name", "", validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}

	role, ok, err := s.promptRole("keep current")
	if err != nil {
		return err
	}
	if ok {
		text := string(role)
		patch.Role = &text
	}

	updated, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	s.ui.Info(fmt.Sprintf("User %q updated, role is now %s.", updated.Username, updated.Role))
	return nil
}

func (s *Session) deleteUser(ctx context.Context) error {
	s.ui.Header("DELETE USER")
	if err := s.listUsers(ctx); err != nil {
		return err
	}

	id, err := s.promptTargetID("Enter user ID to delete (0 to cancel)")
	if err != nil || id == 0 {
		if id == 0 && err == nil {
			s.ui.Info("Delete cancelled.")
		}
		return err
	}

	confirmed, err := s.prompt.Confirm(fmt.Sprintf("Delete user %d?", id))
	if err != nil {
		return err
	}
	if !confirmed {
		s.ui.Info("Delete cancelled.")
		return nil
	}

	deleted, err := s.users.Delete(ctx, s.principal, id)
	if err != nil {
		return err
	}
	s.ui.Info(fmt.Sprintf("User %q deleted. Undo is available until logout.", deleted.Username))
	return nil
}

func (s *Session) undoUserDelete(ctx context.Context) error {
	restored, err := s.users.UndoLastDelete(ctx)
	if err != nil {
		return err
	}
	s.ui.Info(fmt.Sprintf("User %q restored with id %d.", restored.Username, restored.ID))
	return nil
}

func (s *Session) showStats(ctx context.Context) error {
	stats, err := s.contacts.Stats(ctx)
	if err != nil {
		return err
	}
	roles, err := s.users.RoleCounts(ctx)
	if err != nil {
		return err
	}
	s.ui.Stats(stats, roles)
	return nil
}

// promptRole shows the role choice menu. With a non-empty skipLabel, 0 is
// offered as a skip option and ok is false when chosen; otherwise any input
// outside 1..4 yields ok false.
func (s *Session) promptRole(skipLabel string) (domain.Role, bool, error) {
	options := make([]string, 0, len(roleMenu)+1)
	for i, r := range roleMenu {
		options = append(options, fmt.Sprintf("%d) %s", i+1, r))
	}
	if skipLabel != "" {
		options = append(options, "0) "+skipLabel)
	}
	s.ui.Menu("Role", options)

	choice, err := s.prompt.Line("Select role")
	if err != nil {
		return "", false, err
	}
	n, convErr := strconv.Atoi(choice)
	if convErr != nil || n < 1 || n > len(roleMenu) {
		return "", false, nil
	}
	return roleMenu[n-1], true, nil
}

func notBlank(s string) bool { return s != "" }
