package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
	"github.com/contactdesk/contactdesk/internal/core/validate"
)

const cardsPerPage = 3

func (s *Session) changePassword(ctx context.Context) error {
	s.ui.Header("CHANGE PASSWORD")

	current, err := s.prompt.Password("Enter current password")
	if err != nil {
		return err
	}
	next, err := s.prompt.Password("Enter new password")
	if err != nil {
		return err
	}

	if err := s.auth.ChangePassword(ctx, s.principal, current, next); err != nil {
		return err
	}
	s.ui.Info("Password updated successfully.")
	return nil
}

func (s *Session) listContacts(ctx context.Context) error {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		s.ui.Error("No contacts found.")
		return nil
	}
	return s.paginate("ALL CONTACTS", contacts)
}

// paginate shows contacts as cards, a page at a time: n next, p previous,
// 0 back.
func (s *Session) paginate(title string, contacts []*domain.Contact) error {
	pages := (len(contacts) + cardsPerPage - 1) / cardsPerPage
	page := 0

	for {
		s.ui.Header(fmt.Sprintf("%s (page %d/%d)", title, page+1, pages))
		start := page * cardsPerPage
		end := min(start+cardsPerPage, len(contacts))
		for _, c := range contacts[start:end] {
			s.ui.ContactCard(c)
		}

		if pages == 1 {
			return nil
		}
		choice, err := s.prompt.Line("n) next  p) previous  0) back")
		if err != nil {
			return err
		}
		switch choice {
		case "n":
			if page < pages-1 {
				page++
			}
		case "p":
			if page > 0 {
				page--
			}
		case "0":
			return nil
		default:
			s.ui.Error("Invalid choice, please try again.")
		}
	}
}

func (s *Session) searchContacts(ctx context.Context) error {
	for {
		s.ui.Menu("Search Contacts", []string{
			sectionStyle.Render("Single field"),
			"1) By first or middle name (partial)",
			"2) By last name (partial)",
			"3) By phone number (digits)",
			"",
			sectionStyle.Render("Multi field"),
			"4) Name AND birth month",
			"5) Last name AND city/address",
			"6) Phone part AND email part",
			"",
			"0) Back",
		})

		choice, err := s.prompt.Line("Select search type")
		if err != nil {
			return err
		}
		if choice == "0" {
			return nil
		}

		filter, ok, err := s.buildSearchFilter(choice)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		results, err := s.contacts.Search(ctx, filter)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			s.ui.Error("No contacts found matching criteria.")
			continue
		}
		s.ui.Info(fmt.Sprintf("Found %d record(s).", len(results)))
		if err := s.paginate("SEARCH RESULTS", results); err != nil {
			return err
		}
	}
}

// buildSearchFilter collects the terms for one search type. The second
// return is false when input was rejected and the search menu should simply
// be shown again.
func (s *Session) buildSearchFilter(choice string) (ports.ContactSearchFilter, bool, error) {
	var filter ports.ContactSearchFilter

	switch choice {
	case "1":
		name, err := s.prompt.Line("Enter name (or part of it)")
		if err != nil {
			return filter, false, err
		}
		filter.Name = name
	case "2":
		lastName, err := s.prompt.Line("Enter last name (or part of it)")
		if err != nil {
			return filter, false, err
		}
		filter.LastName = lastName
	case "3":
		phone, err := s.prompt.Line("Enter phone number (digits only)")
		if err != nil {
			return filter, false, err
		}
		if !digitsOnly(phone) {
			s.ui.Error("Invalid format, phone should contain only digits.")
			return filter, false, nil
		}
		filter.Phone = phone
	case "4":
		name, err := s.prompt.Line("Enter name")
		if err != nil {
			return filter, false, err
		}
		monthText, err := s.prompt.Line("Enter birth month (1-12)")
		if err != nil {
			return filter, false, err
		}
		month, convErr := strconv.Atoi(monthText)
		if convErr != nil || !validate.IsValidMonth(month) {
			s.ui.Error("Invalid month, please enter a number between 1 and 12.")
			return filter, false, nil
		}
		filter.Name = name
		filter.BirthMonth = month
	case "5":
		lastName, err := s.prompt.Line("Enter last name")
		if err != nil {
			return filter, false, err
		}
		city, err := s.prompt.Line("Enter city/address part")
		if err != nil {
			return filter, false, err
		}
		filter.LastName = lastName
		filter.City = city
	case "6":
		phonePart, err := s.prompt.Line("Enter phone part (e.g. 555)")
		if err != nil {
			return filter, false, err
		}
		emailPart, err := s.prompt.Line("Enter email part (e.g. gmail)")
		if err != nil {
			return filter, false, err
		}
		filter.Phone = phonePart
		filter.Email = emailPart
	default:
		s.ui.Error("Invalid choice, please try again.")
		return filter, false, nil
	}

	return filter, true, nil
}

var sortMenu = []struct {
	label string
	key   ports.ContactSortKey
}{
	{"First name", ports.SortByFirstName},
	{"Last name", ports.SortByLastName},
	{"Phone number", ports.SortByPhone},
	{"Birth date", ports.SortByBirthdate},
	{"City (from address)", ports.SortByCity},
}

func (s *Session) sortContacts(ctx context.Context) error {
	s.ui.Header("SORT CONTACTS")
	options := make([]string, 0, len(sortMenu))
	for i, sm := range sortMenu {
		options = append(options, fmt.Sprintf("%d) %s", i+1, sm.label))
	}
	s.ui.Menu("Sort by", options)

	choice, err := s.prompt.Line("Column")
	if err != nil {
		return err
	}
	n, convErr := strconv.Atoi(choice)
	if convErr != nil || n < 1 || n > len(sortMenu) {
		s.ui.Error("Invalid column, defaulting to first name.")
		n = 1
	}

	direction, err := s.prompt.Line("Direction: 1) Ascending  2) Descending")
	if err != nil {
		return err
	}
	descending := direction == "2"

	contacts, err := s.contacts.Sorted(ctx, sortMenu[n-1].key, descending)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		s.ui.Error("No contacts found.")
		return nil
	}

	dir := "ascending"
	if descending {
		dir = "descending"
	}
	return s.paginate(fmt.Sprintf("SORTED BY %s (%s)", sortMenu[n-1].label, dir), contacts)
}

func (s *Session) addContact(ctx context.Context) error {
	s.ui.Header("ADD NEW CONTACT")

	in := ports.ContactInput{}
	var err error
	if in.FirstName, err = s.prompt.RequiredField("First name", validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if in.MiddleName, err = s.prompt.OptionalField("Middle name", validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if in.LastName, err = s.prompt.RequiredField("Last name", validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if in.Nickname, err = s.prompt.OptionalField("Nickname", validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if in.PrimaryPhone, err = s.prompt.RequiredField("Phone (primary)", validate.IsValidPhone, "Phone must be 10-15 digits."); err != nil {
		return err
	}
	if in.SecondaryPhone, err = s.prompt.OptionalField("Phone (secondary)", validate.IsValidPhone, "Phone must be 10-15 digits."); err != nil {
		return err
	}
	if in.Email, err = s.prompt.OptionalField("Email", validate.IsValidEmail, "Invalid email address."); err != nil {
		return err
	}
	if in.LinkedinURL, err = s.prompt.OptionalField("LinkedIn URL", validate.IsValidLinkedin, "URL must contain linkedin.com."); err != nil {
		return err
	}
	if in.Birthdate, err = s.prompt.OptionalField("Birth date (YYYY-MM-DD)", validate.IsValidBirthdate, "Invalid date."); err != nil {
		return err
	}
	if in.Address, err = s.prompt.OptionalField("Address", nil, ""); err != nil {
		return err
	}

	contact, err := s.contacts.Add(ctx, in)
	if err != nil {
		return err
	}
	s.ui.Info(fmt.Sprintf("New contact added with id %d.", contact.ID))
	s.ui.ContactCard(contact)
	return nil
}

func (s *Session) updateContact(ctx context.Context) error {
	s.ui.Header("UPDATE EXISTING CONTACT")

	id, err := s.promptTargetID("Enter the ID of the contact to update (0 to cancel)")
	if err != nil || id == 0 {
		return err
	}

	current, err := s.contacts.Get(ctx, id)
	if err != nil {
		return err
	}
	s.ui.ContactCard(current)
	s.ui.Println(labelStyle.Render("Enter new values (press ENTER to keep the current value):"))

	patch := ports.ContactPatch{}
	if patch.FirstName, err = s.prompt.PatchField("First name", current.FirstName, validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if patch.MiddleName, err = s.prompt.PatchField("Middle name", deref(current.MiddleName), validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if patch.LastName, err = s.prompt.PatchField("Last name", current.LastName, validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if patch.Nickname, err = s.prompt.PatchField("Nickname", deref(current.Nickname), validate.IsValidName, "Letters and spaces only."); err != nil {
		return err
	}
	if patch.PrimaryPhone, err = s.prompt.PatchField("Phone (primary)", current.PrimaryPhone, validate.IsValidPhone, "Phone must be 10-15 digits."); err != nil {
		return err
	}
	if patch.SecondaryPhone, err = s.prompt.PatchField("Phone (secondary)", deref(current.SecondaryPhone), validate.IsValidPhone, "Phone must be 10-15 digits."); err != nil {
		return err
	}
	if patch.Email, err = s.prompt.PatchField("Email", deref(current.Email), validate.IsValidEmail, "Invalid email address."); err != nil {
		return err
	}
	if patch.LinkedinURL, err = s.prompt.PatchField("LinkedIn URL", deref(current.LinkedinURL), validate.IsValidLinkedin, "URL must contain linkedin.com."); err != nil {
		return err
	}
	if patch.Birthdate, err = s.prompt.PatchField("Birth date (YYYY-MM-DD)", birthdate(current), validate.IsValidBirthdate, "Invalid date."); err != nil {
		return err
	}
	if patch.Address, err = s.prompt.PatchField("Address", deref(current.Address), nil, ""); err != nil {
		return err
	}

	updated, err := s.contacts.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	s.ui.Info("Contact updated successfully.")
	s.ui.ContactCard(updated)
	return nil
}

func (s *Session) undoContactUpdate(ctx context.Context) error {
	restored, err := s.contacts.UndoLastUpdate(ctx)
	if err != nil {
		return err
	}
	s.ui.Info("Last update undone.")
	s.ui.ContactCard(restored)
	return nil
}

func (s *Session) deleteContact(ctx context.Context) error {
	s.ui.Header("DELETE CONTACT")
	if err := s.listContacts(ctx); err != nil {
		return err
	}

	id, err := s.promptTargetID("Enter contact ID to delete (0 to cancel)")
	if err != nil || id == 0 {
		if id == 0 && err == nil {
			s.ui.Info("Delete cancelled.")
		}
		return err
	}

	target, err := s.contacts.Get(ctx, id)
	if err != nil {
		return err
	}
	s.ui.Println("You are about to delete: " + errorStyle.Render(target.FirstName+" "+target.LastName))

	confirmed, err := s.prompt.Confirm("Are you sure?")
	if err != nil {
		return err
	}
	if !confirmed {
		s.ui.Info("Delete cancelled.")
		return nil
	}

	if _, err := s.contacts.Delete(ctx, id); err != nil {
		return err
	}
	s.ui.Info("Contact deleted. Undo is available until logout.")
	return nil
}

func (s *Session) undoContactDelete(ctx context.Context) error {
	restored, err := s.contacts.UndoLastDelete(ctx)
	if err != nil {
		return err
	}
	s.ui.Info(fmt.Sprintf("Contact %d restored.", restored.ID))
	s.ui.ContactCard(restored)
	return nil
}

// promptTargetID reads an id, reporting malformed input as an abort rather
// than re-asking. 0 is the cancel sentinel.
func (s *Session) promptTargetID(label string) (int64, error) {
	id, err := s.prompt.ID(label)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, err
		}
		s.ui.Error("Invalid ID format.")
		return 0, nil
	}
	return id, nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
