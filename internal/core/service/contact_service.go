package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
	"github.com/contactdesk/contactdesk/internal/core/undo"
	"github.com/contactdesk/contactdesk/internal/core/validate"
)

// ContactService implements contact listing, search, sort and the mutating
// operations with their undo ledgers. One ledger exists per destructive
// operation class: contact updates and contact deletes. Both are scoped to
// the session owning this service instance and are cleared on logout.
type ContactService struct {
	repo     ports.ContactRepository
	validate *validator.Validate
	logger   zerolog.Logger

	updates undo.Ledger[domain.Contact]
	deletes undo.Ledger[domain.Contact]
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		validate: validate.New(),
		logger:   logger,
	}
}

func (s *ContactService) List(ctx context.Context) ([]*domain.Contact, error) {
	return s.repo.List(ctx, ports.ContactSort{})
}

// Sorted returns all contacts ordered by the chosen column. The derived city
// key cannot be ordered by the store, so it is sorted here using the trailing
// comma token of each address.
func (s *ContactService) Sorted(ctx context.Context, key ports.ContactSortKey, descending bool) ([]*domain.Contact, error) {
	if key != ports.SortByCity {
		return s.repo.List(ctx, ports.ContactSort{Key: key, Descending: descending})
	}

	contacts, err := s.repo.List(ctx, ports.ContactSort{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(contacts, func(i, j int) bool {
		a, b := strings.ToLower(contacts[i].City()), strings.ToLower(contacts[j].City())
		if descending {
			return a > b
		}
		return a < b
	})
	return contacts, nil
}

func (s *ContactService) Search(ctx context.Context, filter ports.ContactSearchFilter) ([]*domain.Contact, error) {
	if filter.BirthMonth != 0 && !validate.IsValidMonth(filter.BirthMonth) {
		return nil, fmt.Errorf("invalid birth month %d", filter.BirthMonth)
	}
	return s.repo.Search(ctx, filter)
}

func (s *ContactService) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

// Add validates the input and inserts a new contact. No snapshot is involved:
// creation is not an undoable operation class.
func (s *ContactService) Add(ctx context.Context, in ports.ContactInput) (*domain.Contact, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Contact{
		FirstName:      strings.TrimSpace(in.FirstName),
		MiddleName:     optional(in.MiddleName),
		LastName:       strings.TrimSpace(in.LastName),
		Nickname:       optional(in.Nickname),
		PrimaryPhone:   in.PrimaryPhone,
		SecondaryPhone: optional(in.SecondaryPhone),
		Email:          optional(in.Email),
		LinkedinURL:    optional(in.LinkedinURL),
		Address:        optional(in.Address),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Birthdate != "" {
		bd, err := validate.ParseBirthdate(in.Birthdate)
		if err != nil {
			return nil, err
		}
		c.Birthdate = &bd
	}

	id, err := s.repo.Insert(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	c.ID = id

	s.logger.Info().Int64("contact_id", id).Msg("contact added")
	return c, nil
}

// Update applies a partial update. Set patch fields are validated first; on
// any validation failure nothing is written and no snapshot is pushed. On
// success the pre-update state is pushed onto the update ledger immediately
// before the write, and popped back off if the store reports zero rows.
func (s *ContactService) Update(ctx context.Context, id int64, patch ports.ContactPatch) (*domain.Contact, error) {
	if patch == (ports.ContactPatch{}) {
		return nil, domain.ErrNoChanges
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	if err := applyContactPatch(&next, patch); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()

	snapshot := current.Clone()
	s.updates.Push(snapshot)

	n, err := s.repo.Update(ctx, &next)
	if err != nil || n == 0 {
		s.updates.Pop()
		if err != nil {
			return nil, fmt.Errorf("update contact %d: %w", id, err)
		}
		return nil, domain.ErrNoRowsAffected
	}

	s.logger.Info().Int64("contact_id", id).Msg("contact updated")
	return &next, nil
}

// UndoLastUpdate replays the most recent pre-update snapshot back to the
// store. A failed replay pushes the snapshot back so the operator can retry;
// a successful one is itself not undoable.
func (s *ContactService) UndoLastUpdate(ctx context.Context) (*domain.Contact, error) {
	snapshot, ok := s.updates.Pop()
	if !ok {
		return nil, domain.ErrNothingToUndo
	}

	n, err := s.repo.Update(ctx, &snapshot)
	if err != nil || n == 0 {
		s.updates.Push(snapshot)
		if err != nil {
			return nil, fmt.Errorf("undo contact update: %w", err)
		}
		return nil, domain.ErrNoRowsAffected
	}

	s.logger.Info().Int64("contact_id", snapshot.ID).Msg("contact update undone")
	return &snapshot, nil
}

// Delete removes the contact, keeping its full pre-delete state on the delete
// ledger. Confirmation is the caller's job; by the time Delete runs the
// operator has already said yes.
func (s *ContactService) Delete(ctx context.Context, id int64) (*domain.Contact, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := current.Clone()
	s.deletes.Push(snapshot)

	n, err := s.repo.Delete(ctx, id)
	if err != nil || n == 0 {
		s.deletes.Pop()
		if err != nil {
			return nil, fmt.Errorf("delete contact %d: %w", id, err)
		}
		return nil, domain.ErrNoRowsAffected
	}

	s.logger.Info().Int64("contact_id", id).Msg("contact deleted")
	return current, nil
}

// UndoLastDelete re-inserts the most recently deleted contact with its
// original id and field values, NULLs included.
func (s *ContactService) UndoLastDelete(ctx context.Context) (*domain.Contact, error) {
	snapshot, ok := s.deletes.Pop()
	if !ok {
		return nil, domain.ErrNothingToUndo
	}

	n, err := s.repo.Restore(ctx, &snapshot)
	if err != nil || n == 0 {
		s.deletes.Push(snapshot)
		if err != nil {
			return nil, fmt.Errorf("undo contact delete: %w", err)
		}
		return nil, domain.ErrNoRowsAffected
	}

	s.logger.Info().Int64("contact_id", snapshot.ID).Msg("contact delete undone")
	return &snapshot, nil
}

func (s *ContactService) Stats(ctx context.Context) (ports.ContactStats, error) {
	return s.repo.Stats(ctx)
}

func (s *ContactService) PendingUpdateUndos() int { return s.updates.Len() }
func (s *ContactService) PendingDeleteUndos() int { return s.deletes.Len() }

// Reset clears both ledgers. Undo history never outlives the session.
func (s *ContactService) Reset() {
	s.updates.Clear()
	s.deletes.Clear()
}

// applyContactPatch validates each set field and copies it onto c. Blank
// prompt entries never reach this point; a set field always carries a value
// the operator typed.
func applyContactPatch(c *domain.Contact, patch ports.ContactPatch) error {
	if patch.FirstName != nil {
		if !validate.IsValidName(*patch.FirstName) {
			return fmt.Errorf("first name must contain letters and spaces only")
		}
		c.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.MiddleName != nil {
		if !validate.IsValidName(*patch.MiddleName) {
			return fmt.Errorf("middle name must contain letters and spaces only")
		}
		c.MiddleName = optional(*patch.MiddleName)
	}
	if patch.LastName != nil {
		if !validate.IsValidName(*patch.LastName) {
			return fmt.Errorf("last name must contain letters and spaces only")
		}
		c.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Nickname != nil {
		if !validate.IsValidName(*patch.Nickname) {
			return fmt.Errorf("nickname must contain letters and spaces only")
		}
		c.Nickname = optional(*patch.Nickname)
	}
	if patch.PrimaryPhone != nil {
		if !validate.IsValidPhone(*patch.PrimaryPhone) {
			return fmt.Errorf("phone must be 10-15 digits")
		}
		c.PrimaryPhone = *patch.PrimaryPhone
	}
	if patch.SecondaryPhone != nil {
		if !validate.IsValidPhone(*patch.SecondaryPhone) {
			return fmt.Errorf("secondary phone must be 10-15 digits")
		}
		c.SecondaryPhone = optional(*patch.SecondaryPhone)
	}
	if patch.Email != nil {
		if !validate.IsValidEmail(*patch.Email) {
			return fmt.Errorf("invalid email address")
		}
		c.Email = optional(*patch.Email)
	}
	if patch.LinkedinURL != nil {
		if !validate.IsValidLinkedin(*patch.LinkedinURL) {
			return fmt.Errorf("linkedin URL must contain linkedin.com")
		}
		c.LinkedinURL = optional(*patch.LinkedinURL)
	}
	if patch.Birthdate != nil {
		bd, err := validate.ParseBirthdate(*patch.Birthdate)
		if err != nil {
			return err
		}
		c.Birthdate = &bd
	}
	if patch.Address != nil {
		c.Address = optional(*patch.Address)
	}
	return nil
}

// optional maps a blank prompt entry to a NULL column value.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
