package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
)

// Timestamps and birthdates are stored as text so the schema stays portable
// and strftime-based month matching works.
const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

const contactColumns = `contact_id, first_name, middle_name, last_name, nickname,
	phone_primary, phone_secondary, birthdate, email, linkedin_url, address,
	created_at, updated_at`

// ContactRepository persists contacts in the contacts table.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = ?`

	c, err := scanContact(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact %d: %w", id, err)
	}
	return c, nil
}

// orderColumns whitelists the sortable columns; anything else falls back to
// id order.
var orderColumns = map[ports.ContactSortKey]string{
	ports.SortByFirstName: "first_name COLLATE NOCASE",
	ports.SortByLastName:  "last_name COLLATE NOCASE",
	ports.SortByPhone:     "phone_primary",
	ports.SortByBirthdate: "birthdate",
}

func (r *ContactRepository) List(ctx context.Context, sortBy ports.ContactSort) ([]*domain.Contact, error) {
	order := "contact_id"
	if col, ok := orderColumns[sortBy.Key]; ok {
		order = col
	}
	if sortBy.Descending {
		order += " DESC"
	}
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY ` + order

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	return collectContacts(rows)
}

func (r *ContactRepository) Search(ctx context.Context, filter ports.ContactSearchFilter) ([]*domain.Contact, error) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 6)

	if filter.Name != "" {
		conds = append(conds, "(first_name LIKE ? OR middle_name LIKE ?)")
		pattern := "%" + filter.Name + "%"
		args = append(args, pattern, pattern)
	}
	if filter.LastName != "" {
		conds = append(conds, "last_name LIKE ?")
		args = append(args, "%"+filter.LastName+"%")
	}
	if filter.Phone != "" {
		conds = append(conds, "phone_primary LIKE ?")
		args = append(args, "%"+filter.Phone+"%")
	}
	if filter.Email != "" {
		conds = append(conds, "email LIKE ?")
		args = append(args, "%"+filter.Email+"%")
	}
	if filter.City != "" {
		conds = append(conds, "address LIKE ?")
		args = append(args, "%"+filter.City+"%")
	}
	if filter.BirthMonth != 0 {
		conds = append(conds, "CAST(strftime('%m', birthdate) AS INTEGER) = ?")
		args = append(args, filter.BirthMonth)
	}

	query := `SELECT ` + contactColumns + ` FROM contacts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY contact_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	defer rows.Close()

	return collectContacts(rows)
}

func (r *ContactRepository) Insert(ctx context.Context, c *domain.Contact) (int64, error) {
	query := `
		INSERT INTO contacts
			(first_name, middle_name, last_name, nickname, phone_primary,
			 phone_secondary, birthdate, email, linkedin_url, address,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, contactArgs(c)...)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	return res.LastInsertId()
}

// Restore inserts a delete snapshot with its original identifier so an undo
// round-trips the row exactly.
func (r *ContactRepository) Restore(ctx context.Context, c *domain.Contact) (int64, error) {
	query := `
		INSERT INTO contacts
			(contact_id, first_name, middle_name, last_name, nickname,
			 phone_primary, phone_secondary, birthdate, email, linkedin_url,
			 address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := append([]any{c.ID}, contactArgs(c)...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("restore contact %d: %w", c.ID, err)
	}
	return res.RowsAffected()
}

func (r *ContactRepository) Update(ctx context.Context, c *domain.Contact) (int64, error) {
	query := `
		UPDATE contacts SET
			first_name = ?, middle_name = ?, last_name = ?, nickname = ?,
			phone_primary = ?, phone_secondary = ?, birthdate = ?, email = ?,
			linkedin_url = ?, address = ?, updated_at = ?
		WHERE contact_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		c.FirstName, c.MiddleName, c.LastName, c.Nickname,
		c.PrimaryPhone, c.SecondaryPhone, dateArg(c.Birthdate), c.Email,
		c.LinkedinURL, c.Address, c.UpdatedAt.UTC().Format(timeLayout),
		c.ID)
	if err != nil {
		return 0, fmt.Errorf("update contact %d: %w", c.ID, err)
	}
	return res.RowsAffected()
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE contact_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete contact %d: %w", id, err)
	}
	return res.RowsAffected()
}

func (r *ContactRepository) Stats(ctx context.Context) (ports.ContactStats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(CASE WHEN linkedin_url IS NOT NULL AND linkedin_url != '' THEN 1 END),
			COUNT(CASE WHEN email IS NOT NULL AND email != '' THEN 1 END)
		FROM contacts`

	var stats ports.ContactStats
	if err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.WithLinkedin, &stats.WithEmail); err != nil {
		return ports.ContactStats{}, fmt.Errorf("contact stats: %w", err)
	}
	return stats, nil
}

func contactArgs(c *domain.Contact) []any {
	return []any{
		c.FirstName, c.MiddleName, c.LastName, c.Nickname, c.PrimaryPhone,
		c.SecondaryPhone, dateArg(c.Birthdate), c.Email, c.LinkedinURL, c.Address,
		c.CreatedAt.UTC().Format(timeLayout), c.UpdatedAt.UTC().Format(timeLayout),
	}
}

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var (
		c         domain.Contact
		birthdate sql.NullString
		created   string
		updated   string
	)
	err := row.Scan(&c.ID, &c.FirstName, &c.MiddleName, &c.LastName, &c.Nickname,
		&c.PrimaryPhone, &c.SecondaryPhone, &birthdate, &c.Email, &c.LinkedinURL,
		&c.Address, &created, &updated)
	if err != nil {
		return nil, err
	}

	if birthdate.Valid && birthdate.String != "" {
		bd, err := time.Parse(dateLayout, birthdate.String)
		if err != nil {
			return nil, fmt.Errorf("parse birthdate %q: %w", birthdate.String, err)
		}
		c.Birthdate = &bd
	}
	if c.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	if c.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", updated, err)
	}
	return &c, nil
}

func collectContacts(rows *sql.Rows) ([]*domain.Contact, error) {
	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}
