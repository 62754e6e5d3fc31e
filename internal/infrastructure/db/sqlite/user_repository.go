package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/contactdesk/contactdesk/internal/core/domain"
)

const userColumns = `user_id, username, password_hash, name, surname, role, created_at, updated_at`

// UserRepository persists principals in the users table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.Principal, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.Principal, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.Principal, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY role, user_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.Principal, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *domain.Principal) (int64, error) {
	query := `
		INSERT INTO users (username, password_hash, name, surname, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, string(u.Role),
		u.CreatedAt.UTC().Format(timeLayout), u.UpdatedAt.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

// Restore inserts a delete snapshot with its original identifier, keeping the
// password hash and role intact.
func (r *UserRepository) Restore(ctx context.Context, u *domain.Principal) (int64, error) {
	query := `
		INSERT INTO users (user_id, username, password_hash, name, surname, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName, string(u.Role),
		u.CreatedAt.UTC().Format(timeLayout), u.UpdatedAt.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("restore user %d: %w", u.ID, err)
	}
	return res.RowsAffected()
}

func (r *UserRepository) Update(ctx context.Context, u *domain.Principal) (int64, error) {
	query := `
		UPDATE users SET name = ?, surname = ?, role = ?, updated_at = ?
		WHERE user_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		u.FirstName, u.LastName, string(u.Role), u.UpdatedAt.UTC().Format(timeLayout), u.ID)
	if err != nil {
		return 0, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return res.RowsAffected()
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error) {
	query := `UPDATE users SET password_hash = ?, updated_at = ? WHERE user_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		passwordHash, time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return 0, fmt.Errorf("update password for user %d: %w", id, err)
	}
	return res.RowsAffected()
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user %d: %w", id, err)
	}
	return res.RowsAffected()
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Role]int64)
	for rows.Next() {
		var (
			role string
			n    int64
		)
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[domain.Role(role)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func scanUser(row rowScanner) (*domain.Principal, error) {
	var (
		u       domain.Principal
		role    string
		created string
		updated string
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &created, &updated)
	if err != nil {
		return nil, err
	}

	if u.Role, err = domain.ParseRole(role); err != nil {
		return nil, err
	}
	if u.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	if u.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", updated, err)
	}
	return &u, nil
}
