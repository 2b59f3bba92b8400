// Package user manages users and their persistence.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/songshare/service/internal/song"
)

// User owns zero or more songs. Songs are loaded separately.
type User struct {
	ID        int64       `db:"id"         json:"id"         example:"1"`
	Name      string      `db:"name"       json:"name"       example:"Alice"`
	ClassYear string      `db:"class_year" json:"class_year" example:"2025"`
	Songs     []song.Song `db:"-"          json:"songs"`
}

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// Repository handles all user database operations.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new Repository.
func NewRepository(conn *sqlx.DB) *Repository {
	return &Repository{db: conn}
}

// Create inserts a new user and returns the created record.
func (r *Repository) Create(ctx context.Context, name, classYear string) (*User, error) {
	u := &User{Name: name, ClassYear: classYear}
	err := r.db.GetContext(ctx, &u.ID, r.db.Rebind(
		`INSERT INTO "user" (name, class_year) VALUES (?, ?) RETURNING id`),
		name, classYear,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	u := &User{}
	err := r.db.GetContext(ctx, u, r.db.Rebind(
		`SELECT id, name, class_year FROM "user" WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// Exists reports whether a user with id exists.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM "user" WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return n > 0, nil
}

// Delete removes a user; songs and their assets cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM "user" WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
