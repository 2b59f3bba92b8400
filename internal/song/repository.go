// Package song manages songs and their persistence.
package song

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/songshare/service/internal/asset"
)

// Song is a track shared by a user. Images are loaded separately.
type Song struct {
	ID          int64         `db:"id"          json:"id"          example:"1"`
	Name        string        `db:"name"        json:"name"        example:"Blue in Green"`
	Description string        `db:"description" json:"description" example:"late night"`
	ArtistName  *string       `db:"artistname"  json:"artistname"  example:"Miles Davis"`
	SongLink    *string       `db:"song_link"   json:"song_link"   example:"https://example.com/blue-in-green"`
	UserID      int64         `db:"user_id"     json:"user_id"     example:"1"`
	Images      []asset.Asset `db:"-"           json:"image"`
}

// ErrNotFound is returned when a song does not exist.
var ErrNotFound = errors.New("song not found")

const songColumns = `id, name, description, artistname, song_link, user_id`

// Repository handles all song database operations.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new Repository.
func NewRepository(conn *sqlx.DB) *Repository {
	return &Repository{db: conn}
}

// Create inserts s and fills in its id.
func (r *Repository) Create(ctx context.Context, s *Song) error {
	err := r.db.GetContext(ctx, &s.ID, r.db.Rebind(
		`INSERT INTO song (name, description, artistname, song_link, user_id)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`),
		s.Name, s.Description, s.ArtistName, s.SongLink, s.UserID,
	)
	if err != nil {
		return fmt.Errorf("create song: %w", err)
	}
	return nil
}

// GetByID fetches a song by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Song, error) {
	s := &Song{}
	err := r.db.GetContext(ctx, s, r.db.Rebind(`SELECT `+songColumns+` FROM song WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get song by id: %w", err)
	}
	return s, nil
}

// Exists reports whether a song with id exists.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM song WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("check song: %w", err)
	}
	return n > 0, nil
}

// List returns every song ordered by id.
func (r *Repository) List(ctx context.Context) ([]Song, error) {
	songs := []Song{}
	if err := r.db.SelectContext(ctx, &songs, `SELECT `+songColumns+` FROM song ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	return songs, nil
}

// ListByUser returns a user's songs ordered by id.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Song, error) {
	songs := []Song{}
	err := r.db.SelectContext(ctx, &songs, r.db.Rebind(
		`SELECT `+songColumns+` FROM song WHERE user_id = ? ORDER BY id`), userID)
	if err != nil {
		return nil, fmt.Errorf("list songs by user: %w", err)
	}
	return songs, nil
}

// Delete removes a song; its assets go with it through ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM song WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
