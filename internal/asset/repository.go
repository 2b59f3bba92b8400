package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/songshare/service/internal/db"
)

// ErrDuplicateSalt is returned when a salt is already taken.
var ErrDuplicateSalt = errors.New("asset salt already exists")

const assetColumns = `id, base_url, salt, extension, width, height, created_at, song_id`

// Repository handles all asset database operations.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new Repository.
func NewRepository(conn *sqlx.DB) *Repository {
	return &Repository{db: conn}
}

// Create inserts a and fills in its id.
func (r *Repository) Create(ctx context.Context, a *Asset) error {
	err := r.db.GetContext(ctx, &a.ID, r.db.Rebind(
		`INSERT INTO assets (base_url, salt, extension, width, height, created_at, song_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`),
		a.BaseURL, a.Salt, a.Extension, a.Width, a.Height, a.CreatedAt, a.SongID,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicateSalt
		}
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

// ListBySongs returns assets grouped by song id for every id in songIDs.
func (r *Repository) ListBySongs(ctx context.Context, songIDs []int64) (map[int64][]Asset, error) {
	grouped := make(map[int64][]Asset, len(songIDs))
	if len(songIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`SELECT `+assetColumns+` FROM assets WHERE song_id IN (?) ORDER BY id`, songIDs)
	if err != nil {
		return nil, fmt.Errorf("build asset query: %w", err)
	}
	var assets []Asset
	if err := r.db.SelectContext(ctx, &assets, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list assets by songs: %w", err)
	}
	for _, a := range assets {
		grouped[a.SongID] = append(grouped[a.SongID], a)
	}
	return grouped, nil
}
