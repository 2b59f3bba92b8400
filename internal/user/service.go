package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/songshare/service/internal/logging"
	"github.com/songshare/service/internal/song"
)

// ErrMissingField is returned when name or class_year is absent.
var ErrMissingField = errors.New("missing a field")

// Service contains business logic for user management.
type Service struct {
	repo  *Repository
	songs *song.Service
}

// NewService creates a new user Service.
func NewService(repo *Repository, songs *song.Service) *Service {
	return &Service{repo: repo, songs: songs}
}

// Create registers a new user. Both fields are required.
func (s *Service) Create(ctx context.Context, name, classYear *string) (*User, error) {
	if name == nil || classYear == nil {
		return nil, ErrMissingField
	}
	u, err := s.repo.Create(ctx, *name, *classYear)
	if err != nil {
		return nil, err
	}
	u.Songs = []song.Song{}
	logging.FromContext(ctx).Info("user created", zap.Int64("user_id", u.ID))
	return u, nil
}

// GetByID returns a user with their songs.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Songs, err = s.songs.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user with everything they own and returns the user as it
// was before deletion.
func (s *Service) Delete(ctx context.Context, id int64) (*User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("user deleted", zap.Int64("user_id", id), zap.Int("songs", len(u.Songs)))
	s.songs.PurgeImages(ctx, u.Songs)
	return u, nil
}

// IsNotFound returns true when the error indicates a user was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
