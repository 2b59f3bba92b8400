package song

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/songshare/service/internal/asset"
	"github.com/songshare/service/internal/logging"
)

var (
	// ErrUserNotFound is returned when the owning user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNameRequired is returned when a song is created without a name.
	ErrNameRequired = errors.New("name not included")
)

// UserLookup reports whether a user exists.
type UserLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CreateInput carries the fields of a new song. Nil means absent.
type CreateInput struct {
	Name        *string
	Description *string
	ArtistName  *string
	SongLink    *string
}

// Service contains business logic for songs.
type Service struct {
	repo   *Repository
	users  UserLookup
	assets *asset.Service
}

// NewService creates a new song Service.
func NewService(repo *Repository, users UserLookup, assets *asset.Service) *Service {
	return &Service{repo: repo, users: users, assets: assets}
}

// Create adds a song owned by userID.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (*Song, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	if in.Name == nil {
		return nil, ErrNameRequired
	}

	song := &Song{
		Name:       *in.Name,
		ArtistName: in.ArtistName,
		SongLink:   in.SongLink,
		UserID:     userID,
		Images:     []asset.Asset{},
	}
	if in.Description != nil {
		song.Description = *in.Description
	}
	if err := s.repo.Create(ctx, song); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("song created", zap.Int64("song_id", song.ID), zap.Int64("user_id", userID))
	return song, nil
}

// GetByID returns a song with its images.
func (s *Service) GetByID(ctx context.Context, id int64) (*Song, error) {
	song, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	songs := []Song{*song}
	if err := s.attachImages(ctx, songs); err != nil {
		return nil, err
	}
	return &songs[0], nil
}

// List returns every song with its images.
func (s *Service) List(ctx context.Context) ([]Song, error) {
	songs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachImages(ctx, songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// ListByUser returns a user's songs with their images.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Song, error) {
	songs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachImages(ctx, songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Delete removes a song and returns it as it was before deletion.
func (s *Service) Delete(ctx context.Context, id int64) (*Song, error) {
	song, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("song deleted", zap.Int64("song_id", id), zap.Int("images", len(song.Images)))
	s.PurgeImages(ctx, []Song{*song})
	return song, nil
}

// PurgeImages removes the stored objects behind the images of deleted songs.
func (s *Service) PurgeImages(ctx context.Context, songs []Song) {
	for i := range songs {
		s.assets.Purge(ctx, songs[i].Images)
	}
}

// IsNotFound returns true when the error indicates a song was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (s *Service) attachImages(ctx context.Context, songs []Song) error {
	ids := make([]int64, len(songs))
	for i := range songs {
		ids[i] = songs[i].ID
	}
	grouped, err := s.assets.ListBySongs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range songs {
		images := grouped[songs[i].ID]
		if images == nil {
			images = []asset.Asset{}
		}
		songs[i].Images = images
	}
	return nil
}
