package asset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/songshare/service/internal/logging"
	"github.com/songshare/service/internal/media"
)

var (
	// ErrSongNotFound is returned when the target song does not exist.
	ErrSongNotFound = errors.New("Song not found!")
	// ErrNoImageData is returned when the request carries no image.
	ErrNoImageData = errors.New("No base64 image to be found")
)

// SongLookup reports whether a song exists.
type SongLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// ObjectStore is the part of storage.Uploader the service needs.
type ObjectStore interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
	Remove(ctx context.Context, filename string) error
	BaseURL() string
}

// Service runs the image ingestion pipeline.
type Service struct {
	repo      *Repository
	songs     SongLookup
	objects   ObjectStore
	maxPixels int64
	now       func() time.Time
	newSalt   func() (string, error)
}

// NewService creates a new asset Service. Images over maxPixels are rejected
// before decoding; maxPixels <= 0 uses media.DefaultMaxPixels.
func NewService(repo *Repository, songs SongLookup, objects ObjectStore, maxPixels int64) *Service {
	return &Service{
		repo:      repo,
		songs:     songs,
		objects:   objects,
		maxPixels: maxPixels,
		now:       func() time.Time { return time.Now().UTC() },
		newSalt:   media.NewSalt,
	}
}

// Create ingests imageData for the song and returns the persisted asset.
// Pipeline failures are returned as *IngestError.
func (s *Service) Create(ctx context.Context, songID int64, imageData string) (*Asset, error) {
	log := logging.FromContext(ctx).With(zap.Int64("song_id", songID))

	exists, err := s.songs.Exists(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("look up song: %w", err)
	}
	if !exists {
		return nil, ErrSongNotFound
	}
	if strings.TrimSpace(imageData) == "" {
		return nil, ErrNoImageData
	}

	stage := StageRequested
	fail := func(err error) (*Asset, error) {
		log.Warn("asset ingestion failed", zap.Stringer("stage", stage), zap.Error(err))
		return nil, &IngestError{Stage: stage, Err: err}
	}

	enc, err := media.Inspect(imageData)
	if err != nil {
		return fail(err)
	}
	salt, err := s.newSalt()
	if err != nil {
		return fail(err)
	}
	stage = StageValidated
	log.Debug("asset validated", zap.String("mime", enc.MIME), zap.String("salt", salt))

	img, err := media.Decode(imageData, s.maxPixels)
	if err != nil {
		return fail(err)
	}
	if err := media.CheckFormat(enc.Extension, img.Format); err != nil {
		return fail(err)
	}
	stage = StageDecoded
	log.Debug("asset decoded", zap.Int("width", img.Width), zap.Int("height", img.Height))

	a := &Asset{
		BaseURL:   s.objects.BaseURL(),
		Salt:      salt,
		Extension: enc.Extension,
		Width:     img.Width,
		Height:    img.Height,
		SongID:    songID,
	}
	url, err := s.objects.Upload(ctx, a.Filename(), img.Data)
	if err != nil {
		return fail(err)
	}
	stage = StageUploaded
	log.Debug("asset uploaded", zap.String("url", url))

	a.CreatedAt = s.now()
	if err := s.repo.Create(ctx, a); err != nil {
		// A duplicate salt means the object belongs to an existing asset.
		if !errors.Is(err, ErrDuplicateSalt) {
			if rmErr := s.objects.Remove(context.WithoutCancel(ctx), a.Filename()); rmErr != nil {
				log.Error("remove orphaned object", zap.String("object", a.Filename()), zap.Error(rmErr))
			}
		}
		return fail(err)
	}
	log.Info("asset created", zap.Int64("asset_id", a.ID), zap.String("url", a.URL()))
	return a, nil
}

// ListBySongs returns assets grouped by song id.
func (s *Service) ListBySongs(ctx context.Context, songIDs []int64) (map[int64][]Asset, error) {
	return s.repo.ListBySongs(ctx, songIDs)
}

// Purge removes the remote objects of assets whose rows are already gone.
// Failures are logged and otherwise ignored.
func (s *Service) Purge(ctx context.Context, assets []Asset) {
	log := logging.FromContext(ctx)
	for i := range assets {
		name := assets[i].Filename()
		if err := s.objects.Remove(ctx, name); err != nil {
			log.Warn("remove object", zap.String("object", name), zap.Error(err))
		}
	}
}
