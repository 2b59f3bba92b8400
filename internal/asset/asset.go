// Package asset ingests base64 images for songs and persists their metadata.
package asset

import (
	"encoding/json"
	"strings"
	"time"
)

// Asset is an image stored in the object store and attached to a song.
// Rows are immutable and only removed through the song cascade.
type Asset struct {
	ID        int64     `db:"id"`
	BaseURL   string    `db:"base_url"`
	Salt      string    `db:"salt"`
	Extension string    `db:"extension"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	CreatedAt time.Time `db:"created_at"`
	SongID    int64     `db:"song_id"`
}

// View is the serialized form of an Asset.
type View struct {
	ID        int64     `json:"id"         example:"1"`
	URL       string    `json:"url"        example:"https://songs.s3.us-east-1.amazonaws.com/Q2W3E4R5T6Y7U8I9.png"`
	Width     int       `json:"width"      example:"640"`
	Height    int       `json:"height"     example:"480"`
	CreatedAt time.Time `json:"created_at" example:"2026-02-27T14:48:34Z"`
}

// Filename is the object key: salt plus extension.
func (a *Asset) Filename() string {
	return a.Salt + "." + a.Extension
}

// URL is the public address of the object.
func (a *Asset) URL() string {
	return strings.TrimRight(a.BaseURL, "/") + "/" + a.Filename()
}

// View returns the serialized form.
func (a *Asset) View() View {
	return View{
		ID:        a.ID,
		URL:       a.URL(),
		Width:     a.Width,
		Height:    a.Height,
		CreatedAt: a.CreatedAt,
	}
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.View())
}
