package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"regexp"
	"strings"
)

// DefaultMaxPixels caps width*height when the caller passes no limit.
const DefaultMaxPixels = 25_000_000

var dataURIHeader = regexp.MustCompile(`^data:image/.+;base64,`)

// Image is a decoded upload. Data holds the encoded bytes as received.
type Image struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Decode strips the data URI header, base64-decodes the payload and parses it
// as an image to recover its dimensions. The header is read first and images
// larger than maxPixels are rejected before their pixels are decoded.
// maxPixels <= 0 means DefaultMaxPixels.
func Decode(dataURI string, maxPixels int64) (*Image, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	payload := dataURIHeader.ReplaceAllString(dataURI, "")
	payload = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, payload)

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrDecode, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d image exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, maxPixels)
	}

	// Full decode catches truncated or corrupt pixel data.
	if _, _, err := image.Decode(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &Image{
		Data:   raw,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
