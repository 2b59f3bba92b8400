// Package media validates, names and decodes base64 image data URIs before
// they are handed to object storage.
package media

import "errors"

var (
	// ErrMalformedInput is returned when a data URI cannot be parsed.
	ErrMalformedInput = errors.New("malformed image data")
	// ErrUnsupportedMediaType is returned for image types outside the whitelist.
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	// ErrDecode is returned when the payload is not a decodable image.
	ErrDecode = errors.New("could not decode image")
)
