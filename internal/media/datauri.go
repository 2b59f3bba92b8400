package media

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// allowedExtensions is the set of extensions an asset may be stored with.
var allowedExtensions = map[string]bool{
	"png":  true,
	"gif":  true,
	"jpg":  true,
	"jpeg": true,
}

// Encoding is the declared type of a data URI.
type Encoding struct {
	MIME      string
	Extension string
}

// Inspect parses the header of a "data:<mime>;base64,<payload>" URI and
// returns its MIME type and file extension. It does not look at the payload.
func Inspect(dataURI string) (Encoding, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return Encoding{}, fmt.Errorf("%w: missing data: prefix", ErrMalformedInput)
	}
	header, _, ok := strings.Cut(rest, ",")
	if !ok {
		return Encoding{}, fmt.Errorf("%w: missing payload separator", ErrMalformedInput)
	}

	params := strings.Split(header, ";")
	if len(params) < 2 || !strings.EqualFold(strings.TrimSpace(params[len(params)-1]), "base64") {
		return Encoding{}, fmt.Errorf("%w: payload is not base64 encoded", ErrMalformedInput)
	}
	mime := strings.ToLower(strings.TrimSpace(params[0]))
	if mime == "" || !strings.Contains(mime, "/") {
		return Encoding{}, fmt.Errorf("%w: missing mime type", ErrMalformedInput)
	}

	ext := ExtensionFor(mime)
	if !allowedExtensions[ext] {
		return Encoding{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mime)
	}
	return Encoding{MIME: mime, Extension: ext}, nil
}

// ExtensionFor maps a MIME type to its conventional extension without the
// leading dot, or "" when the type is unknown.
func ExtensionFor(mime string) string {
	m := mimetype.Lookup(mime)
	if m == nil {
		return ""
	}
	return strings.TrimPrefix(m.Extension(), ".")
}

// Allowed reports whether ext may be stored.
func Allowed(ext string) bool {
	return allowedExtensions[ext]
}

// formatExtensions lists the extensions each decoded image format may be
// stored under.
var formatExtensions = map[string][]string{
	"png":  {"png"},
	"gif":  {"gif"},
	"jpeg": {"jpg", "jpeg"},
}

// CheckFormat reports an ErrUnsupportedMediaType when the decoded format does
// not match the declared extension.
func CheckFormat(ext, format string) error {
	for _, e := range formatExtensions[format] {
		if e == ext {
			return nil
		}
	}
	return fmt.Errorf("%w: declared %s but payload is %s", ErrUnsupportedMediaType, ext, format)
}
