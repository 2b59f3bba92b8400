package media

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeTestImage(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	switch format {
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	case "gif":
		require.NoError(t, gif.Encode(&buf, img, nil))
	case "jpeg":
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	default:
		t.Fatalf("unknown format %s", format)
	}
	return buf.Bytes()
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantExt string
		wantErr error
	}{
		{name: "png", uri: "data:image/png;base64,AAAA", wantExt: "png"},
		{name: "gif", uri: "data:image/gif;base64,AAAA", wantExt: "gif"},
		{name: "jpeg", uri: "data:image/jpeg;base64,AAAA", wantExt: "jpg"},
		{name: "upper case mime", uri: "data:IMAGE/PNG;base64,AAAA", wantExt: "png"},
		{name: "bmp rejected", uri: "data:image/bmp;base64,AAAA", wantErr: ErrUnsupportedMediaType},
		{name: "text rejected", uri: "data:text/plain;base64,AAAA", wantErr: ErrUnsupportedMediaType},
		{name: "unknown mime rejected", uri: "data:image/x-nothing;base64,AAAA", wantErr: ErrUnsupportedMediaType},
		{name: "no prefix", uri: "image/png;base64,AAAA", wantErr: ErrMalformedInput},
		{name: "no comma", uri: "data:image/png;base64", wantErr: ErrMalformedInput},
		{name: "not base64", uri: "data:image/png,AAAA", wantErr: ErrMalformedInput},
		{name: "empty mime", uri: "data:;base64,AAAA", wantErr: ErrMalformedInput},
		{name: "empty", uri: "", wantErr: ErrMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Inspect(tt.uri)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantExt, enc.Extension)
			require.True(t, Allowed(enc.Extension))
		})
	}
}

func TestNewSalt_AlphabetAndLength(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	require.Len(t, salt, SaltLength)
	for _, r := range salt {
		require.True(t, strings.ContainsRune(saltAlphabet, r), "unexpected rune %q", r)
	}
}

func TestNewSalt_NoCollisions(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		salt, err := NewSalt()
		require.NoError(t, err)
		_, dup := seen[salt]
		require.False(t, dup, "duplicate salt %s", salt)
		seen[salt] = struct{}{}
	}
}

func TestDecode_RecoversDimensions(t *testing.T) {
	for _, tc := range []struct {
		format string
		mime   string
	}{
		{"png", "image/png"},
		{"gif", "image/gif"},
		{"jpeg", "image/jpeg"},
	} {
		t.Run(tc.format, func(t *testing.T) {
			raw := encodeTestImage(t, tc.format, 7, 3)
			img, err := Decode(dataURI(tc.mime, raw), 0)
			require.NoError(t, err)
			require.Equal(t, 7, img.Width)
			require.Equal(t, 3, img.Height)
			require.Equal(t, tc.format, img.Format)
			require.Equal(t, raw, img.Data)
		})
	}
}

func TestDecode_UnpaddedPayload(t *testing.T) {
	raw := encodeTestImage(t, "png", 2, 2)
	uri := "data:image/png;base64," + base64.RawStdEncoding.EncodeToString(raw)

	img, err := Decode(uri, 0)
	require.NoError(t, err)
	require.Equal(t, 2, img.Width)
}

func TestDecode_Failures(t *testing.T) {
	raw := encodeTestImage(t, "png", 4, 4)
	full := dataURI("image/png", raw)

	tests := map[string]string{
		"truncated":  full[:len(full)/2],
		"not base64": "data:image/png;base64,!!!!",
		"not image":  dataURI("image/png", []byte("hello world")),
		"empty":      "data:image/png;base64,",
	}
	for name, uri := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(uri, 0)
			require.ErrorIs(t, err, ErrDecode)
		})
	}
}

// pngHeader returns a PNG signature and IHDR chunk claiming w x h pixels with
// no image data behind it.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale

	chunk := append([]byte("IHDR"), ihdr...)
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecode_RejectsOversizedDimensions(t *testing.T) {
	_, err := Decode(dataURI("image/png", pngHeader(12000, 12000)), 0)
	require.ErrorIs(t, err, ErrDecode)
	require.Contains(t, err.Error(), "12000x12000")

	_, err = Decode(dataURI("image/png", encodeTestImage(t, "png", 10, 10)), 99)
	require.ErrorIs(t, err, ErrDecode)

	img, err := Decode(dataURI("image/png", encodeTestImage(t, "png", 10, 10)), 100)
	require.NoError(t, err)
	require.Equal(t, 10, img.Width)
}

func TestCheckFormat(t *testing.T) {
	require.NoError(t, CheckFormat("png", "png"))
	require.NoError(t, CheckFormat("jpg", "jpeg"))
	require.NoError(t, CheckFormat("jpeg", "jpeg"))
	require.NoError(t, CheckFormat("gif", "gif"))

	require.ErrorIs(t, CheckFormat("png", "gif"), ErrUnsupportedMediaType)
	require.ErrorIs(t, CheckFormat("gif", "jpeg"), ErrUnsupportedMediaType)
}
