package background

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestFromFileEncodesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	got, err := FromFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"), got)
}

func TestFromFileRejectsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some words"), 0o644))

	_, err := FromFile(path)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestEncodeTooLarge(t *testing.T) {
	_, err := Encode(make([]byte, MaxFileSize+1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: " https://example.com/bg.jpg ", want: "https://example.com/bg.jpg"},
		{in: "http://example.com/x.png", want: "http://example.com/x.png"},
		{in: "data:image/gif;base64,R0lGOD", want: "data:image/gif;base64,R0lGOD"},
		{in: "ftp://example.com/x.png", wantErr: true},
		{in: "javascript:alert(1)", wantErr: true},
		{in: "not a url", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupported, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolvePrefersURLThenFile(t *testing.T) {
	got, err := Resolve("https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", got)

	path := filepath.Join(t.TempDir(), "bg.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))
	got, err = Resolve(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"))

	_, err = Resolve("/definitely/not/here.png")
	assert.ErrorIs(t, err, ErrUnsupported)
}
