// Package background turns user input into a value for Root.BackgroundURL.
package background

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// MaxFileSize bounds images read from disk.
const MaxFileSize = 8 << 20

var (
	ErrNotImage    = errors.New("file is not an image")
	ErrTooLarge    = errors.New("image exceeds size limit")
	ErrUnsupported = errors.New("background must be an http(s) URL or an image data URL")
)

// FromFile reads an image file and encodes it as a data URL.
func FromFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening background %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("reading background %s: %w", path, err)
	}
	return Encode(data)
}

// Encode sniffs the content type of data and returns a base64 data URL.
func Encode(data []byte) (string, error) {
	if len(data) > MaxFileSize {
		return "", ErrTooLarge
	}
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Normalize validates a pasted background value. Empty input clears the
// background.
func Normalize(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	if strings.HasPrefix(input, "data:image/") {
		return input, nil
	}
	u, err := url.Parse(input)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", ErrUnsupported
	}
	return u.String(), nil
}

// Resolve accepts either a URL or a path to a local image file.
func Resolve(input string) (string, error) {
	if v, err := Normalize(input); err == nil {
		return v, nil
	}
	path := strings.TrimSpace(input)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	if _, err := os.Stat(path); err != nil {
		return "", ErrUnsupported
	}
	return FromFile(path)
}
