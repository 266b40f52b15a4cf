package asset

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no asset exists for the given session ID.
var ErrNotFound = errors.New("asset: not found")

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// Store persists one image blob per live session on local disk, addressable
// by session ID. The blob shares its lifecycle with the session record:
// created together, destroyed together.
type Store struct {
	dir string
}

// NewStore prepares the asset directory, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("asset: create dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Put writes the image bytes for the session and returns the file name used
// as the asset reference. The extension follows the image format: PNG when
// the bytes carry the PNG signature, JPEG otherwise.
func (s *Store) Put(id string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("asset: empty image")
	}

	name := id + extensionFor(data)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("asset: write %s: %w", path, err)
	}
	return name, nil
}

// Get returns the stored bytes and their content type for the session, or
// ErrNotFound when no blob exists under either known extension.
func (s *Store) Get(id string) ([]byte, string, error) {
	for _, ext := range []string{".png", ".jpg"} {
		data, err := os.ReadFile(filepath.Join(s.dir, id+ext))
		if err == nil {
			return data, contentTypeFor(ext), nil
		}
		if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("asset: read %s: %w", id+ext, err)
		}
	}
	return nil, "", ErrNotFound
}

// Delete removes the session's blob. Best-effort: a missing file is not an
// error, and any other failure is logged and swallowed. The session record
// is authoritative; the asset is not.
func (s *Store) Delete(id string) {
	for _, ext := range []string{".png", ".jpg"} {
		err := os.Remove(filepath.Join(s.dir, id+ext))
		if err != nil && !os.IsNotExist(err) {
			log.WithFields(log.Fields{
				"session": id,
				"error":   err,
			}).Warn("failed to remove session asset")
		}
	}
}

func extensionFor(data []byte) string {
	if bytes.HasPrefix(data, pngMagic) {
		return ".png"
	}
	return ".jpg"
}

func contentTypeFor(ext string) string {
	if strings.EqualFold(ext, ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
