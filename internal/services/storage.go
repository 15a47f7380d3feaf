package services

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// ImageStore saves, checks and removes uploaded images by their
// sanitized filename. Save returns a URL the result page can serve the
// image from. Name collisions overwrite the previous file.
type ImageStore interface {
	Save(ctx context.Context, r io.Reader, filename string) (string, error)
	Exists(ctx context.Context, filename string) (bool, error)
	Remove(ctx context.Context, filename string) error
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename collapses path separators and unsafe characters so
// the result is safe to join onto the upload directory. Anything that
// sanitizes down to nothing becomes "unnamed".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(path.Clean("/" + name))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	if name == "" {
		return "unnamed"
	}
	return name
}

// DiskImageStore keeps uploads in a local directory and serves them
// under baseURL via the static file route.
type DiskImageStore struct {
	dir     string
	baseURL string
}

func NewDiskImageStore(dir, baseURL string) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskImageStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *DiskImageStore) Save(_ context.Context, r io.Reader, filename string) (string, error) {
	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return s.baseURL + "/" + filename, nil
}

func (s *DiskImageStore) Exists(_ context.Context, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, filename))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *DiskImageStore) Remove(_ context.Context, filename string) error {
	return os.Remove(filepath.Join(s.dir, filename))
}
