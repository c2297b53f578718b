package storage

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// UploadsPath is the URL prefix under which LocalStore files are served.
const UploadsPath = "/uploads/"

// LocalStore implements domain.BlobStore on the local filesystem.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(config LocalConfig) (*LocalStore, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("local store: directory is required")
	}
	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("local store: %w", err)
	}
	return &LocalStore{dir: config.Dir, baseURL: strings.TrimSuffix(config.BaseURL, "/")}, nil
}

// Put writes body to dir/key and returns the URL it is served at.
func (s *LocalStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(s.dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("local store: invalid key %q", key)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("local store: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("local store: %w", err)
	}
	return s.baseURL + UploadsPath + key, nil
}

// Handler serves stored files. Mount it at UploadsPath.
func (s *LocalStore) Handler() http.Handler {
	return http.StripPrefix(UploadsPath, http.FileServer(http.Dir(s.dir)))
}
