package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	menuapp "github.com/qrmenu/backend/internal/application/menu"
)

var _ menuapp.ImageStore = (*LocalImageStore)(nil)

// LocalImageStore keeps images on the local filesystem. Files are served
// statically by the HTTP server under urlPrefix.
type LocalImageStore struct {
	root      string
	urlPrefix string
}

// NewLocalImageStore creates the root directory if needed
func NewLocalImageStore(root, urlPrefix string) (*LocalImageStore, error) {
	if root == "" {
		return nil, errors.New("storage root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalImageStore{
		root:      root,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

// Root returns the directory served under the URL prefix
func (s *LocalImageStore) Root() string {
	return s.root
}

// URLPrefix returns the path the files are served from
func (s *LocalImageStore) URLPrefix() string {
	return s.urlPrefix
}

func (s *LocalImageStore) path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// Save writes the image through a temp file so readers never see a partial file
func (s *LocalImageStore) Save(ctx context.Context, key string, r io.Reader, _ int64, _ string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set image permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}
	return nil
}

// Delete removes the image; missing files are ignored
func (s *LocalImageStore) Delete(_ context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// URL returns the host-relative URL of the image
func (s *LocalImageStore) URL(key string) string {
	return s.urlPrefix + "/" + key
}
