// Package storage provides image storage backends for uploaded menu images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	menuapp "github.com/qrmenu/backend/internal/application/menu"
	"github.com/qrmenu/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrInvalidKey is returned for keys that are empty, absolute or escape the store root
var ErrInvalidKey = errors.New("invalid storage key")

// ValidateKey accepts clean, relative, slash-separated keys only
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if path.Clean(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// New builds the image store selected by cfg.Driver
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (menuapp.ImageStore, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalImageStore(cfg.LocalDir, cfg.URLPrefix)
	case "s3":
		store, err := NewS3ImageStore(ctx, &cfg.S3, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
