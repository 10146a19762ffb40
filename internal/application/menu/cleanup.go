package menu

import (
	"context"
	"strings"

	"github.com/qrmenu/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// discardImages deletes images that are no longer referenced. Failures are
// logged and never returned: the database change they follow has committed.
func discardImages(ctx context.Context, images ImageStore, metrics *telemetry.MenuMetrics, logger *zap.Logger, reason string, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		err := images.Delete(ctx, key)
		metrics.RecordImageDelete(ctx, imageKind(key), err)
		if err != nil {
			logger.Warn("Failed to delete image",
				zap.String("key", key),
				zap.String("reason", reason),
				zap.Error(err))
			continue
		}
		logger.Debug("Image deleted", zap.String("key", key), zap.String("reason", reason))
	}
}

// imageURL resolves a stored key, or returns "" when there is no image
func imageURL(images ImageStore, key string) string {
	if key == "" {
		return ""
	}
	return images.URL(key)
}

// imageKind maps a storage key to its metrics label
func imageKind(key string) string {
	if strings.HasPrefix(key, "categories/") {
		return telemetry.ImageKindCategory
	}
	return telemetry.ImageKindMenuItem
}
