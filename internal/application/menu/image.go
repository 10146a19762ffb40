package menu

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/qrmenu/backend/internal/infrastructure/telemetry"
)

// ImageStore stores uploaded images under slash-separated keys
type ImageStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete removes the object; a missing object is not an error
	Delete(ctx context.Context, key string) error
	// URL returns the public URL of key, which may be relative to the API host
	URL(key string) string
}

// ImageUpload is an image received from a client
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ImagePolicy controls where and how an upload is stored
type ImagePolicy struct {
	Dir        string // key prefix, e.g. "categories"
	NamePrefix string // prepended to the generated file name
	DefaultExt string // used when the upload has no extension
	MaxSize    int64
}

// CategoryImagePolicy stores category images as categories/{ms}-{rand}{ext}
func CategoryImagePolicy(maxSize int64) ImagePolicy {
	return ImagePolicy{Dir: "categories", DefaultExt: ".jpg", MaxSize: maxSize}
}

// MenuItemImagePolicy stores item images as menu-items/image-{ms}-{rand}{ext}
func MenuItemImagePolicy(maxSize int64) ImagePolicy {
	return ImagePolicy{Dir: "menu-items", NamePrefix: "image-", MaxSize: maxSize}
}

// SVG is excluded: it can carry scripts
var blockedImageTypes = map[string]bool{
	"image/svg+xml": true,
}

// sniffLen is how much of an upload is read for type detection
const sniffLen = 3072

// nonstandard names some clients send for common image types
var imageTypeAliases = map[string]string{
	"image/jpg":   "image/jpeg",
	"image/pjpeg": "image/jpeg",
	"image/x-png": "image/png",
}

func canonicalImageType(contentType string) string {
	if canonical, ok := imageTypeAliases[contentType]; ok {
		return canonical
	}
	return contentType
}

// Check validates size and content type. The first bytes of every upload
// are sniffed: the detected type must be an allowed image, and a declared
// image type must agree with it. The stored content type is the detected one.
func (p ImagePolicy) Check(upload *ImageUpload) error {
	if p.MaxSize > 0 && upload.Size > p.MaxSize {
		return shared.NewDomainError(shared.ErrPayloadTooLarge.Code,
			fmt.Sprintf("Image exceeds the maximum size of %d bytes", p.MaxSize))
	}

	declared := normalizeContentType(upload.ContentType)
	if declared != "" && declared != "application/octet-stream" && !strings.HasPrefix(declared, "image/") {
		return shared.ErrUnsupportedMedia
	}

	buffered := bufio.NewReader(upload.Reader)
	head, _ := buffered.Peek(sniffLen)
	upload.Reader = buffered

	detected := mimetype.Detect(head)
	sniffed := normalizeContentType(detected.String())
	if !strings.HasPrefix(sniffed, "image/") || blockedImageTypes[sniffed] {
		return shared.ErrUnsupportedMedia
	}
	if strings.HasPrefix(declared, "image/") && !detected.Is(canonicalImageType(declared)) {
		return shared.ErrUnsupportedMedia
	}

	upload.ContentType = sniffed
	return nil
}

// NewKey generates a collision-resistant key for the upload
func (p ImagePolicy) NewKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || len(ext) > 8 || strings.ContainsAny(ext, `/\ `) {
		ext = p.DefaultExt
	}
	name := fmt.Sprintf("%s%d-%s%s", p.NamePrefix, time.Now().UnixMilli(), randomSuffix(), ext)
	return p.Dir + "/" + name
}

// store validates the upload and saves it, returning the new key
func (p ImagePolicy) store(ctx context.Context, images ImageStore, metrics *telemetry.MenuMetrics, upload *ImageUpload) (key string, err error) {
	defer func() {
		metrics.RecordImageUpload(ctx, imageKind(p.Dir+"/"), upload.Size, err)
	}()

	if err := p.Check(upload); err != nil {
		return "", err
	}
	key = p.NewKey(upload.Filename)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationImageStore, ""), func(c context.Context) {
		err = images.Save(c, key, upload.Reader, upload.Size, upload.ContentType)
	})
	if err != nil {
		return "", shared.WrapDomainError("STORAGE_FAILED", "Failed to store image", err)
	}
	return key, nil
}

func normalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

func randomSuffix() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
