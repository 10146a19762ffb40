package menu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Enough of each format for content sniffing
var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	webpHeader = []byte("RIFF\x24\x00\x00\x00WEBPVP8 \x18\x00\x00\x00")
)

func newUpload(filename, contentType string, data []byte) *ImageUpload {
	return &ImageUpload{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Reader:      bytes.NewReader(data),
	}
}

func TestImagePolicy_Check(t *testing.T) {
	policy := MenuItemImagePolicy(1024)

	t.Run("accepts declared image types", func(t *testing.T) {
		assert.NoError(t, policy.Check(newUpload("a.jpg", "image/jpeg", jpegHeader)))
		assert.NoError(t, policy.Check(newUpload("a.jpg", "image/jpg", jpegHeader)))
		assert.NoError(t, policy.Check(newUpload("a.webp", "image/webp; charset=binary", webpHeader)))
	})

	t.Run("declared image type must match the content", func(t *testing.T) {
		html := []byte("<html><body><script>alert(1)</script></body></html>")
		assert.ErrorIs(t, policy.Check(newUpload("a.png", "image/png", html)), shared.ErrUnsupportedMedia)
		assert.ErrorIs(t, policy.Check(newUpload("a.png", "image/png", jpegHeader)), shared.ErrUnsupportedMedia)
		assert.ErrorIs(t, policy.Check(newUpload("a.png", "image/png", []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"/>"))), shared.ErrUnsupportedMedia)
	})

	t.Run("stored content type is the sniffed one", func(t *testing.T) {
		upload := newUpload("a.jpg", "image/jpg", jpegHeader)

		require.NoError(t, policy.Check(upload))
		assert.Equal(t, "image/jpeg", upload.ContentType)
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		err := policy.Check(newUpload("a.jpg", "image/jpeg", make([]byte, 2048)))

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "PAYLOAD_TOO_LARGE", domainErr.Code)
	})

	t.Run("rejects non-images and svg", func(t *testing.T) {
		assert.ErrorIs(t, policy.Check(newUpload("a.pdf", "application/pdf", pngHeader)), shared.ErrUnsupportedMedia)
		assert.ErrorIs(t, policy.Check(newUpload("a.svg", "image/svg+xml", []byte("<svg/>"))), shared.ErrUnsupportedMedia)
	})

	t.Run("sniffs octet-stream uploads without losing bytes", func(t *testing.T) {
		upload := newUpload("photo", "application/octet-stream", pngHeader)

		require.NoError(t, policy.Check(upload))
		assert.Equal(t, "image/png", upload.ContentType)

		data, err := io.ReadAll(upload.Reader)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)
	})

	t.Run("sniffed text is rejected", func(t *testing.T) {
		upload := newUpload("notes", "", []byte("just some text"))
		assert.ErrorIs(t, policy.Check(upload), shared.ErrUnsupportedMedia)
	})
}

func TestImagePolicy_NewKey(t *testing.T) {
	t.Run("category keys", func(t *testing.T) {
		policy := CategoryImagePolicy(0)

		assert.Regexp(t, regexp.MustCompile(`^categories/\d+-[0-9a-f]{12}\.png$`), policy.NewKey("Photo.PNG"))
		assert.Regexp(t, regexp.MustCompile(`^categories/\d+-[0-9a-f]{12}\.jpg$`), policy.NewKey("noext"))
	})

	t.Run("menu item keys", func(t *testing.T) {
		policy := MenuItemImagePolicy(0)

		key := policy.NewKey("../../etc/passwd.jpg")
		assert.Regexp(t, regexp.MustCompile(`^menu-items/image-\d+-[0-9a-f]{12}\.jpg$`), key)
		assert.Regexp(t, regexp.MustCompile(`^menu-items/image-\d+-[0-9a-f]{12}$`), policy.NewKey("noext"))
	})

	t.Run("keys are unique", func(t *testing.T) {
		policy := CategoryImagePolicy(0)
		assert.NotEqual(t, policy.NewKey("a.jpg"), policy.NewKey("a.jpg"))
	})
}

func TestImagePolicy_Store(t *testing.T) {
	ctx := context.Background()
	policy := CategoryImagePolicy(1024)

	t.Run("saves under a generated key", func(t *testing.T) {
		images := new(MockImageStore)
		images.On("Save", mock.Anything, mock.AnythingOfType("string"), int64(len(jpegHeader)), "image/jpeg").Return(nil)

		key, err := policy.store(ctx, images, nil, newUpload("a.jpg", "image/jpeg", jpegHeader))

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "categories/"))
		assert.Equal(t, jpegHeader, images.saved[key])
	})

	t.Run("wraps storage failures", func(t *testing.T) {
		images := new(MockImageStore)
		images.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := policy.store(ctx, images, nil, newUpload("a.jpg", "image/jpeg", jpegHeader))

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "STORAGE_FAILED", domainErr.Code)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("invalid upload never reaches the store", func(t *testing.T) {
		images := new(MockImageStore)

		_, err := policy.store(ctx, images, nil, newUpload("a.txt", "text/plain", []byte("x")))

		assert.ErrorIs(t, err, shared.ErrUnsupportedMedia)
		images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
