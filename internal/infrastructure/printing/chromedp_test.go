package printing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, defaultChromeTimeout, r.config.DefaultTimeout)
	assert.Equal(t, defaultScale, r.config.Scale)
	assert.NotNil(t, r.allocCtx)
}

func TestBuildPrintParams(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{Scale: 1.0}}

	t.Run("A4 portrait", func(t *testing.T) {
		params := r.buildPrintParams(&RenderRequest{PaperSize: PaperSizeA4, Margins: UniformMargins(10)})

		assert.InDelta(t, mmToInches(210), params.paperWidth, 0.01)
		assert.InDelta(t, mmToInches(297), params.paperHeight, 0.01)
		assert.InDelta(t, mmToInches(10), params.marginLeft, 0.01)
		assert.False(t, params.landscape)
	})

	t.Run("A5 landscape", func(t *testing.T) {
		params := r.buildPrintParams(&RenderRequest{PaperSize: PaperSizeA5, Landscape: true})

		assert.InDelta(t, mmToInches(148), params.paperWidth, 0.01)
		assert.True(t, params.landscape)
	})
}

func TestBuildCompleteHTML(t *testing.T) {
	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, buildCompleteHTML(&RenderRequest{HTML: full}))

	wrapped := buildCompleteHTML(&RenderRequest{HTML: "<p>x</p>", Title: "A & B"})
	assert.Contains(t, wrapped, "<title>A &amp; B</title>")
	assert.Contains(t, wrapped, "<body><p>x</p></body>")
}

func TestRender_RejectsInvalidRequests(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}

	_, err := r.Render(context.Background(), nil)
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)

	_, err = r.Render(context.Background(), &RenderRequest{HTML: "<p>x</p>", PaperSize: "B5"})
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidPaperSize, renderErr.Code)
}

func TestEstimatePageCount(t *testing.T) {
	assert.Equal(t, 1, estimatePageCount([]byte("%PDF")))
	assert.Equal(t, 2, estimatePageCount([]byte("/Type /Pages /Type /Page /Type /Page")))
}
