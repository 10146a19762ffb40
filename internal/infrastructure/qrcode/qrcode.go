// Package qrcode renders QR codes as PNG images.
package qrcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	qr "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the default edge length of the PNG in pixels
	DefaultSize = 256
	// DefaultMargin is the quiet zone around the code, in modules
	DefaultMargin = 2
)

// Generator encodes text as a black-on-white PNG QR code with high error correction
type Generator struct {
	size   int
	margin int
	level  qr.RecoveryLevel
}

// Option configures a Generator
type Option func(*Generator)

// WithMargin sets the quiet zone width in modules
func WithMargin(modules int) Option {
	return func(g *Generator) {
		if modules >= 0 {
			g.margin = modules
		}
	}
}

// NewGenerator creates a generator producing size x size images
func NewGenerator(size int, opts ...Option) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	g := &Generator{
		size:   size,
		margin: DefaultMargin,
		level:  qr.High,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Size returns the image edge length in pixels
func (g *Generator) Size() int {
	return g.size
}

// PNG encodes content as a PNG image
func (g *Generator) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content is empty")
	}

	code, err := qr.New(content, g.level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	// the library's fixed 4-module border is replaced by our own margin
	code.DisableBorder = true

	var buf bytes.Buffer
	if err := png.Encode(&buf, g.render(code.Bitmap())); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL encodes content as a base64 PNG data URL
func (g *Generator) DataURL(content string) (string, error) {
	data, err := g.PNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// render scales the module bitmap to the target size with nearest-neighbour
// sampling, surrounded by the quiet zone.
func (g *Generator) render(bitmap [][]bool) image.Image {
	modules := len(bitmap) + 2*g.margin
	size := g.size
	if size < modules {
		size = modules
	}

	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, size, size), palette)

	for y := 0; y < size; y++ {
		row := y*modules/size - g.margin
		if row < 0 || row >= len(bitmap) {
			continue
		}
		for x := 0; x < size; x++ {
			col := x*modules/size - g.margin
			if col < 0 || col >= len(bitmap[row]) {
				continue
			}
			if bitmap[row][col] {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img
}
