package printing

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Poster is a printable table card linking to a business's public menu
type Poster struct {
	BusinessName  string
	MenuURL       string
	QRCodeDataURL string
	Headline      string // defaults to "Scan to view our menu"
}

const defaultHeadline = "Scan to view our menu"

var posterTemplate = template.Must(template.New("poster").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4; margin: 0; }
  body { margin: 0; font-family: "Helvetica Neue", Arial, sans-serif; color: #222; }
  .poster { height: 297mm; display: flex; flex-direction: column; align-items: center; justify-content: center; text-align: center; }
  h1 { font-size: 40pt; margin: 0 0 8mm; }
  h2 { font-size: 20pt; font-weight: normal; margin: 0 0 14mm; color: #555; }
  img { width: 110mm; height: 110mm; image-rendering: pixelated; }
  .url { margin-top: 10mm; font-size: 12pt; color: #777; word-break: break-all; }
</style>
</head>
<body>
<div class="poster">
  <h1>{{.Title}}</h1>
  <h2>{{.Headline}}</h2>
  <img src="{{.QRCode}}" alt="Menu QR code">
  <div class="url">{{.MenuURL}}</div>
</div>
</body>
</html>`))

// PosterRenderer lays out posters as HTML and prints them to PDF
type PosterRenderer struct {
	pdf   PDFRenderer
	title cases.Caser
}

// NewPosterRenderer creates a poster renderer on top of a PDF renderer
func NewPosterRenderer(pdf PDFRenderer) *PosterRenderer {
	return &PosterRenderer{
		pdf:   pdf,
		title: cases.Title(language.Und),
	}
}

// RenderHTML builds the poster document
func (r *PosterRenderer) RenderHTML(p Poster) (string, error) {
	if strings.TrimSpace(p.BusinessName) == "" {
		return "", NewRenderError(ErrCodeInvalidPoster, "poster business name is empty", nil)
	}
	if !strings.HasPrefix(p.QRCodeDataURL, "data:image/png;base64,") {
		return "", NewRenderError(ErrCodeInvalidPoster, "poster QR code must be a PNG data URL", nil)
	}

	headline := p.Headline
	if headline == "" {
		headline = defaultHeadline
	}

	var buf bytes.Buffer
	err := posterTemplate.Execute(&buf, struct {
		Title    string
		Headline string
		MenuURL  string
		QRCode   template.URL
	}{
		Title:    r.title.String(strings.TrimSpace(p.BusinessName)),
		Headline: headline,
		MenuURL:  p.MenuURL,
		// checked above to be an inline PNG
		QRCode: template.URL(p.QRCodeDataURL),
	})
	if err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute poster template", err)
	}
	return buf.String(), nil
}

// RenderPoster renders the poster as a single A4 page
func (r *PosterRenderer) RenderPoster(ctx context.Context, p Poster) ([]byte, error) {
	document, err := r.RenderHTML(p)
	if err != nil {
		return nil, err
	}

	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:      document,
		PaperSize: PaperSizeA4,
		Title:     p.BusinessName,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// Close releases the underlying PDF renderer
func (r *PosterRenderer) Close() error {
	return r.pdf.Close()
}
