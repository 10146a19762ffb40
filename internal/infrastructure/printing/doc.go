// Package printing renders printable documents to PDF with headless Chrome.
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	posters := NewPosterRenderer(renderer)
//	pdf, err := posters.RenderPoster(ctx, Poster{
//	    BusinessName:  "café olé",
//	    MenuURL:       "https://menu.example.com/cafe-ole",
//	    QRCodeDataURL: dataURL,
//	})
package printing
