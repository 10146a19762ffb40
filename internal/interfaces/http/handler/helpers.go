package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	menuapp "github.com/qrmenu/backend/internal/application/menu"
	"github.com/shopspring/decimal"
)

// imageFormField is the multipart field carrying an uploaded image
const imageFormField = "image"

// noop is returned as the closer when there is nothing to close
func noop() {}

// readImage returns the uploaded image, or nil when the request has none.
// The returned func closes the underlying file.
func readImage(c *gin.Context) (*menuapp.ImageUpload, func(), error) {
	fh, err := c.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &menuapp.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

// priceJSON renders a price with two decimals as a JSON number
func priceJSON(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
