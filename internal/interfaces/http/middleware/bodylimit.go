package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qrmenu/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Multipart
// uploads are capped here as well, before the image policy sees them.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge,
				"Request body exceeds maximum allowed size")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
