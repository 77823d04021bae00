package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadLimitMiddleware rejects bodies larger than maxBytes. Declared
// lengths are checked up front, chunked bodies are cut off while reading.
func UploadLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
