package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit é o tamanho máximo aceito para corpos JSON (10 MB)
const DefaultBodyLimit int64 = 10 << 20

// BodyLimit limita o tamanho do corpo da requisição
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
