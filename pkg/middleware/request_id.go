package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader é o cabeçalho usado para correlacionar requisições
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID garante que toda requisição tenha um token de correlação
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID retorna o token de correlação da requisição atual
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	return c.Writer.Header().Get(RequestIDHeader)
}
