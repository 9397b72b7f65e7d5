package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
)

type panicResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string    `json:"requestId"`
}

// Recovery converte panics em uma resposta 500 genérica
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestID := GetRequestID(c)
		log.Error("Panic ao processar requisição",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, panicResponse{
			Success:   false,
			Error:     "Something went wrong!",
			Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			RequestID: requestID,
		})
	})
}
