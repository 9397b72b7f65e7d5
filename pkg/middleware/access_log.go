package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
)

// AccessLog registra método, caminho, status e latência de cada requisição
func AccessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"request_id", GetRequestID(c),
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("Requisição concluída", fields...)
		case status >= 400:
			log.Warn("Requisição concluída", fields...)
		default:
			log.Debug("Requisição concluída", fields...)
		}
	}
}
