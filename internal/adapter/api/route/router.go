package route

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gemini-chat/internal/adapter/api/controller"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
	"github.com/hugohenrick/gemini-chat/pkg/middleware"
)

// Options reúne as dependências do router HTTP
type Options struct {
	Logger           logger.Logger
	AllowedOrigins   []string
	RateLimit        middleware.RateLimitConfig
	BodyLimit        int64
	ChatController   *controller.ChatController
	SystemController *controller.SystemController
}

// NewRouter cria o engine gin com middlewares globais e todas as rotas
func NewRouter(opts Options) *gin.Engine {
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = middleware.DefaultBodyLimit
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(opts.Logger),
		middleware.AccessLog(opts.Logger),
		cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, "Retry-After"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.BodyLimit(opts.BodyLimit),
	)

	limiter := middleware.NewRateLimiter(opts.RateLimit)
	api := router.Group("/api", limiter.Middleware())

	SetupChatRoutes(api, opts.ChatController)
	SetupLegacyRoutes(router, opts.ChatController)
	// rotas inexistentes sob /api/ também consomem o limite
	SetupSystemRoutes(router, api, opts.SystemController, limiter.PrefixMiddleware("/api/"))

	return router
}
