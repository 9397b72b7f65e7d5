package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gemini-chat/internal/adapter/api/controller"
	"github.com/hugohenrick/gemini-chat/internal/adapter/api/route"
	"github.com/hugohenrick/gemini-chat/internal/adapter/llm"
	"github.com/hugohenrick/gemini-chat/internal/adapter/repository"
	"github.com/hugohenrick/gemini-chat/internal/config"
	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
	"github.com/hugohenrick/gemini-chat/internal/infrastructure/database"
	"github.com/hugohenrick/gemini-chat/internal/service"
	"github.com/hugohenrick/gemini-chat/pkg/gemini"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
	"github.com/hugohenrick/gemini-chat/pkg/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências
type App struct {
	cfg    *config.Config
	logger logger.Logger
	router *gin.Engine
	server *http.Server
	store  chat.Store
	db     *pgxpool.Pool
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{cfg: cfg, logger: log}

	store, err := app.newStore(ctx)
	if err != nil {
		return nil, err
	}
	app.store = store

	if err := store.EnsureInitialized(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("erro ao inicializar o armazenamento de chats: %w", err)
	}

	client, err := gemini.NewClient(cfg.GoogleAPIKey, log,
		gemini.WithBaseURL(cfg.GeminiBaseURL),
		gemini.WithModel(cfg.GeminiModel),
	)
	if err != nil {
		app.Close()
		return nil, err
	}

	chatService := service.NewChatService(store, llm.NewGeminiGenerator(client), log,
		service.WithTimeout(cfg.RequestTimeout),
	)

	// Criar controllers
	chatController := controller.NewChatController(chatService, log)
	systemController := controller.NewSystemController(controller.SystemConfig{
		Environment:     cfg.Environment,
		WebDir:          cfg.WebDir,
		RateLimitWindow: cfg.RateLimitWindow,
		RateLimitMax:    cfg.RateLimitMax,
	}, log)

	app.router = route.NewRouter(route.Options{
		Logger:         log,
		AllowedOrigins: cfg.Origins(),
		RateLimit: middleware.RateLimitConfig{
			Window: cfg.RateLimitWindow,
			Max:    cfg.RateLimitMax,
		},
		BodyLimit:        middleware.DefaultBodyLimit,
		ChatController:   chatController,
		SystemController: systemController,
	})

	app.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

func (a *App) newStore(ctx context.Context) (chat.Store, error) {
	switch a.cfg.StoreDriver {
	case config.StoreDriverMemory:
		a.logger.Warn("Usando armazenamento em memória; as conversas serão perdidas ao reiniciar")
		return repository.NewChatMemoryRepository(), nil
	case config.StoreDriverPostgres:
		if err := database.RunMigrations(a.cfg.DatabaseURL); err != nil {
			return nil, err
		}
		pool, err := database.NewPostgresPool(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.db = pool
		return repository.NewChatPostgresRepository(pool, a.logger), nil
	default:
		return repository.NewChatFileRepository(a.cfg.ChatsFile, a.logger), nil
	}
}

// Run inicia o servidor HTTP e bloqueia até o contexto ser cancelado
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Servidor iniciado",
			"addr", a.server.Addr,
			"environment", a.cfg.Environment,
			"store", a.cfg.StoreDriver,
			"model", a.cfg.GeminiModel,
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("erro ao encerrar servidor: %w", err)
	}
	return nil
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
