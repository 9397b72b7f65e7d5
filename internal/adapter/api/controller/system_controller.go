package controller

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gemini-chat/internal/adapter/api/dto"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
	"github.com/shirou/gopsutil/process"
)

// APIVersion é a versão anunciada em /api/status e /api/docs
const APIVersion = "1.0.0"

// AvailableEndpoints é a lista devolvida quando a rota não existe
var AvailableEndpoints = []string{
	"POST /api/chat",
	"POST /prompt",
	"GET /health",
	"GET /api/status",
	"GET /api/docs",
	"GET /api/chats",
	"GET /api/chat/:id",
	"DELETE /api/chat/:id",
	"GET /",
}

// SystemConfig agrupa as informações exibidas pelos endpoints de sistema
type SystemConfig struct {
	Environment     string
	WebDir          string
	RateLimitWindow time.Duration
	RateLimitMax    int
}

// SystemController atende health check, status, documentação e arquivos estáticos
type SystemController struct {
	cfg       SystemConfig
	logger    logger.Logger
	startedAt time.Time
}

// NewSystemController cria uma nova instância de SystemController
func NewSystemController(cfg SystemConfig, logger logger.Logger) *SystemController {
	return &SystemController{
		cfg:       cfg,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Health retorna o estado do processo
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (c *SystemController) Health(ctx *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	info := dto.MemoryInfo{
		Used:  megabytes(mem.HeapAlloc),
		Total: megabytes(mem.HeapSys),
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil {
			info.RSS = megabytes(mi.RSS)
		}
	}

	c.logger.Debug("Health check solicitado")
	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "OK",
		Timestamp:   dto.Now(),
		Uptime:      fmt.Sprintf("%d seconds", int64(time.Since(c.startedAt).Seconds())),
		Memory:      info,
		GoVersion:   runtime.Version(),
		Environment: c.cfg.Environment,
	})
}

// Status descreve a API e seus endpoints
// @Summary Status da API
// @Tags system
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /api/status [get]
func (c *SystemController) Status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.StatusResponse{
		Status:    "API is running",
		Version:   APIVersion,
		Timestamp: dto.Now(),
		Endpoints: map[string]string{
			"POST /api/chat":       "Main chat endpoint with AI",
			"POST /prompt":         "Legacy prompt endpoint",
			"GET /health":          "Health check endpoint",
			"GET /api/status":      "API status information",
			"GET /api/chats":       "List all chats",
			"GET /api/chat/:id":    "Get specific chat",
			"DELETE /api/chat/:id": "Delete specific chat",
			"GET /":                "Frontend application",
		},
		RateLimit: dto.RateLimitInfo{
			WindowMs: humanDuration(c.cfg.RateLimitWindow),
			Max:      fmt.Sprintf("%d requests per IP", c.cfg.RateLimitMax),
		},
	})
}

// Docs retorna a documentação resumida dos endpoints
// @Summary Documentação da API
// @Tags system
// @Produce json
// @Success 200 {object} dto.DocsResponse
// @Router /api/docs [get]
func (c *SystemController) Docs(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.DocsResponse{
		Title:   "Gemini Chat API Documentation",
		Version: APIVersion,
		Endpoints: []dto.EndpointDoc{
			{
				Method:      http.MethodPost,
				Path:        "/api/chat",
				Description: "Send message to AI and get response",
				Body: map[string]string{
					"message": "string (required, max 2000 chars)",
					"aiModel": "string (optional, default: 'Gemini')",
					"chatId":  "string (optional, for existing chat)",
				},
				Response: map[string]string{
					"success":       "boolean",
					"message":       "string (AI response)",
					"model":         "string",
					"timestamp":     "ISO string",
					"messageLength": "number",
					"chatId":        "string",
				},
			},
			{Method: http.MethodPost, Path: "/prompt", Description: "Legacy single-shot prompt, no history"},
			{Method: http.MethodGet, Path: "/health", Description: "Check server health status"},
			{Method: http.MethodGet, Path: "/api/chats", Description: "Get list of all chats"},
			{Method: http.MethodGet, Path: "/api/chat/:id", Description: "Get specific chat by ID"},
			{
				Method:      http.MethodDelete,
				Path:        "/api/chat/:id",
				Description: "Delete a specific chat by ID",
				Response: map[string]string{
					"success":   "boolean",
					"message":   "string",
					"timestamp": "ISO string",
				},
			},
		},
	})
}

// NoRoute serve arquivos do frontend ou responde 404 com os endpoints disponíveis
func (c *SystemController) NoRoute(ctx *gin.Context) {
	if file, ok := c.staticFile(ctx.Request); ok {
		ctx.File(file)
		return
	}

	c.logger.Warn("Rota não encontrada", "method", ctx.Request.Method, "path", ctx.Request.URL.Path)
	ctx.JSON(http.StatusNotFound, dto.NotFoundResponse{
		Success:            false,
		Error:              "Endpoint not found",
		RequestedPath:      ctx.Request.URL.Path,
		AvailableEndpoints: AvailableEndpoints,
		Timestamp:          dto.Now(),
	})
}

func (c *SystemController) staticFile(r *http.Request) (string, bool) {
	if c.cfg.WebDir == "" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		return "", false
	}

	clean := path.Clean("/" + r.URL.Path)
	if strings.HasPrefix(clean, "/api/") {
		return "", false
	}
	if clean == "/" {
		clean = "/index.html"
	}

	file := filepath.Join(c.cfg.WebDir, filepath.FromSlash(clean))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}
	return file, true
}

func megabytes(b uint64) string {
	return fmt.Sprintf("%d MB", (b+(1<<19))>>20)
}

func humanDuration(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return d.String()
}
