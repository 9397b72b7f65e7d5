package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gemini-chat/internal/adapter/api/dto"
	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
	"github.com/hugohenrick/gemini-chat/internal/service"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
	"github.com/hugohenrick/gemini-chat/pkg/middleware"
)

// ChatController gerencia as requisições relacionadas às conversas
type ChatController struct {
	chatService *service.ChatService
	logger      logger.Logger
}

// NewChatController cria uma nova instância de ChatController
func NewChatController(chatService *service.ChatService, logger logger.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// SendMessage envia uma mensagem ao modelo e persiste a troca
// @Summary Enviar mensagem
// @Description Envia uma mensagem ao Gemini, criando uma nova conversa ou continuando a informada em chatId
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Mensagem"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 408 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chat [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := bindJSON(ctx, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse("Request body too large"))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse([]string{"Request body must be valid JSON"}))
		return
	}

	result, err := c.chatService.SendMessage(ctx.Request.Context(), req.ToServiceRequest())
	if err != nil {
		c.respondError(ctx, err, "Erro ao processar mensagem")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChatResponse(result))
}

// ListChats lista as conversas armazenadas
// @Summary Listar conversas
// @Description Lista id, título e data de criação de todas as conversas
// @Tags chat
// @Produce json
// @Success 200 {object} dto.ChatListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chats [get]
func (c *ChatController) ListChats(ctx *gin.Context) {
	chats, err := c.chatService.ListChats(ctx.Request.Context())
	if err != nil {
		c.logger.Error("Erro ao listar chats", "error", err, "request_id", middleware.GetRequestID(ctx))
		ctx.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse("Failed to fetch chats", middleware.GetRequestID(ctx)))
		return
	}

	ctx.JSON(http.StatusOK, dto.ChatListResponse{Success: true, Chats: chats})
}

// GetChat retorna uma conversa completa
// @Summary Obter conversa
// @Description Retorna a conversa com todas as mensagens
// @Tags chat
// @Produce json
// @Param id path string true "ID da conversa"
// @Success 200 {object} dto.ChatDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chat/{id} [get]
func (c *ChatController) GetChat(ctx *gin.Context) {
	id := ctx.Param("id")

	session, err := c.chatService.GetChat(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse("Chat not found"))
			return
		}
		c.logger.Error("Erro ao buscar chat", "chat_id", id, "error", err, "request_id", middleware.GetRequestID(ctx))
		ctx.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse("Failed to fetch chat", middleware.GetRequestID(ctx)))
		return
	}

	ctx.JSON(http.StatusOK, dto.ChatDetailResponse{Success: true, Chat: session})
}

// DeleteChat remove uma conversa
// @Summary Remover conversa
// @Description Remove a conversa e persiste o store reduzido
// @Tags chat
// @Produce json
// @Param id path string true "ID da conversa"
// @Success 200 {object} dto.DeleteChatResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chat/{id} [delete]
func (c *ChatController) DeleteChat(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.chatService.DeleteChat(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse("Chat not found"))
			return
		}
		c.logger.Error("Erro ao remover chat", "chat_id", id, "error", err, "request_id", middleware.GetRequestID(ctx))
		ctx.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse("Failed to delete chat", middleware.GetRequestID(ctx)))
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteChatResponse{
		Success:   true,
		Message:   "Chat deleted successfully",
		Timestamp: dto.Now(),
	})
}

// Prompt atende o contrato legado de chamada isolada
// @Summary Prompt legado
// @Description Envia um prompt isolado ao modelo, sem histórico e sem persistência
// @Tags legacy
// @Accept json
// @Produce json
// @Param request body dto.PromptRequest true "Prompt"
// @Success 200 {object} dto.PromptResponse
// @Failure 400 {object} dto.PromptErrorResponse
// @Failure 500 {object} dto.PromptErrorResponse
// @Router /prompt [post]
func (c *ChatController) Prompt(ctx *gin.Context) {
	var req dto.PromptRequest
	if err := bindJSON(ctx, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.PromptErrorResponse{Error: service.ViolationPromptRequired})
		return
	}

	result, err := c.chatService.Prompt(ctx.Request.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, chat.ErrValidation) {
			ctx.JSON(http.StatusBadRequest, dto.PromptErrorResponse{Error: service.ViolationPromptRequired})
			return
		}
		c.logger.Error("Erro no endpoint /prompt", "error", err, "request_id", middleware.GetRequestID(ctx))
		now := dto.Now()
		ctx.JSON(http.StatusInternalServerError, dto.PromptErrorResponse{Error: "Internal server error", Timestamp: &now})
		return
	}

	ctx.JSON(http.StatusOK, dto.PromptResponse{Message: result.Message, Timestamp: dto.NewTimestamp(result.Timestamp)})
}

func (c *ChatController) respondError(ctx *gin.Context, err error, logMsg string) {
	var verr *chat.ValidationError
	if errors.As(err, &verr) {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(verr.Violations))
		return
	}

	status, message := statusFor(err)
	requestID := middleware.GetRequestID(ctx)
	c.logger.Error(logMsg, "status", status, "error", err, "request_id", requestID)

	if status >= http.StatusInternalServerError {
		ctx.JSON(status, dto.NewInternalErrorResponse(message, requestID))
		return
	}
	ctx.JSON(status, dto.NewErrorResponse(message))
}

// statusFor mapeia o erro para o status HTTP; vence o primeiro que casar
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, chat.ErrAuth):
		return http.StatusUnauthorized, "API key error"
	case errors.Is(err, chat.ErrTimeout):
		return http.StatusRequestTimeout, "Request timeout"
	case errors.Is(err, chat.ErrQuota):
		return http.StatusTooManyRequests, "API quota exceeded"
	case errors.Is(err, chat.ErrSessionNotFound):
		return http.StatusNotFound, "Chat ID not found"
	case errors.Is(err, chat.ErrValidation):
		return http.StatusBadRequest, "Validation failed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// bindJSON decodifica o corpo; corpo vazio equivale a um objeto vazio
func bindJSON(ctx *gin.Context, obj interface{}) error {
	if err := ctx.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
