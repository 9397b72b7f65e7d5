package dto

import (
	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
	"github.com/hugohenrick/gemini-chat/internal/service"
)

// ChatRequest representa o corpo de POST /api/chat
type ChatRequest struct {
	Message interface{} `json:"message" swaggertype:"string" example:"Hello"`
	AIModel interface{} `json:"aiModel,omitempty" swaggertype:"string" example:"Gemini"`
	ChatID  interface{} `json:"chatId,omitempty" swaggertype:"string"`
}

// ToServiceRequest converte o DTO na entrada do serviço
func (r ChatRequest) ToServiceRequest() service.ChatRequest {
	return service.ChatRequest{
		Message: r.Message,
		AIModel: r.AIModel,
		ChatID:  r.ChatID,
	}
}

// ChatResponse representa a resposta de POST /api/chat
type ChatResponse struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	Model         string    `json:"model"`
	Timestamp     Timestamp `json:"timestamp" swaggertype:"string"`
	MessageLength int       `json:"messageLength"`
	ChatID        string    `json:"chatId"`
}

// ToChatResponse converte o resultado do serviço em resposta HTTP
func ToChatResponse(res *service.ChatResult) ChatResponse {
	return ChatResponse{
		Success:       true,
		Message:       res.Message,
		Model:         res.Model,
		Timestamp:     NewTimestamp(res.Timestamp),
		MessageLength: res.MessageLength,
		ChatID:        res.ChatID,
	}
}

// ChatListResponse representa a resposta de GET /api/chats
type ChatListResponse struct {
	Success bool           `json:"success"`
	Chats   []chat.Summary `json:"chats"`
}

// ChatDetailResponse representa a resposta de GET /api/chat/:id
type ChatDetailResponse struct {
	Success bool          `json:"success"`
	Chat    *chat.Session `json:"chat"`
}

// DeleteChatResponse representa a resposta de DELETE /api/chat/:id
type DeleteChatResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp Timestamp `json:"timestamp" swaggertype:"string"`
}

// PromptRequest representa o corpo de POST /prompt
type PromptRequest struct {
	Prompt interface{} `json:"prompt" swaggertype:"string" example:"Explain goroutines"`
}

// PromptResponse representa a resposta de POST /prompt
type PromptResponse struct {
	Message   string    `json:"message"`
	Timestamp Timestamp `json:"timestamp" swaggertype:"string"`
}

// PromptErrorResponse é o formato de erro do endpoint legado
type PromptErrorResponse struct {
	Error     string     `json:"error"`
	Timestamp *Timestamp `json:"timestamp,omitempty" swaggertype:"string"`
}
