package dto

import (
	"encoding/json"
	"time"

	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
)

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Details   []string  `json:"details,omitempty"`
	Timestamp Timestamp `json:"timestamp" swaggertype:"string"`
	RequestID string    `json:"requestId,omitempty"`
}

// NotFoundResponse é devolvida para rotas inexistentes
type NotFoundResponse struct {
	Success            bool      `json:"success"`
	Error              string    `json:"error"`
	RequestedPath      string    `json:"requestedPath"`
	AvailableEndpoints []string  `json:"availableEndpoints"`
	Timestamp          Timestamp `json:"timestamp" swaggertype:"string"`
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Error:     message,
		Timestamp: Now(),
	}
}

// NewValidationErrorResponse cria uma resposta de erro com a lista de violações
func NewValidationErrorResponse(details []string) ErrorResponse {
	resp := NewErrorResponse("Validation failed")
	resp.Details = details
	return resp
}

// NewInternalErrorResponse cria uma resposta de erro 5xx com o token de correlação
func NewInternalErrorResponse(message, requestID string) ErrorResponse {
	resp := NewErrorResponse(message)
	resp.RequestID = requestID
	return resp
}

// Timestamp é um horário serializado com milissegundos fixos (2024-05-01T10:00:00.000Z)
type Timestamp time.Time

// NewTimestamp converte um time.Time em Timestamp
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now retorna o horário atual como Timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// MarshalJSON implementa json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(chat.FormatTimestamp(time.Time(t)))
}
