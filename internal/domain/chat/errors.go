package chat

import (
	"errors"
	"strings"
)

// Erros do domínio de chat
var (
	// ErrValidation ocorre quando a entrada do cliente é inválida
	ErrValidation = errors.New("validation failed")

	// ErrSessionNotFound ocorre quando o ID de chat não existe no store
	ErrSessionNotFound = errors.New("Chat ID not found")

	// ErrTimeout ocorre quando o modelo não responde dentro do prazo
	ErrTimeout = errors.New("request timeout")

	// ErrQuota ocorre quando a cota da API externa foi excedida
	ErrQuota = errors.New("API quota exceeded")

	// ErrAuth ocorre quando a credencial da API externa é rejeitada
	ErrAuth = errors.New("API key error")

	// ErrEmptyResponse ocorre quando o modelo não devolve texto utilizável
	ErrEmptyResponse = errors.New("Empty response from AI")

	// ErrPersistence ocorre quando a leitura ou gravação do store falha
	ErrPersistence = errors.New("chat store persistence error")
)

// ValidationError lista todas as regras violadas por uma requisição
type ValidationError struct {
	Violations []string
}

// Error implementa a interface error
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// Is permite errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
