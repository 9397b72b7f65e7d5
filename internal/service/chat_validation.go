package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
)

// MaxMessageLength é o tamanho máximo da mensagem, em caracteres
const MaxMessageLength = 2000

// Mensagens de violação devolvidas ao cliente
const (
	ViolationMessageRequired = "Message is required"
	ViolationMessageType     = "Message must be a string"
	ViolationMessageEmpty    = "Message cannot be empty"
	ViolationMessageTooLong  = "Message is too long (max 2000 characters)"
	ViolationAIModelType     = "AI model must be a string"
	ViolationChatIDType      = "Chat ID must be a string"
	ViolationPromptRequired  = "Valid prompt is required"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}
	return v
}

// messageRules são aplicadas individualmente para que todas as violações sejam reportadas
var messageRules = []struct {
	tag       string
	violation string
}{
	{"notblank", ViolationMessageEmpty},
	{"max=2000", ViolationMessageTooLong},
}

// ChatRequest é a entrada bruta do endpoint de chat; os campos chegam sem tipo
// definido para que erros de tipo sejam reportados junto com os demais
type ChatRequest struct {
	Message interface{} `json:"message"`
	AIModel interface{} `json:"aiModel"`
	ChatID  interface{} `json:"chatId"`
}

// ChatInput é a entrada validada e normalizada
type ChatInput struct {
	Message string
	AIModel string
	ChatID  string
}

// ValidateChatRequest valida a requisição e devolve todas as regras violadas
func ValidateChatRequest(req ChatRequest) (ChatInput, error) {
	var violations []string

	if isEmptyValue(req.Message) {
		violations = append(violations, ViolationMessageRequired)
	}

	message, ok := req.Message.(string)
	if !ok {
		violations = append(violations, ViolationMessageType)
	} else if message != "" {
		for _, rule := range messageRules {
			if err := validate.Var(message, rule.tag); err != nil {
				violations = append(violations, rule.violation)
			}
		}
	}

	aiModel, ok := optionalString(req.AIModel)
	if !ok {
		violations = append(violations, ViolationAIModelType)
	}

	chatID, ok := optionalString(req.ChatID)
	if !ok {
		violations = append(violations, ViolationChatIDType)
	}

	if len(violations) > 0 {
		return ChatInput{}, &chat.ValidationError{Violations: violations}
	}

	return ChatInput{
		Message: strings.TrimSpace(message),
		AIModel: aiModel,
		ChatID:  chatID,
	}, nil
}

// ValidatePrompt valida a entrada do endpoint legado /prompt
func ValidatePrompt(prompt interface{}) (string, error) {
	text, ok := prompt.(string)
	if !ok || validate.Var(text, "notblank") != nil {
		return "", &chat.ValidationError{Violations: []string{ViolationPromptRequired}}
	}
	return strings.TrimSpace(text), nil
}

// isEmptyValue reporta valores ausentes ou vazios (nil, "", false, 0)
func isEmptyValue(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case bool:
		return !value
	case float64:
		return value == 0
	default:
		return false
	}
}

// optionalString aceita valores vazios como ausentes; qualquer outro valor deve ser string
func optionalString(v interface{}) (string, bool) {
	if isEmptyValue(v) {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}
