package chat

import (
	"encoding/json"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Papéis de mensagem armazenados no histórico
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TimestampLayout é o formato RFC 3339 com milissegundos fixos usado no JSON
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// TitleMaxLength é a quantidade de caracteres da primeira mensagem usada no título
const TitleMaxLength = 30

// Message representa uma mensagem de uma sessão de chat
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session representa uma conversa persistida
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary é a visão resumida de uma sessão, sem as mensagens
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// FormatTimestamp formata o horário em UTC com três casas de milissegundos
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON grava o timestamp com milissegundos fixos
func (m Message) MarshalJSON() ([]byte, error) {
	type alias Message
	return json.Marshal(struct {
		alias
		Timestamp string `json:"timestamp"`
	}{alias(m), FormatTimestamp(m.Timestamp)})
}

// MarshalJSON grava createdAt com milissegundos fixos
func (s Session) MarshalJSON() ([]byte, error) {
	type alias Session
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"createdAt"`
	}{alias(s), FormatTimestamp(s.CreatedAt)})
}

// MarshalJSON grava createdAt com milissegundos fixos
func (s Summary) MarshalJSON() ([]byte, error) {
	type alias Summary
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"createdAt"`
	}{alias(s), FormatTimestamp(s.CreatedAt)})
}

// NewSession cria uma sessão vazia com ID único e título derivado da primeira mensagem
func NewSession(firstUserMessage string, at time.Time) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Title:     DeriveTitle(firstUserMessage),
		Messages:  []Message{},
		CreatedAt: at,
	}
}

// DeriveTitle retorna os primeiros 30 caracteres da mensagem, com "..." quando truncada
func DeriveTitle(message string) string {
	if utf8.RuneCountInString(message) <= TitleMaxLength {
		return message
	}
	return string([]rune(message)[:TitleMaxLength]) + "..."
}

// AppendExchange adiciona a pergunta do usuário e a resposta do assistente ao final do histórico
func (s *Session) AppendExchange(userContent, assistantContent string, at time.Time) {
	s.Messages = append(s.Messages,
		Message{Role: RoleUser, Content: userContent, Timestamp: at},
		Message{Role: RoleAssistant, Content: assistantContent, Timestamp: at},
	)
}

// Summary retorna a visão resumida da sessão
func (s Session) Summary() Summary {
	return Summary{ID: s.ID, Title: s.Title, CreatedAt: s.CreatedAt}
}

// FindSession procura uma sessão pelo ID e retorna seu índice, ou -1
func FindSession(sessions []Session, id string) int {
	for i := range sessions {
		if sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// Now retorna o horário atual em UTC com precisão de milissegundos
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
