package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
)

const (
	// DefaultModelLabel é o nome devolvido quando o cliente não informa aiModel
	DefaultModelLabel = "Gemini"

	// DefaultRequestTimeout é o prazo máximo de uma chamada ao modelo
	DefaultRequestTimeout = 30 * time.Second

	previewLength = 100
)

// Generator abstrai o modelo generativo externo
type Generator interface {
	// Generate envia uma mensagem sem histórico
	Generate(ctx context.Context, prompt string) (string, error)

	// Continue envia a mensagem após o histórico da conversa
	Continue(ctx context.Context, history []chat.Turn, prompt string) (string, error)
}

// ChatResult é o resultado de uma troca de mensagens bem-sucedida
type ChatResult struct {
	Message       string
	Model         string
	Timestamp     time.Time
	MessageLength int
	ChatID        string
}

// PromptResult é o resultado do endpoint legado /prompt
type PromptResult struct {
	Message   string
	Timestamp time.Time
}

// ChatService orquestra validação, store e modelo
type ChatService struct {
	store     chat.Store
	generator Generator
	logger    logger.Logger
	timeout   time.Duration
	now       func() time.Time
}

// Option configura o ChatService
type Option func(*ChatService)

// WithTimeout altera o prazo das chamadas ao modelo
func WithTimeout(d time.Duration) Option {
	return func(s *ChatService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock altera a fonte de horário, usado nos testes
func WithClock(now func() time.Time) Option {
	return func(s *ChatService) {
		s.now = now
	}
}

// NewChatService cria uma nova instância de ChatService
func NewChatService(store chat.Store, generator Generator, logger logger.Logger, opts ...Option) *ChatService {
	s := &ChatService{
		store:     store,
		generator: generator,
		logger:    logger,
		timeout:   DefaultRequestTimeout,
		now:       chat.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendMessage valida a entrada, consulta o modelo e grava a troca na sessão
func (s *ChatService) SendMessage(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	in, err := ValidateChatRequest(req)
	if err != nil {
		return nil, err
	}

	modelLabel := in.AIModel
	if modelLabel == "" {
		modelLabel = DefaultModelLabel
	}

	s.logger.Info("Mensagem recebida",
		"preview", preview(in.Message, previewLength),
		"model", modelLabel,
		"chat_id", orDefault(in.ChatID, "nova conversa"))

	var history []chat.Turn
	if in.ChatID != "" {
		session, err := s.GetChat(ctx, in.ChatID)
		if err != nil {
			return nil, err
		}
		history = chat.ProjectHistory(session.Messages)
		s.logger.Debug("Histórico da conversa carregado", "chat_id", in.ChatID, "turns", len(history))
	}

	raw, err := s.callModel(ctx, history, in.Message)
	if err != nil {
		return nil, err
	}

	reply := strings.TrimSpace(raw)
	if reply == "" {
		return nil, chat.ErrEmptyResponse
	}

	// A resposta já foi obtida; gravar mesmo que o cliente tenha desconectado
	chatID, err := s.appendExchange(context.WithoutCancel(ctx), in, reply)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resposta gerada e salva", "chat_id", chatID, "length", len(reply))

	return &ChatResult{
		Message:       reply,
		Model:         modelLabel,
		Timestamp:     s.now(),
		MessageLength: utf8.RuneCountInString(raw),
		ChatID:        chatID,
	}, nil
}

// appendExchange grava a pergunta e a resposta na sessão existente ou em uma nova
func (s *ChatService) appendExchange(ctx context.Context, in ChatInput, reply string) (string, error) {
	var chatID string
	err := s.store.Update(ctx, func(sessions []chat.Session) ([]chat.Session, error) {
		at := s.now()

		if in.ChatID != "" {
			idx := chat.FindSession(sessions, in.ChatID)
			if idx < 0 {
				// a sessão foi removida enquanto o modelo respondia
				return nil, chat.ErrSessionNotFound
			}
			sessions[idx].AppendExchange(in.Message, reply, at)
			chatID = in.ChatID
			return sessions, nil
		}

		session := chat.NewSession(in.Message, at)
		for chat.FindSession(sessions, session.ID) >= 0 {
			session.ID = chat.NewSession(in.Message, at).ID
		}
		session.AppendExchange(in.Message, reply, at)
		chatID = session.ID
		return append(sessions, *session), nil
	})
	if err != nil {
		return "", err
	}
	return chatID, nil
}

// callModel chama o modelo com prazo; a chamada é cancelada quando o prazo expira
func (s *ChatService) callModel(ctx context.Context, history []chat.Turn, message string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		text string
		err  error
	)
	if len(history) > 0 {
		text, err = s.generator.Continue(callCtx, history, message)
	} else {
		text, err = s.generator.Generate(callCtx, message)
	}

	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded && !errors.Is(err, chat.ErrTimeout) {
			err = fmt.Errorf("%w: %w", chat.ErrTimeout, err)
		}
		return "", ClassifyModelError(err)
	}
	return text, nil
}

// Prompt atende o endpoint legado: uma chamada isolada, sem persistência
func (s *ChatService) Prompt(ctx context.Context, prompt interface{}) (*PromptResult, error) {
	text, err := ValidatePrompt(prompt)
	if err != nil {
		return nil, err
	}

	reply, err := s.callModel(ctx, nil, text)
	if err != nil {
		return nil, err
	}

	return &PromptResult{
		Message:   strings.TrimSpace(reply),
		Timestamp: s.now(),
	}, nil
}

// ListChats retorna o resumo de todas as sessões, na ordem do store
func (s *ChatService) ListChats(ctx context.Context) ([]chat.Summary, error) {
	sessions, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]chat.Summary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, session.Summary())
	}
	return summaries, nil
}

// GetChat retorna a sessão completa pelo ID
func (s *ChatService) GetChat(ctx context.Context, id string) (*chat.Session, error) {
	sessions, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := chat.FindSession(sessions, id)
	if idx < 0 {
		return nil, chat.ErrSessionNotFound
	}
	return &sessions[idx], nil
}

// DeleteChat remove a sessão pelo ID
func (s *ChatService) DeleteChat(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(sessions []chat.Session) ([]chat.Session, error) {
		idx := chat.FindSession(sessions, id)
		if idx < 0 {
			return nil, chat.ErrSessionNotFound
		}
		return append(sessions[:idx], sessions[idx+1:]...), nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Chat removido", "chat_id", id)
	return nil
}

// ClassifyModelError garante que o erro do modelo carregue um tipo do domínio.
// Erros já tipados são mantidos; os demais são classificados pelo texto.
func ClassifyModelError(err error) error {
	if err == nil {
		return nil
	}

	for _, known := range []error{chat.ErrAuth, chat.ErrTimeout, chat.ErrQuota, chat.ErrEmptyResponse} {
		if errors.Is(err, known) {
			return err
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", chat.ErrTimeout, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return fmt.Errorf("%w: %w", chat.ErrAuth, err)
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %w", chat.ErrTimeout, err)
	case strings.Contains(msg, "quota"):
		return fmt.Errorf("%w: %w", chat.ErrQuota, err)
	}
	return fmt.Errorf("erro ao gerar conteúdo: %w", err)
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
