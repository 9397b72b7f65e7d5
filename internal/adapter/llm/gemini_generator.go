package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
	"github.com/hugohenrick/gemini-chat/pkg/gemini"
)

// GeminiClient é o subconjunto de *gemini.Client usado pelo gerador
type GeminiClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	SendMessage(ctx context.Context, history []gemini.Content, prompt string) (string, error)
}

// GeminiGenerator adapta o cliente Gemini ao domínio de chat
type GeminiGenerator struct {
	client GeminiClient
}

// NewGeminiGenerator cria um novo gerador baseado no cliente Gemini
func NewGeminiGenerator(client GeminiClient) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// Generate envia uma mensagem isolada
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", translateError(err)
	}
	return text, nil
}

// Continue envia a mensagem com o histórico da conversa
func (g *GeminiGenerator) Continue(ctx context.Context, history []chat.Turn, prompt string) (string, error) {
	text, err := g.client.SendMessage(ctx, ToContents(history), prompt)
	if err != nil {
		return "", translateError(err)
	}
	return text, nil
}

// ToContents converte os turnos do domínio no formato da API Gemini
func ToContents(turns []chat.Turn) []gemini.Content {
	contents := make([]gemini.Content, 0, len(turns))
	for _, turn := range turns {
		contents = append(contents, gemini.Content{
			Role:  turn.Role,
			Parts: []gemini.Part{{Text: turn.Text}},
		})
	}
	return contents
}

// translateError converte o tipo de erro da API no erro correspondente do domínio
func translateError(err error) error {
	var apiErr *gemini.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Kind {
	case gemini.KindAuth:
		return fmt.Errorf("%w: %w", chat.ErrAuth, err)
	case gemini.KindQuota:
		return fmt.Errorf("%w: %w", chat.ErrQuota, err)
	case gemini.KindTimeout:
		return fmt.Errorf("%w: %w", chat.ErrTimeout, err)
	default:
		return err
	}
}
