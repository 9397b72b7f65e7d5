package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
	"github.com/hugohenrick/gemini-chat/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeminiClient struct {
	history []gemini.Content
	prompt  string
	reply   string
	err     error
}

func (f *fakeGeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeGeminiClient) SendMessage(ctx context.Context, history []gemini.Content, prompt string) (string, error) {
	f.history = history
	f.prompt = prompt
	return f.reply, f.err
}

func TestContinueMapsTurns(t *testing.T) {
	client := &fakeGeminiClient{reply: "ok"}
	g := NewGeminiGenerator(client)

	text, err := g.Continue(context.Background(), []chat.Turn{
		{Role: chat.TurnRoleUser, Text: "a"},
		{Role: chat.TurnRoleModel, Text: "b"},
	}, "c")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, "c", client.prompt)
	assert.Equal(t, []gemini.Content{
		{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "a"}}},
		{Role: gemini.RoleModel, Parts: []gemini.Part{{Text: "b"}}},
	}, client.history)
}

func TestTranslateError(t *testing.T) {
	cases := map[gemini.Kind]error{
		gemini.KindAuth:    chat.ErrAuth,
		gemini.KindQuota:   chat.ErrQuota,
		gemini.KindTimeout: chat.ErrTimeout,
	}
	for kind, want := range cases {
		g := NewGeminiGenerator(&fakeGeminiClient{err: &gemini.Error{Kind: kind, Message: "x"}})
		_, err := g.Generate(context.Background(), "x")
		assert.ErrorIs(t, err, want, string(kind))
	}

	upstream := &gemini.Error{Kind: gemini.KindUpstream, StatusCode: 500, Message: "internal"}
	g := NewGeminiGenerator(&fakeGeminiClient{err: upstream})
	_, err := g.Generate(context.Background(), "x")
	assert.Same(t, upstream, err)

	plain := errors.New("dial tcp: connection refused")
	g = NewGeminiGenerator(&fakeGeminiClient{err: plain})
	_, err = g.Generate(context.Background(), "x")
	assert.Equal(t, plain, err)
}
