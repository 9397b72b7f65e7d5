package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hugohenrick/gemini-chat/pkg/logger"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"
)

// Papéis aceitos pela API
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part é um trecho de conteúdo
type Part struct {
	Text string `json:"text"`
}

// Content é um turno da conversa enviado ou recebido da API
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig contém os parâmetros de geração
type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// DefaultGenerationConfig retorna os parâmetros usados pelo chat
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     0.7,
		TopP:            0.95,
		TopK:            64,
		MaxOutputTokens: 8192,
	}
}

type generateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Client é o cliente HTTP da API generativa do Google
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	generation GenerationConfig
	httpClient *http.Client
	logger     logger.Logger
}

// Option configura o Client
type Option func(*Client)

// WithBaseURL altera o endereço base da API
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithModel altera o modelo usado
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithHTTPClient altera o http.Client usado nas chamadas
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithGenerationConfig altera os parâmetros de geração
func WithGenerationConfig(cfg GenerationConfig) Option {
	return func(c *Client) {
		c.generation = cfg
	}
}

// NewClient cria um novo cliente Gemini
func NewClient(apiKey string, logger logger.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("chave da API Gemini não informada")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		generation: DefaultGenerationConfig(),
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model retorna o nome do modelo configurado
func (c *Client) Model() string {
	return c.model
}

// GenerateContent envia uma única mensagem, sem histórico
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []Content{UserContent(prompt)})
}

// SendMessage continua uma conversa a partir do histórico informado
func (c *Client) SendMessage(ctx context.Context, history []Content, prompt string) (string, error) {
	contents := make([]Content, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, UserContent(prompt))
	return c.generate(ctx, contents)
}

// UserContent monta um turno do usuário com um único texto
func UserContent(text string) Content {
	return Content{Role: RoleUser, Parts: []Part{{Text: text}}}
}

func (c *Client) generate(ctx context.Context, contents []Content) (string, error) {
	reqBody := generateRequest{
		Contents:         contents,
		GenerationConfig: c.generation,
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))

	c.logger.Debug("Enviando requisição para API Gemini",
		"model", c.model,
		"numContents", len(contents))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("erro ao criar requisição HTTP: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &Error{Kind: KindTimeout, Message: "Request timeout", Err: err}
		}
		return "", &Error{Kind: KindUpstream, Message: "erro na comunicação com a API Gemini", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &Error{Kind: KindTimeout, Message: "Request timeout", Err: err}
		}
		return "", &Error{Kind: KindUpstream, Message: "erro ao ler resposta da API Gemini", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := parseError(resp.StatusCode, respBody)
		c.logger.Error("API Gemini retornou erro",
			"status", resp.StatusCode,
			"kind", apiErr.Kind,
			"message", apiErr.Message)
		return "", apiErr
	}

	var apiResp generateResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", &Error{Kind: KindUpstream, StatusCode: resp.StatusCode, Message: "erro ao interpretar resposta da API Gemini", Err: err}
	}

	var sb strings.Builder
	if len(apiResp.Candidates) > 0 {
		for _, part := range apiResp.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}

	c.logger.Debug("Resposta gerada",
		"model", c.model,
		"prompt_tokens", apiResp.UsageMetadata.PromptTokenCount,
		"candidate_tokens", apiResp.UsageMetadata.CandidatesTokenCount,
		"block_reason", apiResp.PromptFeedback.BlockReason)

	return sb.String(), nil
}
