package gemini

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifica as falhas da API
type Kind string

const (
	KindAuth     Kind = "auth"
	KindQuota    Kind = "quota"
	KindTimeout  Kind = "timeout"
	KindUpstream Kind = "upstream"
)

// Error é o erro estruturado devolvido pelo Client
type Error struct {
	Kind       Kind
	StatusCode int
	Status     string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gemini %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("gemini %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("gemini %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

// parseError converte a resposta de erro da API em um *Error
func parseError(statusCode int, body []byte) *Error {
	apiErr := &Error{
		Kind:       KindUpstream,
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}

	var env errorEnvelope
	var reasons []string
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		apiErr.Message = env.Error.Message
		apiErr.Status = env.Error.Status
		for _, d := range env.Error.Details {
			reasons = append(reasons, d.Reason)
		}
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		apiErr.Kind = KindAuth
	case contains(reasons, "API_KEY_INVALID") || strings.Contains(apiErr.Message, "API key"):
		apiErr.Kind = KindAuth
	case statusCode == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
		apiErr.Kind = KindQuota
	case statusCode == http.StatusGatewayTimeout || apiErr.Status == "DEADLINE_EXCEEDED":
		apiErr.Kind = KindTimeout
	}
	return apiErr
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
