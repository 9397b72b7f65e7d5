package repository

import (
	"context"
	"sync"

	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
)

// ChatMemoryRepository mantém as sessões em memória, sem persistência
type ChatMemoryRepository struct {
	mu       sync.Mutex
	sessions []chat.Session
}

// NewChatMemoryRepository cria um repositório em memória com as sessões iniciais
func NewChatMemoryRepository(initial ...chat.Session) *ChatMemoryRepository {
	return &ChatMemoryRepository{sessions: cloneSessions(initial)}
}

var _ chat.Store = (*ChatMemoryRepository)(nil)

// EnsureInitialized garante que a lista de sessões exista
func (r *ChatMemoryRepository) EnsureInitialized(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessions == nil {
		r.sessions = []chat.Session{}
	}
	return nil
}

// ReadAll retorna uma cópia de todas as sessões
func (r *ChatMemoryRepository) ReadAll(ctx context.Context) ([]chat.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return cloneSessions(r.sessions), nil
}

// WriteAll substitui todas as sessões
func (r *ChatMemoryRepository) WriteAll(ctx context.Context, sessions []chat.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = cloneSessions(sessions)
	return nil
}

// Update aplica fn sobre as sessões sob o mutex do repositório
func (r *ChatMemoryRepository) Update(ctx context.Context, fn chat.UpdateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated, err := fn(cloneSessions(r.sessions))
	if err != nil {
		return err
	}
	r.sessions = cloneSessions(updated)
	return nil
}

// cloneSessions copia as sessões e suas mensagens para evitar compartilhamento de memória
func cloneSessions(sessions []chat.Session) []chat.Session {
	out := make([]chat.Session, len(sessions))
	for i, s := range sessions {
		s.Messages = append([]chat.Message{}, s.Messages...)
		out[i] = s
	}
	return out
}
