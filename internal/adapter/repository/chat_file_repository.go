package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
)

// ChatFileRepository persiste todas as sessões em um único documento JSON
type ChatFileRepository struct {
	path   string
	logger logger.Logger
	mu     sync.Mutex
}

// NewChatFileRepository cria um repositório de chats baseado em arquivo
func NewChatFileRepository(path string, logger logger.Logger) *ChatFileRepository {
	return &ChatFileRepository{
		path:   path,
		logger: logger,
	}
}

var _ chat.Store = (*ChatFileRepository)(nil)

// Path retorna o caminho do documento
func (r *ChatFileRepository) Path() string {
	return r.path
}

// EnsureInitialized cria o documento com uma lista vazia caso ele não exista
func (r *ChatFileRepository) EnsureInitialized(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ensureLocked()
}

// ReadAll carrega todas as sessões do documento
func (r *ChatFileRepository) ReadAll(ctx context.Context) ([]chat.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLocked(); err != nil {
		return nil, err
	}
	return r.readLocked()
}

// WriteAll substitui o documento pelas sessões informadas
func (r *ChatFileRepository) WriteAll(ctx context.Context, sessions []chat.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeLocked(sessions)
}

// Update executa um ciclo ler-modificar-gravar sob o mutex do repositório
func (r *ChatFileRepository) Update(ctx context.Context, fn chat.UpdateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLocked(); err != nil {
		return err
	}

	sessions, err := r.readLocked()
	if err != nil {
		return err
	}

	updated, err := fn(sessions)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: gravação cancelada: %w", chat.ErrPersistence, err)
	}

	return r.writeLocked(updated)
}

func (r *ChatFileRepository) ensureLocked() error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: erro ao acessar %s: %w", chat.ErrPersistence, r.path, err)
	}

	r.logger.Info("documento de chats não existe, criando um novo", "path", r.path)

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: erro ao criar diretório %s: %w", chat.ErrPersistence, dir, err)
		}
	}
	return r.writeLocked([]chat.Session{})
}

func (r *ChatFileRepository) readLocked() ([]chat.Session, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Error("erro ao ler documento de chats", "path", r.path, "error", err)
		return nil, fmt.Errorf("%w: erro ao ler %s: %w", chat.ErrPersistence, r.path, err)
	}

	var sessions []chat.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		r.logger.Error("documento de chats corrompido", "path", r.path, "error", err)
		return nil, fmt.Errorf("%w: erro ao interpretar %s: %w", chat.ErrPersistence, r.path, err)
	}

	if sessions == nil {
		sessions = []chat.Session{}
	}
	return sessions, nil
}

// writeLocked grava em um arquivo temporário e renomeia, para que nenhum
// leitor veja o documento pela metade
func (r *ChatFileRepository) writeLocked(sessions []chat.Session) error {
	if sessions == nil {
		sessions = []chat.Session{}
	}

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: erro ao serializar sessões: %w", chat.ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		r.logger.Error("erro ao criar arquivo temporário", "path", r.path, "error", err)
		return fmt.Errorf("%w: erro ao criar arquivo temporário: %w", chat.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: erro ao gravar %s: %w", chat.ErrPersistence, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: erro ao sincronizar %s: %w", chat.ErrPersistence, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: erro ao fechar %s: %w", chat.ErrPersistence, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: erro ao ajustar permissões de %s: %w", chat.ErrPersistence, tmpName, err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		r.logger.Error("erro ao gravar documento de chats", "path", r.path, "error", err)
		return fmt.Errorf("%w: erro ao gravar %s: %w", chat.ErrPersistence, r.path, err)
	}

	r.logger.Debug("documento de chats gravado", "path", r.path, "sessions", len(sessions))
	return nil
}
