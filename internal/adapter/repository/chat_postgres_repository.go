package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// chatStoreLockKey identifica o advisory lock que serializa as gravações
const chatStoreLockKey int64 = 0x63686174

type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// ChatPostgresRepository guarda as sessões nas tabelas chats e chat_messages
type ChatPostgresRepository struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewChatPostgresRepository cria um repositório de chats baseado em PostgreSQL
func NewChatPostgresRepository(db *pgxpool.Pool, logger logger.Logger) *ChatPostgresRepository {
	return &ChatPostgresRepository{
		db:     db,
		logger: logger,
	}
}

var _ chat.Store = (*ChatPostgresRepository)(nil)

// EnsureInitialized verifica se as tabelas foram criadas pelas migrações
func (r *ChatPostgresRepository) EnsureInitialized(ctx context.Context) error {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT to_regclass('chats') IS NOT NULL AND to_regclass('chat_messages') IS NOT NULL").Scan(&exists)
	if err != nil {
		return fmt.Errorf("%w: erro ao verificar tabelas: %w", chat.ErrPersistence, err)
	}
	if !exists {
		return fmt.Errorf("%w: tabelas de chat não encontradas, execute as migrações", chat.ErrPersistence)
	}
	return nil
}

// ReadAll retorna todas as sessões com suas mensagens, na ordem de inserção
func (r *ChatPostgresRepository) ReadAll(ctx context.Context) ([]chat.Session, error) {
	return readSessions(ctx, r.db)
}

// WriteAll substitui todas as sessões armazenadas
func (r *ChatPostgresRepository) WriteAll(ctx context.Context, sessions []chat.Session) error {
	return r.Update(ctx, func([]chat.Session) ([]chat.Session, error) {
		return sessions, nil
	})
}

// Update lê e grava todas as sessões dentro de uma transação protegida por advisory lock
func (r *ChatPostgresRepository) Update(ctx context.Context, fn chat.UpdateFunc) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: erro ao iniciar transação: %w", chat.ErrPersistence, err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			r.logger.Error("erro ao fazer rollback", "error", rbErr)
		}
	}()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", chatStoreLockKey); err != nil {
		return fmt.Errorf("%w: erro ao obter lock: %w", chat.ErrPersistence, err)
	}

	sessions, err := readSessions(ctx, tx)
	if err != nil {
		return err
	}

	updated, err := fn(sessions)
	if err != nil {
		return err
	}

	if err := writeSessions(ctx, tx, updated); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: erro ao fazer commit: %w", chat.ErrPersistence, err)
	}
	return nil
}

func readSessions(ctx context.Context, q pgQuerier) ([]chat.Session, error) {
	rows, err := q.Query(ctx, "SELECT id, title, created_at FROM chats ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao buscar chats: %w", chat.ErrPersistence, err)
	}

	sessions := []chat.Session{}
	index := map[string]int{}
	for rows.Next() {
		s := chat.Session{Messages: []chat.Message{}}
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: erro ao ler chat: %w", chat.ErrPersistence, err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		index[s.ID] = len(sessions)
		sessions = append(sessions, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: erro ao ler linhas: %w", chat.ErrPersistence, err)
	}

	rows, err = q.Query(ctx, "SELECT chat_id, role, content, created_at FROM chat_messages ORDER BY chat_id, seq")
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao buscar mensagens: %w", chat.ErrPersistence, err)
	}
	defer rows.Close()

	for rows.Next() {
		var chatID string
		var msg chat.Message
		if err := rows.Scan(&chatID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: erro ao ler mensagem: %w", chat.ErrPersistence, err)
		}
		msg.Timestamp = msg.Timestamp.UTC()
		if i, ok := index[chatID]; ok {
			sessions[i].Messages = append(sessions[i].Messages, msg)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: erro ao ler linhas: %w", chat.ErrPersistence, err)
	}

	return sessions, nil
}

func writeSessions(ctx context.Context, q pgQuerier, sessions []chat.Session) error {
	if _, err := q.Exec(ctx, "DELETE FROM chats"); err != nil {
		return fmt.Errorf("%w: erro ao limpar chats: %w", chat.ErrPersistence, err)
	}

	chatRows := make([][]any, 0, len(sessions))
	var messageRows [][]any
	for pos, s := range sessions {
		chatRows = append(chatRows, []any{s.ID, int64(pos), s.Title, s.CreatedAt})
		for seq, msg := range s.Messages {
			messageRows = append(messageRows, []any{s.ID, int32(seq), msg.Role, msg.Content, msg.Timestamp})
		}
	}

	if _, err := q.CopyFrom(ctx, pgx.Identifier{"chats"}, []string{"id", "position", "title", "created_at"}, pgx.CopyFromRows(chatRows)); err != nil {
		return fmt.Errorf("%w: erro ao gravar chats: %w", chat.ErrPersistence, err)
	}
	if _, err := q.CopyFrom(ctx, pgx.Identifier{"chat_messages"}, []string{"chat_id", "seq", "role", "content", "created_at"}, pgx.CopyFromRows(messageRows)); err != nil {
		return fmt.Errorf("%w: erro ao gravar mensagens: %w", chat.ErrPersistence, err)
	}
	return nil
}
