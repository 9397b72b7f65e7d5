package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/gemini-chat/internal/domain/chat"
	"github.com/hugohenrick/gemini-chat/internal/infrastructure/database"
	"github.com/hugohenrick/gemini-chat/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSessions() []chat.Session {
	at := time.Date(2024, 5, 1, 10, 0, 0, 123000000, time.UTC)
	first := chat.Session{
		ID:        "a1",
		Title:     "Hello",
		CreatedAt: at,
		Messages: []chat.Message{
			{Role: chat.RoleUser, Content: "Hello", Timestamp: at},
			{Role: chat.RoleAssistant, Content: "Hi! How can I help?", Timestamp: at},
		},
	}
	second := chat.Session{
		ID:        "b2",
		Title:     "Segunda conversa",
		CreatedAt: at.Add(time.Hour),
		Messages:  []chat.Message{},
	}
	return []chat.Session{first, second}
}

// runStoreContract valida o comportamento comum a todas as implementações de chat.Store
func runStoreContract(t *testing.T, newStore func(t *testing.T) chat.Store) {
	t.Run("inicializa vazio", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.EnsureInitialized(ctx))
		require.NoError(t, store.EnsureInitialized(ctx))

		sessions, err := store.ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})

	t.Run("round trip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.EnsureInitialized(ctx))

		in := sampleSessions()
		require.NoError(t, store.WriteAll(ctx, in))

		out, err := store.ReadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("update com erro não grava", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.EnsureInitialized(ctx))
		require.NoError(t, store.WriteAll(ctx, sampleSessions()))

		boom := errors.New("boom")
		err := store.Update(ctx, func(sessions []chat.Session) ([]chat.Session, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)

		out, err := store.ReadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("updates concorrentes não perdem gravações", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.EnsureInitialized(ctx))
		require.NoError(t, store.WriteAll(ctx, sampleSessions()[:1]))

		const writers = 10
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.Update(ctx, func(sessions []chat.Session) ([]chat.Session, error) {
					sessions[0].AppendExchange("q", "a", chat.Now())
					return sessions, nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		out, err := store.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Len(t, out[0].Messages, 2+writers*2)
	})
}

func TestChatMemoryRepository(t *testing.T) {
	runStoreContract(t, func(t *testing.T) chat.Store {
		return NewChatMemoryRepository()
	})
}

func TestChatMemoryRepositoryDoesNotShareMemory(t *testing.T) {
	ctx := context.Background()
	store := NewChatMemoryRepository(sampleSessions()...)

	sessions, err := store.ReadAll(ctx)
	require.NoError(t, err)
	sessions[0].Messages[0].Content = "alterado"

	again, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello", again[0].Messages[0].Content)
}

func TestChatFileRepository(t *testing.T) {
	runStoreContract(t, func(t *testing.T) chat.Store {
		return NewChatFileRepository(filepath.Join(t.TempDir(), "chats.json"), logger.Discard())
	})
}

func TestChatFileRepositoryMaterializesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "chats.json")
	store := NewChatFileRepository(path, logger.Discard())

	sessions, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestChatFileRepositoryPrettyPrints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chats.json")
	store := NewChatFileRepository(path, logger.Discard())

	require.NoError(t, store.WriteAll(context.Background(), sampleSessions()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n    \"id\": \"a1\",")
	assert.Contains(t, string(data), "\"timestamp\": \"2024-05-01T10:00:00.123Z\"")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "arquivos temporários não devem sobrar")
}

func TestChatFileRepositoryReadsLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chats.json")
	legacy := `[
  {
    "id": "k3j4h5g6",
    "title": "Salom",
    "messages": [
      {"role": "user", "content": "Salom", "timestamp": "2024-05-01T10:00:00.000Z"},
      {"role": "assistant", "content": "Assalomu alaykum!", "timestamp": "2024-05-01T10:00:01.500Z"}
    ],
    "createdAt": "2024-05-01T10:00:01.501Z"
  }
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	sessions, err := NewChatFileRepository(path, logger.Discard()).ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "k3j4h5g6", sessions[0].ID)
	require.Len(t, sessions[0].Messages, 2)
	assert.Equal(t, chat.RoleAssistant, sessions[0].Messages[1].Role)
	assert.Equal(t, 1500*time.Millisecond, sessions[0].Messages[1].Timestamp.Sub(sessions[0].Messages[0].Timestamp))
}

func TestChatFileRepositoryNullDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chats.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	sessions, err := NewChatFileRepository(path, logger.Discard()).ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestChatFileRepositoryCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chats.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))
	store := NewChatFileRepository(path, logger.Discard())

	_, err := store.ReadAll(context.Background())
	assert.ErrorIs(t, err, chat.ErrPersistence)

	err = store.Update(context.Background(), func(sessions []chat.Session) ([]chat.Session, error) {
		return []chat.Session{}, nil
	})
	assert.ErrorIs(t, err, chat.ErrPersistence)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{oops", string(data), "documento corrompido não deve ser sobrescrito")
}

func TestChatFileRepositoryWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "chats.json")
	store := NewChatFileRepository(path, logger.Discard())

	err := store.WriteAll(context.Background(), sampleSessions())
	assert.ErrorIs(t, err, chat.ErrPersistence)
}

func TestChatPostgresRepository(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL não definida")
	}
	require.NoError(t, database.RunMigrations(url))

	pool, err := database.NewPostgresPool(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	runStoreContract(t, func(t *testing.T) chat.Store {
		store := NewChatPostgresRepository(pool, logger.Discard())
		require.NoError(t, store.WriteAll(context.Background(), nil))
		return store
	})
}
