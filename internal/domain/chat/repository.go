package chat

import (
	"context"
)

// UpdateFunc recebe o conteúdo atual do store e retorna o novo conteúdo a ser gravado
type UpdateFunc func(sessions []Session) ([]Session, error)

// Store define a interface do armazenamento de sessões de chat.
// O conteúdo é sempre lido e gravado por inteiro, na ordem de criação.
type Store interface {
	// EnsureInitialized garante que o documento exista, criando-o vazio se necessário
	EnsureInitialized(ctx context.Context) error

	// ReadAll carrega todas as sessões
	ReadAll(ctx context.Context) ([]Session, error)

	// WriteAll substitui todo o conteúdo pelas sessões informadas
	WriteAll(ctx context.Context, sessions []Session) error

	// Update executa um ciclo ler-modificar-gravar com exclusão mútua.
	// Se fn retornar erro nada é gravado e o erro é devolvido ao chamador.
	Update(ctx context.Context, fn UpdateFunc) error
}
