package repository

import "github.com/gestorsoft/gestor-api/internal/domain/entity"

// IdempotencyKeyRepository guarda de deduplicação de requisições repetidas.
type IdempotencyKeyRepository interface {
	// Insert tenta gravar a chave de forma atômica. Devolve false quando a
	// chave já existia (violação de unicidade), que é o caminho "não nova".
	Insert(k *entity.IdempotencyKey) (bool, error)
	Get(key string) (*entity.IdempotencyKey, error)
}
