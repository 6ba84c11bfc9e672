package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

var _ repository.IdempotencyKeyRepository = (*IdempotencyKeyRepo)(nil)

// IdempotencyKeyRepo guarda de deduplicação sobre PostgreSQL.
type IdempotencyKeyRepo struct {
	q Querier
}

// NewIdempotencyKeyRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewIdempotencyKeyRepository(q Querier) *IdempotencyKeyRepo {
	return &IdempotencyKeyRepo{q: q}
}

// Insert tenta gravar a chave. A unicidade da primary key é a arbitragem da
// corrida: quem perde recebe false sem erro.
func (r *IdempotencyKeyRepo) Insert(k *entity.IdempotencyKey) (bool, error) {
	query := `
		INSERT INTO idempotency_keys (key, user_id, endpoint, payload_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		k.Key, k.UserID, k.Endpoint, k.PayloadHash, k.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert idempotency key: %w", err)
	}
	return true, nil
}

// Get obtém o registro da chave.
func (r *IdempotencyKeyRepo) Get(key string) (*entity.IdempotencyKey, error) {
	query := `
		SELECT key, user_id, endpoint, payload_hash, created_at
		FROM idempotency_keys WHERE key = $1`
	var k entity.IdempotencyKey
	err := r.q.QueryRow(context.Background(), query, key).Scan(
		&k.Key, &k.UserID, &k.Endpoint, &k.PayloadHash, &k.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	return &k, nil
}
