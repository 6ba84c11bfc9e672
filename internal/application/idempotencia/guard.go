package idempotencia

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

// Guard deduplica requisições mutantes repetidas pelo cliente, pela chave
// Idempotency-Key mais o hash do payload. A unicidade é pela chave isolada:
// o hash fica guardado para auditoria, não para detectar conflito. O guard só
// sinaliza "não reexecute"; quem chama reencontra o recurso anterior dentro da
// janela e, se não encontrar, segue adiante e executa como operação nova.
type Guard struct {
	keys repository.IdempotencyKeyRepository
}

// NewGuard constrói o guard.
func NewGuard(keys repository.IdempotencyKeyRepository) *Guard {
	return &Guard{keys: keys}
}

// CheckAndRegister registra a chave na primeira vez que é vista.
// Chave vazia desliga a idempotência para a chamada (isNew = true, sem registro).
// O insert atômico com unicidade pela chave é a única arbitragem: quem perde a
// corrida recebe isNew = false, independente do hash bater ou não.
func (g *Guard) CheckAndRegister(ctx context.Context, key, userID, endpoint string, payload any) (*entity.IdempotencyKey, bool, error) {
	_ = ctx
	if key == "" {
		return nil, true, nil
	}

	hash, err := payloadHash(payload)
	if err != nil {
		return nil, false, fmt.Errorf("hash do payload: %w", err)
	}

	rec := &entity.IdempotencyKey{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		PayloadHash: hash,
		CreatedAt:   time.Now(),
	}
	inserted, err := g.keys.Insert(rec)
	if err != nil {
		return nil, false, err
	}
	if inserted {
		return rec, true, nil
	}

	existing, err := g.keys.Get(key)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// payloadHash calcula SHA-256 da forma canônica (JSON) do payload.
func payloadHash(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
