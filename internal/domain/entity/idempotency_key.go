package entity

import "time"

// DedupWindow é a janela em que uma repetição da mesma chave devolve o
// recurso anterior em vez de reexecutar a operação.
const DedupWindow = 10 * time.Minute

// IdempotencyKey registra a primeira vez que uma chave de idempotência foi
// vista. A unicidade é pela chave isolada; o hash do payload fica guardado
// para auditoria, não para detecção de conflito.
type IdempotencyKey struct {
	Key         string
	UserID      string
	Endpoint    string
	PayloadHash string
	CreatedAt   time.Time
}
