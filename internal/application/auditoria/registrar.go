package auditoria

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/gestorsoft/gestor-api/internal/application/ports"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// RegistrarInTx grava uma linha de auditoria na mesma transação do workflow.
// details é serializado como JSON; falha de serialização não derruba a
// operação de negócio, grava o log sem detalhes.
func RegistrarInTx(r ports.TxRepos, actor, action, entityKind, entityID string, details any, now time.Time) error {
	var raw string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			raw = string(b)
		}
	}
	return r.AuditLogs.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		Actor:     actor,
		Action:    action,
		Entity:    entityKind,
		EntityID:  entityID,
		Details:   raw,
		CreatedAt: now,
	})
}
