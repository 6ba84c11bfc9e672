package postgres

import (
	"context"
	"fmt"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo trilha de auditoria sobre PostgreSQL, somente acréscimo.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste um registro de auditoria.
func (r *AuditLogRepo) Create(l *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, actor, action, entity, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.Actor, l.Action, l.Entity, l.EntityID, l.Details, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List pagina a trilha, mais recente primeiro.
func (r *AuditLogRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, actor, action, entity, entity_id, details, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.Actor, &l.Action, &l.Entity, &l.EntityID, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
