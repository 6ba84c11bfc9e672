package repository

import "github.com/gestorsoft/gestor-api/internal/domain/entity"

// AuditLogRepository trilha imutável de auditoria.
type AuditLogRepository interface {
	Create(l *entity.AuditLog) error
	List(limit, offset int) ([]*entity.AuditLog, error)
}
