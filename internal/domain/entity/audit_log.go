package entity

import "time"

// AuditLog registra de forma imutável toda operação que muda estado.
type AuditLog struct {
	ID        string
	Actor     string
	Action    string
	Entity    string
	EntityID  string
	Details   string // JSON livre com o contexto da operação
	CreatedAt time.Time
}
