package dto

import (
	"time"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// AuditLogResponse linha da trilha de auditoria.
type AuditLogResponse struct {
	ID       string    `json:"id"`
	Ator     string    `json:"ator"`
	Acao     string    `json:"acao"`
	Entidade string    `json:"entidade"`
	AlvoID   string    `json:"alvo_id"`
	Detalhes string    `json:"detalhes,omitempty"`
	CriadoEm time.Time `json:"criado_em"`
}

// ToAuditLogResponse converte a entidade.
func ToAuditLogResponse(l *entity.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:       l.ID,
		Ator:     l.Actor,
		Acao:     l.Action,
		Entidade: l.Entity,
		AlvoID:   l.EntityID,
		Detalhes: l.Details,
		CriadoEm: l.CreatedAt,
	}
}

// Divergencia é um achado da auditoria de consistência.
type Divergencia struct {
	Tipo      string `json:"tipo"` // SALDO | TOTAL_COMPRA | TITULO
	EntidadeID string `json:"entidade_id"`
	Esperado  string `json:"esperado"`
	Encontrado string `json:"encontrado"`
}

// ConsistenciaResponse resultado de GET /api/auditoria/consistencia.
type ConsistenciaResponse struct {
	VerificadoEm time.Time     `json:"verificado_em"`
	Produtos     int           `json:"produtos_verificados"`
	Compras      int           `json:"compras_verificadas"`
	Titulos      int           `json:"titulos_verificados"`
	Divergencias []Divergencia `json:"divergencias"`
}
