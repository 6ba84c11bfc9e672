package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// PagarParcelaRequest body de POST /api/financeiro/titulos/:id/parcelas/:parcelaID/pagar.
type PagarParcelaRequest struct {
	Valor decimal.Decimal `json:"valor"`
}

// ReceberVendaRequest body de POST /api/financeiro/receber-venda.
type ReceberVendaRequest struct {
	TituloID  string          `json:"titulo_id"`
	ParcelaID string          `json:"parcela_id"`
	Valor     decimal.Decimal `json:"valor"`
}

// LancamentoResponse linha do razão.
type LancamentoResponse struct {
	ID            string    `json:"id"`
	Descricao     string    `json:"descricao"`
	ContaDebito   string    `json:"conta_debito"`
	ContaCredito  string    `json:"conta_credito"`
	Valor         string    `json:"valor"`
	CentroCustoID string    `json:"centro_custo_id,omitempty"`
	PedidoID      string    `json:"pedido_id,omitempty"`
	CompraID      string    `json:"compra_id,omitempty"`
	CriadoEm      time.Time `json:"criado_em"`
	Ator          string    `json:"ator"`
}

// ToLancamentoResponse converte a entidade.
func ToLancamentoResponse(e *entity.LedgerEntry) LancamentoResponse {
	resp := LancamentoResponse{
		ID:           e.ID,
		Descricao:    e.Description,
		ContaDebito:  e.DebitAccountID,
		ContaCredito: e.CreditAccountID,
		Valor:        e.Amount.StringFixed(2),
		CriadoEm:     e.CreatedAt,
		Ator:         e.Actor,
	}
	if e.CostCenterID != nil {
		resp.CentroCustoID = *e.CostCenterID
	}
	if e.PedidoID != nil {
		resp.PedidoID = *e.PedidoID
	}
	if e.CompraID != nil {
		resp.CompraID = *e.CompraID
	}
	return resp
}

// ParcelaResponse parcela de um título.
type ParcelaResponse struct {
	ID         string     `json:"id"`
	Numero     int        `json:"numero"`
	Valor      string     `json:"valor"`
	Vencimento *time.Time `json:"vencimento,omitempty"`
	PagoEm     *time.Time `json:"pago_em,omitempty"`
}

// TituloResponse título com parcelas.
type TituloResponse struct {
	ID        string            `json:"id"`
	Tipo      string            `json:"tipo"`
	PedidoID  string            `json:"pedido_id,omitempty"`
	CompraID  string            `json:"compra_id,omitempty"`
	Valor     string            `json:"valor"`
	ValorPago string            `json:"valor_pago"`
	Status    string            `json:"status"`
	CriadoEm  time.Time         `json:"criado_em"`
	Parcelas  []ParcelaResponse `json:"parcelas"`
}

// ToTituloResponse converte a entidade.
func ToTituloResponse(t *entity.Titulo) TituloResponse {
	resp := TituloResponse{
		ID:        t.ID,
		Tipo:      t.Kind,
		Valor:     t.Valor.StringFixed(2),
		ValorPago: t.ValorPago.StringFixed(2),
		Status:    t.Status,
		CriadoEm:  t.CreatedAt,
	}
	if t.PedidoID != nil {
		resp.PedidoID = *t.PedidoID
	}
	if t.CompraID != nil {
		resp.CompraID = *t.CompraID
	}
	for _, p := range t.Parcelas {
		resp.Parcelas = append(resp.Parcelas, ParcelaResponse{
			ID:         p.ID,
			Numero:     p.Numero,
			Valor:      p.Valor.StringFixed(2),
			Vencimento: p.Vencimento,
			PagoEm:     p.PagoEm,
		})
	}
	return resp
}
