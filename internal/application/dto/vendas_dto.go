package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// CriarPedidoRequest body de POST /api/pedidos.
type CriarPedidoRequest struct {
	Comprador       string             `json:"comprador"`
	DepositoID      string             `json:"deposito_id,omitempty"`
	FormaPagamento  string             `json:"forma_pagamento"` // AVISTA | PRAZO
	CentroCustoCode string             `json:"centro_custo,omitempty"`
	Itens           []ItemPedidoInput  `json:"itens"`
	Parcelas        []ParcelaInput     `json:"parcelas,omitempty"` // só para PRAZO; vazio = parcela única
}

// ItemPedidoInput linha do pedido.
type ItemPedidoInput struct {
	ProdutoID  string `json:"produto_id"`
	Quantidade int64  `json:"quantidade"`
}

// ParcelaInput parcela informada pelo chamador; a soma deve bater com o total.
type ParcelaInput struct {
	Valor      decimal.Decimal `json:"valor"`
	Vencimento *time.Time      `json:"vencimento,omitempty"`
}

// AtualizarStatusRequest body de POST /api/pedidos/:id/status.
type AtualizarStatusRequest struct {
	Status string `json:"status"`
}

// ItemPedidoResponse linha do pedido na resposta.
type ItemPedidoResponse struct {
	ProdutoID     string `json:"produto_id"`
	Quantidade    int64  `json:"quantidade"`
	PrecoUnitario string `json:"preco_unitario"`
	Subtotal      string `json:"subtotal"`
}

// PedidoResponse resposta de pedido.
type PedidoResponse struct {
	ID             string               `json:"id"`
	Comprador      string               `json:"comprador"`
	Status         string               `json:"status"`
	FormaPagamento string               `json:"forma_pagamento"`
	Total          string               `json:"total"`
	CentroCustoID  string               `json:"centro_custo_id,omitempty"`
	CriadoEm       time.Time            `json:"criado_em"`
	Itens          []ItemPedidoResponse `json:"itens"`
}

// ToPedidoResponse converte a entidade; valores monetários com 2 casas.
func ToPedidoResponse(p *entity.Pedido) PedidoResponse {
	resp := PedidoResponse{
		ID:             p.ID,
		Comprador:      p.Buyer,
		Status:         p.Status,
		FormaPagamento: p.PaymentKind,
		Total:          p.Total.StringFixed(2),
		CriadoEm:       p.CreatedAt,
	}
	if p.CostCenterID != nil {
		resp.CentroCustoID = *p.CostCenterID
	}
	for _, it := range p.Items {
		resp.Itens = append(resp.Itens, ItemPedidoResponse{
			ProdutoID:     it.ProductID,
			Quantidade:    it.Quantity,
			PrecoUnitario: it.UnitPrice.StringFixed(2),
			Subtotal:      it.Subtotal().StringFixed(2),
		})
	}
	return resp
}
