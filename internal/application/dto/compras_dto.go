package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// CriarCompraRequest body de POST /api/compras.
type CriarCompraRequest struct {
	FornecedorID    string            `json:"fornecedor_id"`
	DepositoID      string            `json:"deposito_id,omitempty"`
	CentroCustoCode string            `json:"centro_custo,omitempty"`
	Itens           []ItemCompraInput `json:"itens"`
}

// ItemCompraInput linha da ordem de compra.
type ItemCompraInput struct {
	ProdutoID  string          `json:"produto_id"`
	Quantidade int64           `json:"quantidade"`
	CustoUnit  decimal.Decimal `json:"custo_unitario"`
}

// PagarCompraRequest body de POST /api/compras/:id/pagar.
type PagarCompraRequest struct {
	Valor decimal.Decimal `json:"valor"`
}

// ItemCompraResponse linha da ordem na resposta.
type ItemCompraResponse struct {
	ProdutoID  string `json:"produto_id"`
	Quantidade int64  `json:"quantidade"`
	CustoUnit  string `json:"custo_unitario"`
	Subtotal   string `json:"subtotal"`
}

// CompraResponse resposta de ordem de compra.
type CompraResponse struct {
	ID            string               `json:"id"`
	FornecedorID  string               `json:"fornecedor_id"`
	Status        string               `json:"status"`
	Total         string               `json:"total"`
	ValorPago     string               `json:"valor_pago"`
	DepositoID    string               `json:"deposito_id,omitempty"`
	CentroCustoID string               `json:"centro_custo_id,omitempty"`
	CriadoEm      time.Time            `json:"criado_em"`
	RecebidoEm    *time.Time           `json:"recebido_em,omitempty"`
	PagoEm        *time.Time           `json:"pago_em,omitempty"`
	Itens         []ItemCompraResponse `json:"itens"`
}

// ToCompraResponse converte a entidade; valores monetários com 2 casas.
func ToCompraResponse(o *entity.PurchaseOrder) CompraResponse {
	resp := CompraResponse{
		ID:           o.ID,
		FornecedorID: o.FornecedorID,
		Status:       o.Status,
		Total:        o.Total.StringFixed(2),
		ValorPago:    o.AmountPaid.StringFixed(2),
		DepositoID:   o.WarehouseID,
		CriadoEm:     o.CreatedAt,
		RecebidoEm:   o.ReceivedAt,
		PagoEm:       o.PaidAt,
	}
	if o.CostCenterID != nil {
		resp.CentroCustoID = *o.CostCenterID
	}
	for _, it := range o.Items {
		resp.Itens = append(resp.Itens, ItemCompraResponse{
			ProdutoID:  it.ProductID,
			Quantidade: it.Quantity,
			CustoUnit:  it.UnitCost.StringFixed(2),
			Subtotal:   it.Subtotal().StringFixed(2),
		})
	}
	return resp
}
