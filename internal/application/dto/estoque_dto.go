package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// EntradaRequest body de POST /api/estoque/entrada.
type EntradaRequest struct {
	ProdutoID  string          `json:"produto_id"`
	DepositoID string          `json:"deposito_id,omitempty"`
	Quantidade int64           `json:"quantidade"`
	CustoUnit  decimal.Decimal `json:"custo_unitario"`
	Observacao string          `json:"observacao,omitempty"`
}

// AjusteRequest body de POST /api/estoque/ajuste. Quantidade com sinal.
type AjusteRequest struct {
	ProdutoID  string `json:"produto_id"`
	DepositoID string `json:"deposito_id,omitempty"`
	Quantidade int64  `json:"quantidade"`
	Motivo     string `json:"motivo"`
}

// TransferenciaRequest body de POST /api/estoque/transferir.
type TransferenciaRequest struct {
	ProdutoID        string `json:"produto_id"`
	DepositoOrigemID string `json:"deposito_origem_id"`
	DepositoDestID   string `json:"deposito_destino_id"`
	Quantidade       int64  `json:"quantidade"`
}

// SaldoResponse resposta de GET /api/estoque/saldo.
type SaldoResponse struct {
	ProdutoID  string `json:"produto_id"`
	DepositoID string `json:"deposito_id,omitempty"`
	Saldo      int64  `json:"saldo"`
}

// MovimentoResponse linha de GET /api/estoque/historico.
type MovimentoResponse struct {
	ID         string    `json:"id"`
	ProdutoID  string    `json:"produto_id"`
	DepositoID string    `json:"deposito_id,omitempty"`
	Tipo       string    `json:"tipo"`
	Quantidade int64     `json:"quantidade"`
	CustoUnit  string    `json:"custo_unitario"`
	Origem     string    `json:"origem"`
	Motivo     string    `json:"motivo,omitempty"`
	CriadoEm   time.Time `json:"criado_em"`
	CriadoPor  string    `json:"criado_por"`
}

// ToMovimentoResponse converte a entidade; dinheiro arredondado a 2 casas só aqui.
func ToMovimentoResponse(m *entity.StockMovement) MovimentoResponse {
	return MovimentoResponse{
		ID:         m.ID,
		ProdutoID:  m.ProductID,
		DepositoID: m.WarehouseID,
		Tipo:       m.Kind,
		Quantidade: m.Quantity,
		CustoUnit:  m.UnitCost.StringFixed(2),
		Origem:     m.Origin,
		Motivo:     m.Reason,
		CriadoEm:   m.CreatedAt,
		CriadoPor:  m.CreatedBy,
	}
}
