package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento de estoque.
const (
	MovementIN     = "IN"     // entrada
	MovementOUT    = "OUT"    // saída
	MovementADJUST = "ADJUST" // ajuste com sinal
)

// StockMovement é um registro imutável do livro de estoque.
// Quantity carrega o sinal: entradas positivas, saídas negativas, ajustes como vierem.
// Nunca é atualizado nem apagado; estorno é um movimento compensatório novo.
// Origin correlaciona movimentos da mesma operação (recebimento, pedido, transferência).
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string // vazio = sem depósito
	Kind        string
	Quantity    int64
	UnitCost    decimal.Decimal // custo unitário no momento do movimento
	Origin      string
	Reason      string  // motivo do ajuste, quando Kind = ADJUST
	PedidoID    *string // pedido de venda vinculado, quando houver
	CreatedAt   time.Time
	CreatedBy   string
}
