package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de um pedido de venda. As transições são meramente informativas;
// o workflow de criação não as avança.
const (
	PedidoPending   = "PENDING"
	PedidoPreparing = "PREPARING"
	PedidoShipped   = "SHIPPED"
	PedidoDelivered = "DELIVERED"
)

// Formas de pagamento de um pedido.
const (
	PagamentoAVista = "AVISTA" // caixa
	PagamentoPrazo  = "PRAZO"  // gera título a receber
)

// Pedido representa um pedido de venda.
type Pedido struct {
	ID           string
	Buyer        string
	Status       string
	Total        decimal.Decimal
	PaymentKind  string
	WarehouseID  string
	CostCenterID *string
	CreatedAt    time.Time
	CreatedBy    string
	Items        []ItemPedido
}

// ItemPedido é uma linha do pedido. UnitPrice é a foto do preço no momento da
// criação e UnitCost a foto do custo médio usada no CMV; alterações posteriores
// no produto não os afetam.
type ItemPedido struct {
	ID        string
	PedidoID  string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
}

// Subtotal devolve quantidade × preço unitário congelado.
func (i ItemPedido) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitPrice)
}

// ValidStatusTransition indica se a transição informativa de status é permitida.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case PedidoPending:
		return to == PedidoPreparing
	case PedidoPreparing:
		return to == PedidoShipped
	case PedidoShipped:
		return to == PedidoDelivered
	}
	return false
}
