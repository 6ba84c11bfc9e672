package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de uma ordem de compra.
const (
	PurchasePending   = "PENDING"
	PurchaseReceived  = "RECEIVED"
	PurchasePaid      = "PAID"
	PurchaseCancelled = "CANCELLED"
)

// PurchaseOrder representa uma ordem de compra a um fornecedor.
// Total deve ser sempre igual à soma dos subtotais dos itens.
type PurchaseOrder struct {
	ID           string
	FornecedorID string
	Status       string
	Total        decimal.Decimal
	AmountPaid   decimal.Decimal
	WarehouseID  string
	CostCenterID *string
	CreatedAt    time.Time
	CreatedBy    string
	ReceivedAt   *time.Time
	PaidAt       *time.Time
	Items        []PurchaseItem
}

// PurchaseItem é uma linha da ordem de compra.
type PurchaseItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
}

// Subtotal devolve quantidade × custo unitário.
func (i PurchaseItem) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitCost)
}

// Outstanding devolve o saldo devedor (total − pago).
func (o *PurchaseOrder) Outstanding() decimal.Decimal {
	return o.Total.Sub(o.AmountPaid)
}

// ComputeTotal soma os subtotais dos itens.
func (o *PurchaseOrder) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
