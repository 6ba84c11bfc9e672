package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReceipt registra o evento físico de recebimento de mercadoria.
// Pode existir sem ordem de compra (entrada manual), por isso o estado de
// estorno (ReversedAt) vive aqui e não na ordem.
type StockReceipt struct {
	ID              string
	PurchaseOrderID *string
	WarehouseID     string
	CreatedAt       time.Time
	ReversedAt      *time.Time
	CreatedBy       string
}

// StockReceiptItem é uma linha do recebimento.
type StockReceiptItem struct {
	ID        string
	ReceiptID string
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
}
