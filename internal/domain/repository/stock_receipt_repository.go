package repository

import (
	"time"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// StockReceiptRepository eventos físicos de recebimento.
type StockReceiptRepository interface {
	Create(r *entity.StockReceipt) error
	CreateItem(item *entity.StockReceiptItem) error
	GetByID(id string) (*entity.StockReceipt, error)
	GetByPurchaseOrder(orderID string) (*entity.StockReceipt, error)
	GetItems(receiptID string) ([]*entity.StockReceiptItem, error)
	// MarkReversed grava reversed_at; o recibo em si nunca é apagado.
	MarkReversed(id string, at time.Time) error
}
