package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

var _ repository.StockReceiptRepository = (*StockReceiptRepo)(nil)

// StockReceiptRepo implementação sobre PostgreSQL (usável com pool ou tx).
type StockReceiptRepo struct {
	q Querier
}

// NewStockReceiptRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockReceiptRepository(q Querier) *StockReceiptRepo {
	return &StockReceiptRepo{q: q}
}

// Create persiste um recibo de recebimento.
func (r *StockReceiptRepo) Create(receipt *entity.StockReceipt) error {
	query := `
		INSERT INTO stock_receipts (id, purchase_order_id, warehouse_id, created_at, reversed_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.PurchaseOrderID, receipt.WarehouseID, receipt.CreatedAt, receipt.ReversedAt, receipt.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock receipt: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha do recibo.
func (r *StockReceiptRepo) CreateItem(item *entity.StockReceiptItem) error {
	query := `
		INSERT INTO stock_receipt_items (id, receipt_id, product_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ReceiptID, item.ProductID, item.Quantity, item.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert stock receipt item: %w", err)
	}
	return nil
}

// GetByID obtém um recibo por ID.
func (r *StockReceiptRepo) GetByID(id string) (*entity.StockReceipt, error) {
	return r.getBy(`id = $1`, id)
}

// GetByPurchaseOrder obtém o recibo vinculado a uma ordem de compra.
func (r *StockReceiptRepo) GetByPurchaseOrder(orderID string) (*entity.StockReceipt, error) {
	return r.getBy(`purchase_order_id = $1`, orderID)
}

func (r *StockReceiptRepo) getBy(where, value string) (*entity.StockReceipt, error) {
	query := `
		SELECT id, purchase_order_id, warehouse_id, created_at, reversed_at, created_by
		FROM stock_receipts WHERE ` + where
	var s entity.StockReceipt
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&s.ID, &s.PurchaseOrderID, &s.WarehouseID, &s.CreatedAt, &s.ReversedAt, &s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock receipt: %w", err)
	}
	return &s, nil
}

// GetItems devolve as linhas do recibo.
func (r *StockReceiptRepo) GetItems(receiptID string) ([]*entity.StockReceiptItem, error) {
	query := `
		SELECT id, receipt_id, product_id, quantity, unit_cost
		FROM stock_receipt_items WHERE receipt_id = $1`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list stock receipt items: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockReceiptItem
	for rows.Next() {
		var it entity.StockReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan stock receipt item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// MarkReversed grava reversed_at; o recibo nunca é apagado.
func (r *StockReceiptRepo) MarkReversed(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_receipts SET reversed_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark stock receipt reversed: %w", err)
	}
	return nil
}
