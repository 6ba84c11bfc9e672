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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementação sobre PostgreSQL (usável com pool ou tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste a ordem (sem itens).
func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, fornecedor_id, status, total, amount_paid, warehouse_id, cost_center_id, created_at, created_by, received_at, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.FornecedorID, o.Status, o.Total, o.AmountPaid, o.WarehouseID,
		o.CostCenterID, o.CreatedAt, o.CreatedBy, o.ReceivedAt, o.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha da ordem.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_order_items (id, order_id, product_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

// GetByID carrega a ordem com itens.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, false)
}

// GetByIDForUpdate carrega a ordem bloqueando a linha (SELECT FOR UPDATE).
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, true)
}

func (r *PurchaseOrderRepo) get(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, fornecedor_id, status, total, amount_paid, warehouse_id, cost_center_id, created_at, created_by, received_at, paid_at
		FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.FornecedorID, &o.Status, &o.Total, &o.AmountPaid, &o.WarehouseID,
		&o.CostCenterID, &o.CreatedAt, &o.CreatedBy, &o.ReceivedAt, &o.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) loadItems(o *entity.PurchaseOrder) error {
	query := `
		SELECT id, order_id, product_id, quantity, unit_cost
		FROM purchase_order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, o.ID)
	if err != nil {
		return fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

// List pagina ordens, opcionalmente por status; os itens não são carregados.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, fornecedor_id, status, total, amount_paid, warehouse_id, cost_center_id, created_at, created_by, received_at, paid_at
		FROM purchase_orders`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.FornecedorID, &o.Status, &o.Total, &o.AmountPaid, &o.WarehouseID,
			&o.CostCenterID, &o.CreatedAt, &o.CreatedBy, &o.ReceivedAt, &o.PaidAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// MarkReceived grava received_at e o status RECEIVED.
func (r *PurchaseOrderRepo) MarkReceived(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, received_at = $3 WHERE id = $1`,
		id, entity.PurchaseReceived, at)
	if err != nil {
		return fmt.Errorf("mark purchase order received: %w", err)
	}
	return nil
}

// UpdatePayment grava amount_paid, paid_at e o status resultante.
func (r *PurchaseOrderRepo) UpdatePayment(o *entity.PurchaseOrder) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET amount_paid = $2, paid_at = $3, status = $4 WHERE id = $1`,
		o.ID, o.AmountPaid, o.PaidAt, o.Status)
	if err != nil {
		return fmt.Errorf("update purchase order payment: %w", err)
	}
	return nil
}

// UpdateStatus grava somente o status.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// FindRecentByUser devolve a ordem mais recente criada pelo usuário desde o instante dado.
func (r *PurchaseOrderRepo) FindRecentByUser(userID string, since time.Time) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id FROM purchase_orders
		WHERE created_by = $1 AND created_at >= $2
		ORDER BY created_at DESC LIMIT 1`
	var id string
	err := r.q.QueryRow(context.Background(), query, userID, since).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find recent purchase order: %w", err)
	}
	return r.GetByID(id)
}
