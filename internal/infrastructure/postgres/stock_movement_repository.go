package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação sobre PostgreSQL (usável com pool ou tx).
// A tabela é somente acréscimo; não há UPDATE nem DELETE aqui.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste um movimento de estoque.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, kind, quantity, unit_cost, origin, reason, pedido_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.WarehouseID, m.Kind, m.Quantity, m.UnitCost,
		m.Origin, m.Reason, m.PedidoID, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// SumQuantity deriva o saldo por soma dos movimentos. warehouseID vazio soma
// todos os depósitos do produto.
func (r *StockMovementRepo) SumQuantity(productID, warehouseID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	if warehouseID != "" {
		query += ` AND warehouse_id = $2`
		args = append(args, warehouseID)
	}
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return total, nil
}

// ListByProduct devolve o histórico do produto, mais recente primeiro.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list("product_id", productID, from, to, limit, offset)
}

// ListByWarehouse devolve o histórico do depósito, mais recente primeiro.
func (r *StockMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list("warehouse_id", warehouseID, from, to, limit, offset)
}

func (r *StockMovementRepo) list(column, value string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, product_id, warehouse_id, kind, quantity, unit_cost, origin, reason, pedido_id, created_at, created_by
		FROM stock_movements WHERE `)
	sb.WriteString(column)
	sb.WriteString(` = $1`)
	args := []any{value}
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(&sb, ` AND created_at >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(&sb, ` AND created_at <= $%d`, len(args))
	}
	args = append(args, limit, offset)
	fmt.Fprintf(&sb, ` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByOrigin devolve os movimentos correlacionados de uma mesma operação.
func (r *StockMovementRepo) ListByOrigin(origin string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, warehouse_id, kind, quantity, unit_cost, origin, reason, pedido_id, created_at, created_by
		FROM stock_movements WHERE origin = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, origin)
	if err != nil {
		return nil, fmt.Errorf("list stock movements by origin: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ProductIDs devolve os produtos com movimento registrado.
func (r *StockMovementRepo) ProductIDs() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT DISTINCT product_id FROM stock_movements`)
	if err != nil {
		return nil, fmt.Errorf("list moved products: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.Kind, &m.Quantity, &m.UnitCost,
			&m.Origin, &m.Reason, &m.PedidoID, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
