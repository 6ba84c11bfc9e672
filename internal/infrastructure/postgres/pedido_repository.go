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

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementação sobre PostgreSQL (usável com pool ou tx).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// Create persiste o pedido (sem itens).
func (r *PedidoRepo) Create(p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (id, buyer, status, total, payment_kind, warehouse_id, cost_center_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Buyer, p.Status, p.Total, p.PaymentKind, p.WarehouseID,
		p.CostCenterID, p.CreatedAt, p.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha do pedido com as fotos de preço e custo.
func (r *PedidoRepo) CreateItem(item *entity.ItemPedido) error {
	query := `
		INSERT INTO pedido_items (id, pedido_id, product_id, quantity, unit_price, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PedidoID, item.ProductID, item.Quantity, item.UnitPrice, item.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert pedido item: %w", err)
	}
	return nil
}

// GetByID carrega o pedido com itens.
func (r *PedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	query := `
		SELECT id, buyer, status, total, payment_kind, warehouse_id, cost_center_id, created_at, created_by
		FROM pedidos WHERE id = $1`
	var p entity.Pedido
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Buyer, &p.Status, &p.Total, &p.PaymentKind, &p.WarehouseID,
		&p.CostCenterID, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	if err := r.loadItems(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PedidoRepo) loadItems(p *entity.Pedido) error {
	query := `
		SELECT id, pedido_id, product_id, quantity, unit_price, unit_cost
		FROM pedido_items WHERE pedido_id = $1`
	rows, err := r.q.Query(context.Background(), query, p.ID)
	if err != nil {
		return fmt.Errorf("list pedido items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.ItemPedido
		if err := rows.Scan(&it.ID, &it.PedidoID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.UnitCost); err != nil {
			return fmt.Errorf("scan pedido item: %w", err)
		}
		p.Items = append(p.Items, it)
	}
	return rows.Err()
}

// List pagina pedidos, opcionalmente por status; os itens não são carregados.
func (r *PedidoRepo) List(status string, limit, offset int) ([]*entity.Pedido, error) {
	query := `
		SELECT id, buyer, status, total, payment_kind, warehouse_id, cost_center_id, created_at, created_by
		FROM pedidos`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Pedido
	for rows.Next() {
		var p entity.Pedido
		if err := rows.Scan(&p.ID, &p.Buyer, &p.Status, &p.Total, &p.PaymentKind, &p.WarehouseID,
			&p.CostCenterID, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// UpdateStatus grava o status informativo do pedido.
func (r *PedidoRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE pedidos SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update pedido status: %w", err)
	}
	return nil
}

// FindRecentByUser devolve o pedido mais recente criado pelo usuário desde o instante dado.
func (r *PedidoRepo) FindRecentByUser(userID string, since time.Time) (*entity.Pedido, error) {
	query := `
		SELECT id FROM pedidos
		WHERE created_by = $1 AND created_at >= $2
		ORDER BY created_at DESC LIMIT 1`
	var id string
	err := r.q.QueryRow(context.Background(), query, userID, since).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find recent pedido: %w", err)
	}
	return r.GetByID(id)
}
