package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementação de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository constrói o adaptador de depósitos. Passar pool ou tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste um depósito.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	query := `INSERT INTO warehouses (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, w.ID, w.Name, w.Slug, w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtém um depósito por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.getBy("id", id)
}

// GetBySlug obtém um depósito pelo slug.
func (r *WarehouseRepo) GetBySlug(slug string) (*entity.Warehouse, error) {
	return r.getBy("slug", slug)
}

func (r *WarehouseRepo) getBy(column, value string) (*entity.Warehouse, error) {
	query := fmt.Sprintf(`SELECT id, name, slug, created_at FROM warehouses WHERE %s = $1`, column)
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, value).Scan(&w.ID, &w.Name, &w.Slug, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// List pagina depósitos.
func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	query := `SELECT id, name, slug, created_at FROM warehouses ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Slug, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}
