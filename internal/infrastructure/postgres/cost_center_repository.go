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

var _ repository.CostCenterRepository = (*CostCenterRepo)(nil)

// CostCenterRepo centros de custo sobre PostgreSQL.
type CostCenterRepo struct {
	q Querier
}

// NewCostCenterRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCostCenterRepository(q Querier) *CostCenterRepo {
	return &CostCenterRepo{q: q}
}

// Create persiste um centro de custo.
func (r *CostCenterRepo) Create(c *entity.CostCenter) error {
	query := `INSERT INTO cost_centers (id, code, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Code, c.Name, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cost center: %w", err)
	}
	return nil
}

// GetByID obtém por ID.
func (r *CostCenterRepo) GetByID(id string) (*entity.CostCenter, error) {
	return r.getBy("id", id)
}

// GetByCode obtém pelo código.
func (r *CostCenterRepo) GetByCode(code string) (*entity.CostCenter, error) {
	return r.getBy("code", code)
}

func (r *CostCenterRepo) getBy(column, value string) (*entity.CostCenter, error) {
	query := fmt.Sprintf(`SELECT id, code, name, created_at FROM cost_centers WHERE %s = $1`, column)
	var c entity.CostCenter
	err := r.q.QueryRow(context.Background(), query, value).Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost center: %w", err)
	}
	return &c, nil
}

// List pagina centros de custo.
func (r *CostCenterRepo) List(limit, offset int) ([]*entity.CostCenter, error) {
	query := `SELECT id, code, name, created_at FROM cost_centers ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}
	defer rows.Close()

	var out []*entity.CostCenter
	for rows.Next() {
		var c entity.CostCenter
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
