package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

var _ repository.FornecedorRepository = (*FornecedorRepo)(nil)

// FornecedorRepo fornecedores sobre PostgreSQL.
type FornecedorRepo struct {
	q Querier
}

// NewFornecedorRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewFornecedorRepository(q Querier) *FornecedorRepo {
	return &FornecedorRepo{q: q}
}

// Create persiste um fornecedor.
func (r *FornecedorRepo) Create(f *entity.Fornecedor) error {
	query := `INSERT INTO fornecedores (id, name, document, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, f.ID, f.Name, f.Document, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert fornecedor: %w", err)
	}
	return nil
}

// GetByID obtém um fornecedor por ID.
func (r *FornecedorRepo) GetByID(id string) (*entity.Fornecedor, error) {
	query := `SELECT id, name, document, created_at FROM fornecedores WHERE id = $1`
	var f entity.Fornecedor
	err := r.q.QueryRow(context.Background(), query, id).Scan(&f.ID, &f.Name, &f.Document, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fornecedor: %w", err)
	}
	return &f, nil
}

// List pagina fornecedores.
func (r *FornecedorRepo) List(limit, offset int) ([]*entity.Fornecedor, error) {
	query := `SELECT id, name, document, created_at FROM fornecedores ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fornecedores: %w", err)
	}
	defer rows.Close()

	var out []*entity.Fornecedor
	for rows.Next() {
		var f entity.Fornecedor
		if err := rows.Scan(&f.ID, &f.Name, &f.Document, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fornecedor: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
