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

var _ repository.TituloRepository = (*TituloRepo)(nil)

// TituloRepo títulos e parcelas sobre PostgreSQL (usável com pool ou tx).
type TituloRepo struct {
	q Querier
}

// NewTituloRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTituloRepository(q Querier) *TituloRepo {
	return &TituloRepo{q: q}
}

// Create persiste o título (sem parcelas).
func (r *TituloRepo) Create(t *entity.Titulo) error {
	query := `
		INSERT INTO titulos (id, kind, pedido_id, compra_id, valor, valor_pago, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Kind, t.PedidoID, t.CompraID, t.Valor, t.ValorPago, t.Status, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert titulo: %w", err)
	}
	return nil
}

// CreateParcela persiste uma parcela.
func (r *TituloRepo) CreateParcela(p *entity.Parcela) error {
	query := `
		INSERT INTO parcelas (id, titulo_id, numero, valor, vencimento, pago_em)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.TituloID, p.Numero, p.Valor, p.Vencimento, p.PagoEm,
	)
	if err != nil {
		return fmt.Errorf("insert parcela: %w", err)
	}
	return nil
}

// GetByID carrega o título com parcelas.
func (r *TituloRepo) GetByID(id string) (*entity.Titulo, error) {
	return r.get(id, false)
}

// GetByIDForUpdate carrega o título bloqueando a linha (SELECT FOR UPDATE).
func (r *TituloRepo) GetByIDForUpdate(id string) (*entity.Titulo, error) {
	return r.get(id, true)
}

func (r *TituloRepo) get(id string, forUpdate bool) (*entity.Titulo, error) {
	query := `
		SELECT id, kind, pedido_id, compra_id, valor, valor_pago, status, created_at
		FROM titulos WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var t entity.Titulo
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Kind, &t.PedidoID, &t.CompraID, &t.Valor, &t.ValorPago, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get titulo: %w", err)
	}
	if err := r.loadParcelas(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TituloRepo) loadParcelas(t *entity.Titulo) error {
	query := `
		SELECT id, titulo_id, numero, valor, vencimento, pago_em
		FROM parcelas WHERE titulo_id = $1 ORDER BY numero`
	rows, err := r.q.Query(context.Background(), query, t.ID)
	if err != nil {
		return fmt.Errorf("list parcelas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Parcela
		if err := rows.Scan(&p.ID, &p.TituloID, &p.Numero, &p.Valor, &p.Vencimento, &p.PagoEm); err != nil {
			return fmt.Errorf("scan parcela: %w", err)
		}
		t.Parcelas = append(t.Parcelas, p)
	}
	return rows.Err()
}

// List pagina títulos, opcionalmente por tipo (RECEBER/PAGAR); sem parcelas.
func (r *TituloRepo) List(kind string, limit, offset int) ([]*entity.Titulo, error) {
	query := `
		SELECT id, kind, pedido_id, compra_id, valor, valor_pago, status, created_at
		FROM titulos`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list titulos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Titulo
	for rows.Next() {
		var t entity.Titulo
		if err := rows.Scan(&t.ID, &t.Kind, &t.PedidoID, &t.CompraID, &t.Valor, &t.ValorPago, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan titulo: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// UpdatePagamento grava valor_pago e o status resultante.
func (r *TituloRepo) UpdatePagamento(t *entity.Titulo) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE titulos SET valor_pago = $2, status = $3 WHERE id = $1`,
		t.ID, t.ValorPago, t.Status)
	if err != nil {
		return fmt.Errorf("update titulo payment: %w", err)
	}
	return nil
}

// MarkParcelaPaga grava pago_em na parcela.
func (r *TituloRepo) MarkParcelaPaga(parcelaID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE parcelas SET pago_em = $2 WHERE id = $1`, parcelaID, at)
	if err != nil {
		return fmt.Errorf("mark parcela paga: %w", err)
	}
	return nil
}
