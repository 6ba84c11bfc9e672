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

var _ repository.AccountRepository = (*AccountRepo)(nil)
var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

// AccountRepo plano de contas sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste uma conta.
func (r *AccountRepo) Create(a *entity.Account) error {
	query := `INSERT INTO accounts (id, name, kind) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.Name, a.Kind)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByName resolve a conta pelo nome.
func (r *AccountRepo) GetByName(name string) (*entity.Account, error) {
	var a entity.Account
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, kind FROM accounts WHERE name = $1`, name).Scan(&a.ID, &a.Name, &a.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// List devolve o plano de contas completo.
func (r *AccountRepo) List() ([]*entity.Account, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name, kind FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Kind); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// LedgerEntryRepo razão em partidas dobradas sobre PostgreSQL, somente acréscimo.
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

// Create persiste um lançamento.
func (r *LedgerEntryRepo) Create(e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, description, debit_account_id, credit_account_id, amount, cost_center_id, pedido_id, compra_id, created_at, actor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Description, e.DebitAccountID, e.CreditAccountID, e.Amount,
		e.CostCenterID, e.PedidoID, e.CompraID, e.CreatedAt, e.Actor,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// List pagina o razão, mais recente primeiro.
func (r *LedgerEntryRepo) List(limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, description, debit_account_id, credit_account_id, amount, cost_center_id, pedido_id, compra_id, created_at, actor
		FROM ledger_entries ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// ListByPedido devolve os lançamentos vinculados a um pedido.
func (r *LedgerEntryRepo) ListByPedido(pedidoID string) ([]*entity.LedgerEntry, error) {
	return r.listBy("pedido_id", pedidoID)
}

// ListByCompra devolve os lançamentos vinculados a uma compra.
func (r *LedgerEntryRepo) ListByCompra(compraID string) ([]*entity.LedgerEntry, error) {
	return r.listBy("compra_id", compraID)
}

func (r *LedgerEntryRepo) listBy(column, value string) ([]*entity.LedgerEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, description, debit_account_id, credit_account_id, amount, cost_center_id, pedido_id, compra_id, created_at, actor
		FROM ledger_entries WHERE %s = $1 ORDER BY created_at`, column)
	rows, err := r.q.Query(context.Background(), query, value)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

func scanLedgerEntries(rows pgx.Rows) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Description, &e.DebitAccountID, &e.CreditAccountID, &e.Amount,
			&e.CostCenterID, &e.PedidoID, &e.CompraID, &e.CreatedAt, &e.Actor); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
