package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestorsoft/gestor-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback conforme o resultado.
func (t *TxRunner) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.TxRepos{
		Products:    NewProductRepository(tx),
		Stocks:      NewStockRepository(tx),
		Movements:   NewStockMovementRepository(tx),
		Receipts:    NewStockReceiptRepository(tx),
		Purchases:   NewPurchaseOrderRepository(tx),
		Pedidos:     NewPedidoRepository(tx),
		Accounts:    NewAccountRepository(tx),
		Ledger:      NewLedgerEntryRepository(tx),
		Titulos:     NewTituloRepository(tx),
		Idempotency: NewIdempotencyKeyRepository(tx),
		AuditLogs:   NewAuditLogRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
