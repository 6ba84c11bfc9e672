package memoria

import (
	"context"

	"github.com/gestorsoft/gestor-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner executa o callback sobre o Store com semântica de transação:
// tira um snapshot do estado antes e o restaura quando o callback falha.
type TxRunner struct {
	store *Store
}

// NewTxRunner constrói o runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run executa fn com repositórios sobre o Store. Erro desfaz todas as
// escritas do callback, espelhando o Rollback do banco.
func (t *TxRunner) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	snap := t.store.snapshot()
	repos := ports.TxRepos{
		Products:    NewProductRepository(t.store),
		Stocks:      NewStockRepository(t.store),
		Movements:   NewStockMovementRepository(t.store),
		Receipts:    NewStockReceiptRepository(t.store),
		Purchases:   NewPurchaseOrderRepository(t.store),
		Pedidos:     NewPedidoRepository(t.store),
		Accounts:    NewAccountRepository(t.store),
		Ledger:      NewLedgerEntryRepository(t.store),
		Titulos:     NewTituloRepository(t.store),
		Idempotency: NewIdempotencyKeyRepository(t.store),
		AuditLogs:   NewAuditLogRepository(t.store),
	}
	if err := fn(repos); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
