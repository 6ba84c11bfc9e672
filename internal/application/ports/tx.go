package ports

import (
	"context"

	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

// TxRepos agrupa os repositórios atados a uma mesma transação de banco.
// Os workflows só enxergam estes; toda leitura entre entidades dentro da
// transação passa por uma chamada explícita de repositório.
type TxRepos struct {
	Products    repository.ProductRepository
	Stocks      repository.StockRepository
	Movements   repository.StockMovementRepository
	Receipts    repository.StockReceiptRepository
	Purchases   repository.PurchaseOrderRepository
	Pedidos     repository.PedidoRepository
	Accounts    repository.AccountRepository
	Ledger      repository.LedgerEntryRepository
	Titulos     repository.TituloRepository
	Idempotency repository.IdempotencyKeyRepository
	AuditLogs   repository.AuditLogRepository
}

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados a essa transação. Garante atomicidade dos workflows:
// qualquer erro do callback desfaz tudo (Rollback), sucesso confirma (Commit).
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
