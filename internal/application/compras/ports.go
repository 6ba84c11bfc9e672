package compras

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/application/ports"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// EstoqueService é o que o workflow de compra precisa do motor de estoque:
// entrada com custeio e estorno de entrada, ambos na transação da compra.
type EstoqueService interface {
	EntradaInTx(r ports.TxRepos, product *entity.Product, warehouseID string, qty int64, unitCost decimal.Decimal, origin, actor string, now time.Time) (*entity.StockMovement, error)
	EstornoEntradaInTx(r ports.TxRepos, productID, warehouseID string, qty int64, unitCost decimal.Decimal, origin, actor string, now time.Time) error
}

// FinanceiroService é o que o workflow de compra precisa do razão.
type FinanceiroService interface {
	PostCompraInTx(r ports.TxRepos, compra *entity.PurchaseOrder, actor string, now time.Time) error
	PostPagamentoCompraInTx(r ports.TxRepos, compra *entity.PurchaseOrder, valor decimal.Decimal, actor string, now time.Time) error
	PostEstornoCompraInTx(r ports.TxRepos, compra *entity.PurchaseOrder, actor string, now time.Time) error
}
