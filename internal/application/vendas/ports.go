package vendas

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/application/estoque"
	"github.com/gestorsoft/gestor-api/internal/application/financeiro"
	"github.com/gestorsoft/gestor-api/internal/application/ports"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// EstoqueService é o que o workflow de venda precisa do motor de estoque:
// débito em lote tudo-ou-nada na transação do pedido, devolvendo a foto do
// custo médio por produto para o CMV.
type EstoqueService interface {
	SaidaLoteInTx(r ports.TxRepos, pedidoID *string, warehouseID string, itens []estoque.SaidaItem, origin, actor string, now time.Time) (map[string]decimal.Decimal, error)
}

// FinanceiroService é o que o workflow de venda precisa do razão: receita,
// CMV e título a receber, todos na mesma transação do pedido.
type FinanceiroService interface {
	PostVendaReceitaInTx(r ports.TxRepos, pedido *entity.Pedido, actor string, now time.Time) error
	PostVendaCMVInTx(r ports.TxRepos, pedido *entity.Pedido, custoTotal decimal.Decimal, actor string, now time.Time) error
	CriarTituloInTx(r ports.TxRepos, kind string, pedidoID, compraID *string, valor decimal.Decimal, parcelas []financeiro.ParcelaSpec, now time.Time) (*entity.Titulo, error)
}
