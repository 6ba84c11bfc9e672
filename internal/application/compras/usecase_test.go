package compras_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorsoft/gestor-api/internal/application/compras"
	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/application/estoque"
	"github.com/gestorsoft/gestor-api/internal/application/financeiro"
	"github.com/gestorsoft/gestor-api/internal/application/idempotencia"
	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/infrastructure/memoria"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

type fixture struct {
	store    *memoria.Store
	produtos *memoria.ProductRepo
	movs     *memoria.StockMovementRepo
	compras  *memoria.PurchaseOrderRepo
	ledger   *memoria.LedgerEntryRepo
	estoque  *estoque.MovimentoUseCase
	uc       *compras.CompraUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memoria.NewStore()
	store.SeedAccounts()
	tx := memoria.NewTxRunner(store)
	produtos := memoria.NewProductRepository(store)
	depositos := memoria.NewWarehouseRepository(store)
	movs := memoria.NewStockMovementRepository(store)
	estoqueUC := estoque.NewMovimentoUseCase(tx, produtos, depositos, movs)
	financeiroUC := financeiro.NewLancamentoUseCase(tx,
		memoria.NewLedgerEntryRepository(store), memoria.NewTituloRepository(store))
	guard := idempotencia.NewGuard(memoria.NewIdempotencyKeyRepository(store))
	uc := compras.NewCompraUseCase(tx, produtos, depositos,
		memoria.NewFornecedorRepository(store), memoria.NewUserRepository(store),
		memoria.NewCostCenterRepository(store), memoria.NewPurchaseOrderRepository(store),
		guard, estoqueUC, financeiroUC)
	return &fixture{
		store:    store,
		produtos: produtos,
		movs:     movs,
		compras:  memoria.NewPurchaseOrderRepository(store),
		ledger:   memoria.NewLedgerEntryRepository(store),
		estoque:  estoqueUC,
		uc:       uc,
	}
}

func (f *fixture) seedProduto(t *testing.T, sku string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Slug:      "produto-" + sku,
		SKU:       sku,
		Name:      "Produto " + sku,
		Price:     dec("15.00"),
		Cost:      decimal.Zero,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.produtos.Create(p))
	return p
}

func (f *fixture) seedDeposito(t *testing.T, nome string) *entity.Warehouse {
	t.Helper()
	w := &entity.Warehouse{ID: uuid.New().String(), Name: nome, Slug: "dep-" + nome, CreatedAt: time.Now()}
	require.NoError(t, memoria.NewWarehouseRepository(f.store).Create(w))
	return w
}

func (f *fixture) seedFornecedor(t *testing.T) *entity.Fornecedor {
	t.Helper()
	forn := &entity.Fornecedor{ID: uuid.New().String(), Name: "Fornecedor X", CreatedAt: time.Now()}
	require.NoError(t, memoria.NewFornecedorRepository(f.store).Create(forn))
	return forn
}

// criarCompra cria uma ordem simples de um item.
func (f *fixture) criarCompra(t *testing.T, produtoID, depositoID, fornecedorID string, qtd int64, custo string) *entity.PurchaseOrder {
	t.Helper()
	compra, err := f.uc.Criar(context.Background(), "u-1", "", dto.CriarCompraRequest{
		FornecedorID: fornecedorID,
		DepositoID:   depositoID,
		Itens:        []dto.ItemCompraInput{{ProdutoID: produtoID, Quantidade: qtd, CustoUnit: dec(custo)}},
	})
	require.NoError(t, err)
	return compra
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação
// ──────────────────────────────────────────────────────────────────────────────

func TestCriarCompra_TotalEStatusPendente(t *testing.T) {
	f := newFixture(t)
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	a := f.seedProduto(t, "SKU-A")
	b := f.seedProduto(t, "SKU-B")

	compra, err := f.uc.Criar(context.Background(), "u-1", "", dto.CriarCompraRequest{
		FornecedorID: forn.ID,
		DepositoID:   w.ID,
		Itens: []dto.ItemCompraInput{
			{ProdutoID: a.ID, Quantidade: 10, CustoUnit: dec("5.00")},
			{ProdutoID: b.ID, Quantidade: 2, CustoUnit: dec("3.50")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchasePending, compra.Status)
	assert.True(t, compra.Total.Equal(dec("57.00")), "10 x 5.00 + 2 x 3.50")
	assert.True(t, compra.AmountPaid.IsZero())

	// Criar não mexe em estoque nem no razão.
	saldo, _ := f.movs.SumQuantity(a.ID, "")
	assert.Equal(t, int64(0), saldo)
	entries, _ := f.ledger.List(50, 0)
	assert.Empty(t, entries)
}

func TestCriarCompra_Validacoes(t *testing.T) {
	f := newFixture(t)
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")
	ctx := context.Background()

	_, err := f.uc.Criar(ctx, "u-1", "", dto.CriarCompraRequest{FornecedorID: forn.ID, DepositoID: w.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sem itens")

	_, err = f.uc.Criar(ctx, "u-1", "", dto.CriarCompraRequest{
		FornecedorID: forn.ID, DepositoID: w.ID,
		Itens: []dto.ItemCompraInput{{ProdutoID: p.ID, Quantidade: -1, CustoUnit: dec("1.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.Criar(ctx, "u-1", "", dto.CriarCompraRequest{
		FornecedorID: "nao-existe", DepositoID: w.ID,
		Itens: []dto.ItemCompraInput{{ProdutoID: p.ID, Quantidade: 1, CustoUnit: dec("1.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "fornecedor inexistente")
}

func TestCriarCompra_ChaveRepetidaReencontraAOrdem(t *testing.T) {
	f := newFixture(t)
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")
	ctx := context.Background()

	req := dto.CriarCompraRequest{
		FornecedorID: forn.ID, DepositoID: w.ID,
		Itens: []dto.ItemCompraInput{{ProdutoID: p.ID, Quantidade: 4, CustoUnit: dec("6.00")}},
	}
	primeira, err := f.uc.Criar(ctx, "u-1", "chave-compra", req)
	require.NoError(t, err)
	segunda, err := f.uc.Criar(ctx, "u-1", "chave-compra", req)
	require.NoError(t, err)
	assert.Equal(t, primeira.ID, segunda.ID)

	todas, _ := f.compras.List("", 50, 0)
	assert.Len(t, todas, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recebimento
// ──────────────────────────────────────────────────────────────────────────────

func TestReceber_EntraEstoqueComCustoMedioELancaFornecedores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")

	// Primeiro lote: 10 a 5.00.
	c1 := f.criarCompra(t, p.ID, w.ID, forn.ID, 10, "5.00")
	recebida, err := f.uc.Receber(ctx, c1.ID, "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseReceived, recebida.Status)
	require.NotNil(t, recebida.ReceivedAt)

	saldo, _ := f.movs.SumQuantity(p.ID, w.ID)
	assert.Equal(t, int64(10), saldo)
	atualizado, _ := f.produtos.GetByID(p.ID)
	assert.True(t, atualizado.Cost.Equal(dec("5.00")))

	// Segundo lote: 10 a 7.00 pondera o custo para 6.00.
	c2 := f.criarCompra(t, p.ID, w.ID, forn.ID, 10, "7.00")
	_, err = f.uc.Receber(ctx, c2.ID, "u-1")
	require.NoError(t, err)

	saldo, _ = f.movs.SumQuantity(p.ID, w.ID)
	assert.Equal(t, int64(20), saldo)
	atualizado, _ = f.produtos.GetByID(p.ID)
	assert.True(t, atualizado.Cost.Equal(dec("6.00")), "custo médio esperado 6.00, obtido %s", atualizado.Cost)

	// Lançamento Estoque/Fornecedores pelo total da ordem.
	entries, err := f.ledger.ListByCompra(c1.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(dec("50.00")))
}

func TestReceber_RepetirNaoDuplicaEntradas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")

	compra := f.criarCompra(t, p.ID, w.ID, forn.ID, 10, "5.00")
	_, err := f.uc.Receber(ctx, compra.ID, "u-1")
	require.NoError(t, err)

	denovo, err := f.uc.Receber(ctx, compra.ID, "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseReceived, denovo.Status)

	saldo, _ := f.movs.SumQuantity(p.ID, w.ID)
	assert.Equal(t, int64(10), saldo, "reexecutar o recebimento não soma de novo")
	entries, _ := f.ledger.ListByCompra(compra.ID)
	assert.Len(t, entries, 1, "um único lançamento de recebimento")
}

func TestReceber_SemDepositoERejeitado(t *testing.T) {
	f := newFixture(t)
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")

	compra, err := f.uc.Criar(context.Background(), "u-1", "", dto.CriarCompraRequest{
		FornecedorID: forn.ID,
		Itens:        []dto.ItemCompraInput{{ProdutoID: p.ID, Quantidade: 1, CustoUnit: dec("1.00")}},
	})
	require.NoError(t, err)

	_, err = f.uc.Receber(context.Background(), compra.ID, "u-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "recebimento exige depósito de destino")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagamento
// ──────────────────────────────────────────────────────────────────────────────

func TestPagar_ParcialETetoDoSaldoDevedor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")

	// Total 20.00.
	compra := f.criarCompra(t, p.ID, w.ID, forn.ID, 4, "5.00")
	_, err := f.uc.Receber(ctx, compra.ID, "u-1")
	require.NoError(t, err)

	// Pagamento parcial de 10.00 mantém RECEIVED.
	parcial, err := f.uc.Pagar(ctx, compra.ID, dec("10.00"), "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseReceived, parcial.Status)
	assert.True(t, parcial.AmountPaid.Equal(dec("10.00")))

	// Pagar 20.00 com devedor de 10.00 estoura o teto.
	_, err = f.uc.Pagar(ctx, compra.ID, dec("20.00"), "u-1")
	var excede *domain.ExceedsOutstandingError
	require.ErrorAs(t, err, &excede)
	assert.True(t, excede.Outstanding.Equal(dec("10.00")))
	assert.True(t, excede.Requested.Equal(dec("20.00")))

	// Os 10.00 restantes quitam a ordem.
	quitada, err := f.uc.Pagar(ctx, compra.ID, dec("10.00"), "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchasePaid, quitada.Status)
	require.NotNil(t, quitada.PaidAt)
	assert.True(t, quitada.Outstanding().IsZero())

	// Recebimento + dois pagamentos no razão da compra.
	entries, _ := f.ledger.ListByCompra(compra.ID)
	assert.Len(t, entries, 3)
}

func TestPagar_SoOrdemRecebida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")

	compra := f.criarCompra(t, p.ID, w.ID, forn.ID, 1, "5.00")
	_, err := f.uc.Pagar(ctx, compra.ID, dec("5.00"), "u-1")
	assert.ErrorIs(t, err, domain.ErrConflict, "ordem PENDING não pode ser paga")

	_, err = f.uc.Pagar(ctx, compra.ID, dec("0.00"), "u-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor não positivo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelamento
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelar_EstornaEstoqueECusto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")

	// Recebe 4 a 6.00 num produto antes vazio; cancelar devolve saldo 0 e custo 0.
	compra := f.criarCompra(t, p.ID, w.ID, forn.ID, 4, "6.00")
	_, err := f.uc.Receber(ctx, compra.ID, "u-1")
	require.NoError(t, err)

	cancelada, err := f.uc.Cancelar(ctx, compra.ID, "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseCancelled, cancelada.Status)

	saldo, _ := f.movs.SumQuantity(p.ID, w.ID)
	assert.Equal(t, int64(0), saldo)
	atualizado, _ := f.produtos.GetByID(p.ID)
	assert.True(t, atualizado.Cost.IsZero(), "custo volta a zero, obtido %s", atualizado.Cost)

	// Recebimento + estorno no razão; o histórico nunca é apagado.
	entries, _ := f.ledger.ListByCompra(compra.ID)
	assert.Len(t, entries, 2)
	movs, _ := f.movs.ListByProduct(p.ID, nil, nil, 50, 0)
	assert.Len(t, movs, 2, "o movimento de entrada permanece; o estorno é um OUT compensatório")
}

func TestCancelar_MercadoriaConsumidaNaoCancela(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")

	compra := f.criarCompra(t, p.ID, w.ID, forn.ID, 4, "6.00")
	_, err := f.uc.Receber(ctx, compra.ID, "u-1")
	require.NoError(t, err)

	// A mercadoria recebida sai do depósito antes do cancelamento.
	_, err = f.estoque.RegistrarAjuste(ctx, estoque.AjusteInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: -4, Reason: "perda", Actor: "u-1",
	})
	require.NoError(t, err)

	// O OUT compensatório não cabe no saldo; nada pode ficar negativo.
	_, err = f.uc.Cancelar(ctx, compra.ID, "u-1")
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, p.ID, insuf.ProductID)

	// Transação desfeita por inteiro: status, saldo e razão intactos.
	atual, _ := f.compras.GetByID(compra.ID)
	assert.Equal(t, entity.PurchaseReceived, atual.Status)
	saldo, _ := f.movs.SumQuantity(p.ID, w.ID)
	assert.Equal(t, int64(0), saldo)
	entries, _ := f.ledger.ListByCompra(compra.ID)
	assert.Len(t, entries, 1, "só o lançamento do recebimento")
}

func TestCancelar_OrdemComPagamentoNaoCancela(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")

	compra := f.criarCompra(t, p.ID, w.ID, forn.ID, 4, "5.00")
	_, err := f.uc.Receber(ctx, compra.ID, "u-1")
	require.NoError(t, err)
	_, err = f.uc.Pagar(ctx, compra.ID, dec("5.00"), "u-1")
	require.NoError(t, err)

	_, err = f.uc.Cancelar(ctx, compra.ID, "u-1")
	assert.ErrorIs(t, err, domain.ErrCancelPaidOrder)

	saldo, _ := f.movs.SumQuantity(p.ID, w.ID)
	assert.Equal(t, int64(4), saldo, "nada é estornado")
}

func TestCancelar_OrdemPendenteNaoCancela(t *testing.T) {
	f := newFixture(t)
	w := f.seedDeposito(t, "central")
	forn := f.seedFornecedor(t)
	p := f.seedProduto(t, "SKU-A")

	compra := f.criarCompra(t, p.ID, w.ID, forn.ID, 1, "5.00")
	_, err := f.uc.Cancelar(context.Background(), compra.ID, "u-1")
	assert.ErrorIs(t, err, domain.ErrCancelUnreceivedOrder)
}
