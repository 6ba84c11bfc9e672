package estoque_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorsoft/gestor-api/internal/application/estoque"
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
	store     *memoria.Store
	produtos  *memoria.ProductRepo
	depositos *memoria.WarehouseRepo
	stocks    *memoria.StockRepo
	movs      *memoria.StockMovementRepo
	uc        *estoque.MovimentoUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memoria.NewStore()
	store.SeedAccounts()
	produtos := memoria.NewProductRepository(store)
	depositos := memoria.NewWarehouseRepository(store)
	movs := memoria.NewStockMovementRepository(store)
	uc := estoque.NewMovimentoUseCase(memoria.NewTxRunner(store), produtos, depositos, movs)
	return &fixture{
		store:     store,
		produtos:  produtos,
		depositos: depositos,
		stocks:    memoria.NewStockRepository(store),
		movs:      movs,
		uc:        uc,
	}
}

func (f *fixture) novoProduto(t *testing.T, sku string, preco string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Slug:      "produto-" + sku,
		SKU:       sku,
		Name:      "Produto " + sku,
		Price:     dec(preco),
		Cost:      decimal.Zero,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.produtos.Create(p))
	return p
}

func (f *fixture) novoDeposito(t *testing.T, nome string) *entity.Warehouse {
	t.Helper()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      nome,
		Slug:      "dep-" + nome,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.depositos.Create(w))
	return w
}

// saldoMaterializado confere que a linha materializada bate com a soma dos movimentos.
func (f *fixture) saldoE(t *testing.T, productID, warehouseID string, esperado int64) {
	t.Helper()
	soma, err := f.movs.SumQuantity(productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, esperado, soma, "soma dos movimentos")
	st, err := f.stocks.Get(productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, esperado, st.Quantity, "linha materializada deve bater com o livro de movimentos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarEntrada_SomaSaldoEAtualizaCustoMedio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.novoProduto(t, "SKU-1", "15.00")
	w := f.novoDeposito(t, "central")

	mov, err := f.uc.RegistrarEntrada(ctx, estoque.EntradaInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: 10, UnitCost: dec("5.00"), Actor: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementIN, mov.Kind)
	f.saldoE(t, p.ID, w.ID, 10)

	// Segunda entrada pondera o custo: (10*5.00 + 10*7.00) / 20 = 6.00.
	_, err = f.uc.RegistrarEntrada(ctx, estoque.EntradaInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: 10, UnitCost: dec("7.00"), Actor: "u-1",
	})
	require.NoError(t, err)
	f.saldoE(t, p.ID, w.ID, 20)

	atualizado, err := f.produtos.GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, atualizado.Cost.Equal(dec("6.00")), "custo médio esperado 6.00, obtido %s", atualizado.Cost)
}

func TestRegistrarEntrada_QuantidadeInvalida(t *testing.T) {
	f := newFixture(t)
	p := f.novoProduto(t, "SKU-1", "15.00")
	w := f.novoDeposito(t, "central")

	_, err := f.uc.RegistrarEntrada(context.Background(), estoque.EntradaInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: 0, UnitCost: dec("5.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.RegistrarEntrada(context.Background(), estoque.EntradaInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: 5, UnitCost: dec("-1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarEntrada_ProdutoInexistente(t *testing.T) {
	f := newFixture(t)
	w := f.novoDeposito(t, "central")

	_, err := f.uc.RegistrarEntrada(context.Background(), estoque.EntradaInput{
		ProductID: "nao-existe", WarehouseID: w.ID, Quantity: 5, UnitCost: dec("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarAjuste_NegativoNaoDeixaSaldoNegativo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.novoProduto(t, "SKU-1", "15.00")
	w := f.novoDeposito(t, "central")

	_, err := f.uc.RegistrarEntrada(ctx, estoque.EntradaInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: 3, UnitCost: dec("5.00"),
	})
	require.NoError(t, err)

	_, err = f.uc.RegistrarAjuste(ctx, estoque.AjusteInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: -5, Reason: "quebra",
	})
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	f.saldoE(t, p.ID, w.ID, 3)

	// Dentro do saldo o ajuste passa e não mexe no custo médio.
	_, err = f.uc.RegistrarAjuste(ctx, estoque.AjusteInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: -2, Reason: "quebra",
	})
	require.NoError(t, err)
	f.saldoE(t, p.ID, w.ID, 1)

	atualizado, _ := f.produtos.GetByID(p.ID)
	assert.True(t, atualizado.Cost.Equal(dec("5.00")), "ajuste não altera o custo médio")
}

func TestRegistrarAjuste_QuantidadeZero(t *testing.T) {
	f := newFixture(t)
	p := f.novoProduto(t, "SKU-1", "15.00")
	w := f.novoDeposito(t, "central")

	_, err := f.uc.RegistrarAjuste(context.Background(), estoque.AjusteInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transferência
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferir_ConservaQuantidadeTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.novoProduto(t, "SKU-1", "15.00")
	a := f.novoDeposito(t, "a")
	b := f.novoDeposito(t, "b")

	_, err := f.uc.RegistrarEntrada(ctx, estoque.EntradaInput{
		ProductID: p.ID, WarehouseID: a.ID, Quantity: 5, UnitCost: dec("5.00"),
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Transferir(ctx, estoque.TransferenciaInput{
		ProductID: p.ID, FromWarehouseID: a.ID, ToWarehouseID: b.ID, Quantity: 2, Actor: "u-1",
	}))

	f.saldoE(t, p.ID, a.ID, 3)
	f.saldoE(t, p.ID, b.ID, 2)

	// Saldo global do produto (todos os depósitos) não muda.
	total, err := f.movs.SumQuantity(p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	// Transferência não passa pelo motor de custeio.
	atualizado, _ := f.produtos.GetByID(p.ID)
	assert.True(t, atualizado.Cost.Equal(dec("5.00")))
}

func TestTransferir_IndependeDaOrdemDosDepositos(t *testing.T) {
	// Os bloqueios são adquiridos em ordem de depósito, não na ordem
	// origem/destino da chamada; o débito e o crédito não podem trocar
	// de lado quando a origem vem depois na ordenação.
	f := newFixture(t)
	ctx := context.Background()
	p := f.novoProduto(t, "SKU-1", "15.00")
	primeiro := &entity.Warehouse{ID: "dep-aaa", Name: "aaa", Slug: "dep-aaa", CreatedAt: time.Now()}
	ultimo := &entity.Warehouse{ID: "dep-zzz", Name: "zzz", Slug: "dep-zzz", CreatedAt: time.Now()}
	require.NoError(t, f.depositos.Create(primeiro))
	require.NoError(t, f.depositos.Create(ultimo))

	_, err := f.uc.RegistrarEntrada(ctx, estoque.EntradaInput{
		ProductID: p.ID, WarehouseID: ultimo.ID, Quantity: 5, UnitCost: dec("5.00"),
	})
	require.NoError(t, err)

	// Origem lexicograficamente maior que o destino.
	require.NoError(t, f.uc.Transferir(ctx, estoque.TransferenciaInput{
		ProductID: p.ID, FromWarehouseID: ultimo.ID, ToWarehouseID: primeiro.ID, Quantity: 3, Actor: "u-1",
	}))
	f.saldoE(t, p.ID, ultimo.ID, 2)
	f.saldoE(t, p.ID, primeiro.ID, 3)

	// E o caminho inverso.
	require.NoError(t, f.uc.Transferir(ctx, estoque.TransferenciaInput{
		ProductID: p.ID, FromWarehouseID: primeiro.ID, ToWarehouseID: ultimo.ID, Quantity: 1, Actor: "u-1",
	}))
	f.saldoE(t, p.ID, ultimo.ID, 3)
	f.saldoE(t, p.ID, primeiro.ID, 2)
}

func TestTransferir_SaldoInsuficienteDesfazTudo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.novoProduto(t, "SKU-1", "15.00")
	a := f.novoDeposito(t, "a")
	b := f.novoDeposito(t, "b")

	_, err := f.uc.RegistrarEntrada(ctx, estoque.EntradaInput{
		ProductID: p.ID, WarehouseID: a.ID, Quantity: 2, UnitCost: dec("5.00"),
	})
	require.NoError(t, err)

	err = f.uc.Transferir(ctx, estoque.TransferenciaInput{
		ProductID: p.ID, FromWarehouseID: a.ID, ToWarehouseID: b.ID, Quantity: 3,
	})
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)

	f.saldoE(t, p.ID, a.ID, 2)
	f.saldoE(t, p.ID, b.ID, 0)
}

func TestTransferir_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.novoProduto(t, "SKU-1", "15.00")
	a := f.novoDeposito(t, "a")
	b := f.novoDeposito(t, "b")

	err := f.uc.Transferir(ctx, estoque.TransferenciaInput{
		ProductID: p.ID, FromWarehouseID: a.ID, ToWarehouseID: a.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer, "origem igual ao destino")

	err = f.uc.Transferir(ctx, estoque.TransferenciaInput{
		ProductID: p.ID, FromWarehouseID: a.ID, ToWarehouseID: b.ID, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer, "quantidade não positiva")

	err = f.uc.Transferir(ctx, estoque.TransferenciaInput{
		ProductID: p.ID, FromWarehouseID: a.ID, ToWarehouseID: "nao-existe", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer, "destino inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldo e histórico
// ──────────────────────────────────────────────────────────────────────────────

func TestSaldoEHistorico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.novoProduto(t, "SKU-1", "15.00")
	w := f.novoDeposito(t, "central")

	_, err := f.uc.RegistrarEntrada(ctx, estoque.EntradaInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: 4, UnitCost: dec("2.50"),
	})
	require.NoError(t, err)
	_, err = f.uc.RegistrarAjuste(ctx, estoque.AjusteInput{
		ProductID: p.ID, WarehouseID: w.ID, Quantity: -1, Reason: "avaria",
	})
	require.NoError(t, err)

	saldo, err := f.uc.Saldo(ctx, p.ID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), saldo)

	movs, err := f.uc.Historico(ctx, p.ID, "", nil, nil, 50, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2)

	_, err = f.uc.Historico(ctx, "", "", nil, nil, 50, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "histórico exige produto ou depósito")
}
