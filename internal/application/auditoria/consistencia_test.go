package auditoria_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorsoft/gestor-api/internal/application/auditoria"
	"github.com/gestorsoft/gestor-api/internal/application/estoque"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/infrastructure/memoria"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

type fixture struct {
	store  *memoria.Store
	stocks *memoria.StockRepo
	uc     *auditoria.ConsistenciaUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memoria.NewStore()
	store.SeedAccounts()
	return &fixture{
		store:  store,
		stocks: memoria.NewStockRepository(store),
		uc: auditoria.NewConsistenciaUseCase(
			memoria.NewStockMovementRepository(store),
			memoria.NewStockRepository(store),
			memoria.NewPurchaseOrderRepository(store),
			memoria.NewTituloRepository(store),
		),
	}
}

// seedEntrada movimenta estoque pelo caminho normal, mantendo os livros casados.
func seedEntrada(t *testing.T, store *memoria.Store, productID, warehouseID string, qtd int64) {
	t.Helper()
	produtos := memoria.NewProductRepository(store)
	require.NoError(t, produtos.Create(&entity.Product{
		ID: productID, Slug: "p-" + productID, SKU: "SKU-" + productID,
		Price: dec("10.00"), Cost: decimal.Zero, CreatedAt: time.Now(),
	}))
	depositos := memoria.NewWarehouseRepository(store)
	_ = depositos.Create(&entity.Warehouse{ID: warehouseID, Name: warehouseID, Slug: "w-" + warehouseID, CreatedAt: time.Now()})
	uc := estoque.NewMovimentoUseCase(memoria.NewTxRunner(store), produtos, depositos,
		memoria.NewStockMovementRepository(store))
	_, err := uc.RegistrarEntrada(context.Background(), estoque.EntradaInput{
		ProductID: productID, WarehouseID: warehouseID, Quantity: qtd, UnitCost: dec("5.00"),
	})
	require.NoError(t, err)
}

func TestVerificar_LivrosCasadosNaoTemDivergencia(t *testing.T) {
	f := newFixture(t)
	seedEntrada(t, f.store, "prod-1", "dep-1", 10)

	out, err := f.uc.Verificar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Produtos)
	assert.Empty(t, out.Divergencias)
}

func TestVerificar_DetectaSaldoMaterializadoDivergente(t *testing.T) {
	f := newFixture(t)
	seedEntrada(t, f.store, "prod-1", "dep-1", 10)

	// Corrompe a linha materializada por fora do caminho transacional.
	st, err := f.stocks.Get("prod-1", "dep-1")
	require.NoError(t, err)
	st.Quantity = 7
	require.NoError(t, f.stocks.Upsert(st))

	out, err := f.uc.Verificar(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Divergencias, 1)
	d := out.Divergencias[0]
	assert.Equal(t, "SALDO", d.Tipo)
	assert.Equal(t, "prod-1", d.EntidadeID)
	assert.Equal(t, "10", d.Esperado)
	assert.Equal(t, "7", d.Encontrado)
}

func TestVerificar_DetectaTotalDeCompraDivergente(t *testing.T) {
	f := newFixture(t)
	compras := memoria.NewPurchaseOrderRepository(f.store)
	id := uuid.New().String()
	require.NoError(t, compras.Create(&entity.PurchaseOrder{
		ID: id, FornecedorID: "f-1", Status: entity.PurchasePending,
		Total: dec("99.00"), AmountPaid: decimal.Zero, CreatedAt: time.Now(),
	}))
	require.NoError(t, compras.CreateItem(&entity.PurchaseItem{
		ID: uuid.New().String(), OrderID: id, ProductID: "p-1", Quantity: 2, UnitCost: dec("5.00"),
	}))

	out, err := f.uc.Verificar(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Divergencias, 1)
	d := out.Divergencias[0]
	assert.Equal(t, "TOTAL_COMPRA", d.Tipo)
	assert.Equal(t, "10.00", d.Esperado)
	assert.Equal(t, "99.00", d.Encontrado)
}

func TestVerificar_DetectaTituloForaDoInvariante(t *testing.T) {
	f := newFixture(t)
	titulos := memoria.NewTituloRepository(f.store)
	id := uuid.New().String()
	require.NoError(t, titulos.Create(&entity.Titulo{
		ID: id, Kind: entity.TituloReceber, Valor: dec("30.00"),
		ValorPago: decimal.Zero, Status: entity.TituloAberto, CreatedAt: time.Now(),
	}))
	require.NoError(t, titulos.CreateParcela(&entity.Parcela{
		ID: uuid.New().String(), TituloID: id, Numero: 1, Valor: dec("10.00"),
	}))

	out, err := f.uc.Verificar(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Divergencias, 1)
	assert.Equal(t, "TITULO", out.Divergencias[0].Tipo)
}
