package financeiro_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorsoft/gestor-api/internal/application/financeiro"
	"github.com/gestorsoft/gestor-api/internal/application/ports"
	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/infrastructure/memoria"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

type fixture struct {
	store   *memoria.Store
	tx      *memoria.TxRunner
	ledger  *memoria.LedgerEntryRepo
	titulos *memoria.TituloRepo
	uc      *financeiro.LancamentoUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memoria.NewStore()
	store.SeedAccounts()
	tx := memoria.NewTxRunner(store)
	ledger := memoria.NewLedgerEntryRepository(store)
	titulos := memoria.NewTituloRepository(store)
	return &fixture{
		store:   store,
		tx:      tx,
		ledger:  ledger,
		titulos: titulos,
		uc:      financeiro.NewLancamentoUseCase(tx, ledger, titulos),
	}
}

// criarTitulo grava um título a receber dentro de uma transação de teste.
func (f *fixture) criarTitulo(t *testing.T, valor string, parcelas []financeiro.ParcelaSpec) *entity.Titulo {
	t.Helper()
	var titulo *entity.Titulo
	err := f.tx.Run(context.Background(), func(r ports.TxRepos) error {
		var err error
		titulo, err = f.uc.CriarTituloInTx(r, entity.TituloReceber, nil, nil, dec(valor), parcelas, time.Now())
		return err
	})
	require.NoError(t, err)
	return titulo
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação de título
// ──────────────────────────────────────────────────────────────────────────────

func TestCriarTitulo_SemParcelasViraParcelaUnica(t *testing.T) {
	f := newFixture(t)
	titulo := f.criarTitulo(t, "30.00", nil)

	assert.Equal(t, entity.TituloAberto, titulo.Status)
	require.Len(t, titulo.Parcelas, 1)
	assert.True(t, titulo.Parcelas[0].Valor.Equal(dec("30.00")))
	assert.Equal(t, 1, titulo.Parcelas[0].Numero)
}

func TestCriarTitulo_SomaDasParcelasDeveBaterComOValor(t *testing.T) {
	f := newFixture(t)

	err := f.tx.Run(context.Background(), func(r ports.TxRepos) error {
		_, err := f.uc.CriarTituloInTx(r, entity.TituloReceber, nil, nil, dec("30.00"),
			[]financeiro.ParcelaSpec{{Valor: dec("10.00")}, {Valor: dec("10.00")}}, time.Now())
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInconsistentParcelas)

	// O rollback não deixa título pela metade.
	todos, _ := f.titulos.List("", 50, 0)
	assert.Empty(t, todos)
}

func TestCriarTitulo_ParcelaNaoPositivaERejeitada(t *testing.T) {
	f := newFixture(t)

	err := f.tx.Run(context.Background(), func(r ports.TxRepos) error {
		_, err := f.uc.CriarTituloInTx(r, entity.TituloReceber, nil, nil, dec("10.00"),
			[]financeiro.ParcelaSpec{{Valor: dec("10.00")}, {Valor: decimal.Zero}}, time.Now())
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInconsistentParcelas)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagamento de parcela
// ──────────────────────────────────────────────────────────────────────────────

func TestPagarParcela_QuitaOTituloQuandoTodasPagas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	titulo := f.criarTitulo(t, "30.00", []financeiro.ParcelaSpec{
		{Valor: dec("18.00")},
		{Valor: dec("12.00")},
	})

	depois, err := f.uc.PagarParcela(ctx, titulo.ID, titulo.Parcelas[0].ID, dec("18.00"), "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TituloAberto, depois.Status, "segue aberto com parcela pendente")
	assert.True(t, depois.ValorPago.Equal(dec("18.00")))

	depois, err = f.uc.PagarParcela(ctx, titulo.ID, titulo.Parcelas[1].ID, dec("12.00"), "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TituloQuitado, depois.Status)
	assert.True(t, depois.ValorPago.Equal(depois.Valor))

	// Cada recebimento lança Caixa/Clientes no razão.
	entries, err := f.ledger.List(50, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPagarParcela_ValorDiferenteDaParcelaERejeitado(t *testing.T) {
	f := newFixture(t)
	titulo := f.criarTitulo(t, "30.00", nil)

	_, err := f.uc.PagarParcela(context.Background(), titulo.ID, titulo.Parcelas[0].ID, dec("15.00"), "u-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "parcela é paga por inteiro")

	salvo, _ := f.titulos.GetByID(titulo.ID)
	assert.True(t, salvo.ValorPago.IsZero())
}

func TestPagarParcela_ParcelaJaPagaEConflito(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	titulo := f.criarTitulo(t, "30.00", nil)

	_, err := f.uc.PagarParcela(ctx, titulo.ID, titulo.Parcelas[0].ID, dec("30.00"), "u-1")
	require.NoError(t, err)

	_, err = f.uc.PagarParcela(ctx, titulo.ID, titulo.Parcelas[0].ID, dec("30.00"), "u-1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	salvo, _ := f.titulos.GetByID(titulo.ID)
	assert.True(t, salvo.ValorPago.Equal(dec("30.00")), "o valor pago não é acumulado duas vezes")
}

func TestPagarParcela_TituloOuParcelaInexistente(t *testing.T) {
	f := newFixture(t)
	titulo := f.criarTitulo(t, "10.00", nil)

	_, err := f.uc.PagarParcela(context.Background(), "nao-existe", "x", dec("10.00"), "u-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.PagarParcela(context.Background(), titulo.ID, "parcela-fantasma", dec("10.00"), "u-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lançamentos
// ──────────────────────────────────────────────────────────────────────────────

func TestPostVendaReceita_AVistaDebitaCaixaEPrazoDebitaClientes(t *testing.T) {
	f := newFixture(t)
	contas := memoria.NewAccountRepository(f.store)
	caixa, _ := contas.GetByName(entity.AccountCaixa)
	clientes, _ := contas.GetByName(entity.AccountClientes)

	avista := &entity.Pedido{ID: "p-1", PaymentKind: entity.PagamentoAVista, Total: dec("45.00")}
	prazo := &entity.Pedido{ID: "p-2", PaymentKind: entity.PagamentoPrazo, Total: dec("45.00")}

	err := f.tx.Run(context.Background(), func(r ports.TxRepos) error {
		if err := f.uc.PostVendaReceitaInTx(r, avista, "u-1", time.Now()); err != nil {
			return err
		}
		return f.uc.PostVendaReceitaInTx(r, prazo, "u-1", time.Now())
	})
	require.NoError(t, err)

	porPedido := func(id string) *entity.LedgerEntry {
		entries, err := f.ledger.ListByPedido(id)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		return entries[0]
	}
	assert.Equal(t, caixa.ID, porPedido("p-1").DebitAccountID)
	assert.Equal(t, clientes.ID, porPedido("p-2").DebitAccountID)
}

func TestLancamento_ValorNaoPositivoNaoLancaNada(t *testing.T) {
	f := newFixture(t)
	pedido := &entity.Pedido{ID: "p-1", PaymentKind: entity.PagamentoAVista, Total: decimal.Zero}

	err := f.tx.Run(context.Background(), func(r ports.TxRepos) error {
		if err := f.uc.PostVendaReceitaInTx(r, pedido, "u-1", time.Now()); err != nil {
			return err
		}
		return f.uc.PostVendaCMVInTx(r, pedido, decimal.Zero, "u-1", time.Now())
	})
	require.NoError(t, err)

	entries, _ := f.ledger.List(50, 0)
	assert.Empty(t, entries)
}
