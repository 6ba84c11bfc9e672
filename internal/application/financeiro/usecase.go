package financeiro

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/application/auditoria"
	"github.com/gestorsoft/gestor-api/internal/application/ports"
	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

// LancamentoUseCase concentra o razão em partidas dobradas e os títulos.
// Todo lançamento é um par débito/crédito com valor positivo; lançamento de
// correção é sempre o par inverso, nunca edição do histórico.
type LancamentoUseCase struct {
	tx      ports.TxRunner
	ledger  repository.LedgerEntryRepository
	titulos repository.TituloRepository
}

// NewLancamentoUseCase constrói o caso de uso.
func NewLancamentoUseCase(
	tx ports.TxRunner,
	ledger repository.LedgerEntryRepository,
	titulos repository.TituloRepository,
) *LancamentoUseCase {
	return &LancamentoUseCase{tx: tx, ledger: ledger, titulos: titulos}
}

// lancar resolve as contas pelo nome e grava a linha do razão. Conta ausente
// no plano é erro de configuração sinalizado aqui, nunca pulado em silêncio.
func lancar(
	r ports.TxRepos,
	descricao, contaDebito, contaCredito string,
	valor decimal.Decimal,
	costCenterID, pedidoID, compraID *string,
	actor string,
	now time.Time,
) error {
	debito, err := r.Accounts.GetByName(contaDebito)
	if err != nil {
		return err
	}
	if debito == nil {
		return domain.ErrMissingAccount
	}
	credito, err := r.Accounts.GetByName(contaCredito)
	if err != nil {
		return err
	}
	if credito == nil {
		return domain.ErrMissingAccount
	}
	return r.Ledger.Create(&entity.LedgerEntry{
		ID:              uuid.New().String(),
		Description:     descricao,
		DebitAccountID:  debito.ID,
		CreditAccountID: credito.ID,
		Amount:          valor,
		CostCenterID:    costCenterID,
		PedidoID:        pedidoID,
		CompraID:        compraID,
		CreatedAt:       now,
		Actor:           actor,
	})
}

// PostVendaReceitaInTx lança a receita de um pedido: débito em Caixa (à
// vista) ou Clientes (a prazo), crédito em Receita de Vendas. Total <= 0 não
// lança nada.
func (uc *LancamentoUseCase) PostVendaReceitaInTx(r ports.TxRepos, pedido *entity.Pedido, actor string, now time.Time) error {
	if !pedido.Total.IsPositive() {
		return nil
	}
	contaDebito := entity.AccountCaixa
	if pedido.PaymentKind == entity.PagamentoPrazo {
		contaDebito = entity.AccountClientes
	}
	return lancar(r, "receita de venda "+pedido.ID, contaDebito, entity.AccountReceitaVendas,
		pedido.Total, pedido.CostCenterID, &pedido.ID, nil, actor, now)
}

// PostVendaCMVInTx lança o custo da mercadoria vendida: débito em CMV,
// crédito em Estoque. Valor <= 0 não lança nada.
func (uc *LancamentoUseCase) PostVendaCMVInTx(r ports.TxRepos, pedido *entity.Pedido, custoTotal decimal.Decimal, actor string, now time.Time) error {
	if !custoTotal.IsPositive() {
		return nil
	}
	return lancar(r, "CMV do pedido "+pedido.ID, entity.AccountCMV, entity.AccountEstoque,
		custoTotal, pedido.CostCenterID, &pedido.ID, nil, actor, now)
}

// PostCompraInTx lança o recebimento de uma compra: débito em Estoque,
// crédito em Fornecedores.
func (uc *LancamentoUseCase) PostCompraInTx(r ports.TxRepos, compra *entity.PurchaseOrder, actor string, now time.Time) error {
	return lancar(r, "recebimento da compra "+compra.ID, entity.AccountEstoque, entity.AccountFornecedores,
		compra.Total, compra.CostCenterID, nil, &compra.ID, actor, now)
}

// PostPagamentoCompraInTx lança um pagamento parcial ou total ao fornecedor:
// débito em Fornecedores, crédito em Caixa.
func (uc *LancamentoUseCase) PostPagamentoCompraInTx(r ports.TxRepos, compra *entity.PurchaseOrder, valor decimal.Decimal, actor string, now time.Time) error {
	return lancar(r, "pagamento da compra "+compra.ID, entity.AccountFornecedores, entity.AccountCaixa,
		valor, compra.CostCenterID, nil, &compra.ID, actor, now)
}

// PostEstornoCompraInTx lança o estorno de uma compra recebida com o par
// inverso do lançamento original: débito em Fornecedores, crédito em Estoque.
func (uc *LancamentoUseCase) PostEstornoCompraInTx(r ports.TxRepos, compra *entity.PurchaseOrder, actor string, now time.Time) error {
	return lancar(r, "estorno da compra "+compra.ID, entity.AccountFornecedores, entity.AccountEstoque,
		compra.Total, compra.CostCenterID, nil, &compra.ID, actor, now)
}

// PostRecebimentoParcelaInTx lança o recebimento de uma parcela a receber:
// débito em Caixa, crédito em Clientes.
func (uc *LancamentoUseCase) PostRecebimentoParcelaInTx(r ports.TxRepos, titulo *entity.Titulo, valor decimal.Decimal, actor string, now time.Time) error {
	return lancar(r, "recebimento de parcela do título "+titulo.ID, entity.AccountCaixa, entity.AccountClientes,
		valor, nil, titulo.PedidoID, titulo.CompraID, actor, now)
}

// ParcelaSpec parcela a criar junto do título.
type ParcelaSpec struct {
	Valor      decimal.Decimal
	Vencimento *time.Time
}

// CriarTituloInTx cria um título com parcelas validando o invariante
// Σ(parcelas) == valor; divergência rejeita com ErrInconsistentParcelas.
// Sem parcelas informadas, cria uma única parcela de valor integral.
func (uc *LancamentoUseCase) CriarTituloInTx(
	r ports.TxRepos,
	kind string,
	pedidoID, compraID *string,
	valor decimal.Decimal,
	parcelas []ParcelaSpec,
	now time.Time,
) (*entity.Titulo, error) {
	if len(parcelas) == 0 {
		parcelas = []ParcelaSpec{{Valor: valor}}
	}
	soma := decimal.Zero
	for _, p := range parcelas {
		if !p.Valor.IsPositive() {
			return nil, domain.ErrInconsistentParcelas
		}
		soma = soma.Add(p.Valor)
	}
	if !soma.Equal(valor) {
		return nil, domain.ErrInconsistentParcelas
	}

	titulo := &entity.Titulo{
		ID:        uuid.New().String(),
		Kind:      kind,
		PedidoID:  pedidoID,
		CompraID:  compraID,
		Valor:     valor,
		ValorPago: decimal.Zero,
		Status:    entity.TituloAberto,
		CreatedAt: now,
	}
	if err := r.Titulos.Create(titulo); err != nil {
		return nil, err
	}
	for i, p := range parcelas {
		parcela := entity.Parcela{
			ID:         uuid.New().String(),
			TituloID:   titulo.ID,
			Numero:     i + 1,
			Valor:      p.Valor,
			Vencimento: p.Vencimento,
		}
		if err := r.Titulos.CreateParcela(&parcela); err != nil {
			return nil, err
		}
		titulo.Parcelas = append(titulo.Parcelas, parcela)
	}
	return titulo, nil
}

// PagarParcela aplica o pagamento integral de uma parcela: acumula
// valor_pago, marca a parcela, lança o recebimento no razão e quita o título
// quando o pago cobre o valor. Parcela já paga é conflito.
func (uc *LancamentoUseCase) PagarParcela(ctx context.Context, tituloID, parcelaID string, valor decimal.Decimal, actor string) (*entity.Titulo, error) {
	if !valor.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result *entity.Titulo

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		titulo, err := r.Titulos.GetByIDForUpdate(tituloID)
		if err != nil {
			return err
		}
		if titulo == nil {
			return domain.ErrNotFound
		}
		var parcela *entity.Parcela
		for i := range titulo.Parcelas {
			if titulo.Parcelas[i].ID == parcelaID {
				parcela = &titulo.Parcelas[i]
				break
			}
		}
		if parcela == nil {
			return domain.ErrNotFound
		}
		if parcela.PagoEm != nil {
			return domain.ErrConflict
		}
		// Parcela é paga por inteiro; valor diferente é entrada inválida.
		if !valor.Equal(parcela.Valor) {
			return domain.ErrInvalidInput
		}

		if err := r.Titulos.MarkParcelaPaga(parcela.ID, now); err != nil {
			return err
		}
		parcela.PagoEm = &now

		titulo.ValorPago = titulo.ValorPago.Add(valor)
		if titulo.ValorPago.GreaterThanOrEqual(titulo.Valor) {
			titulo.Status = entity.TituloQuitado
		}
		if err := r.Titulos.UpdatePagamento(titulo); err != nil {
			return err
		}

		if titulo.Kind == entity.TituloReceber {
			if err := uc.PostRecebimentoParcelaInTx(r, titulo, valor, actor, now); err != nil {
				return err
			}
		}
		result = titulo
		return auditoria.RegistrarInTx(r, actor, "financeiro.pagar_parcela", "titulo", titulo.ID,
			map[string]string{"parcela_id": parcelaID, "valor": valor.StringFixed(2)}, now)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListarLancamentos devolve o razão paginado.
func (uc *LancamentoUseCase) ListarLancamentos(ctx context.Context, limit, offset int) ([]*entity.LedgerEntry, error) {
	_ = ctx
	return uc.ledger.List(limit, offset)
}

// GetTitulo devolve um título com parcelas.
func (uc *LancamentoUseCase) GetTitulo(ctx context.Context, id string) (*entity.Titulo, error) {
	_ = ctx
	t, err := uc.titulos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// ListarTitulos devolve títulos por tipo (vazio = todos).
func (uc *LancamentoUseCase) ListarTitulos(ctx context.Context, kind string, limit, offset int) ([]*entity.Titulo, error) {
	_ = ctx
	return uc.titulos.List(kind, limit, offset)
}
