package vendas

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/application/auditoria"
	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/application/estoque"
	"github.com/gestorsoft/gestor-api/internal/application/financeiro"
	"github.com/gestorsoft/gestor-api/internal/application/idempotencia"
	"github.com/gestorsoft/gestor-api/internal/application/ports"
	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

// PedidoUseCase orquestra a criação de pedidos de venda: checagem de
// disponibilidade, foto de preço por item, débito de estoque, receita,
// título a receber quando a prazo e CMV, tudo numa única transação.
type PedidoUseCase struct {
	tx         ports.TxRunner
	produtos   repository.ProductRepository
	depositos  repository.WarehouseRepository
	usuarios   repository.UserRepository
	centros    repository.CostCenterRepository
	pedidos    repository.PedidoRepository
	guard      *idempotencia.Guard
	estoque    EstoqueService
	financeiro FinanceiroService
}

// NewPedidoUseCase constrói o caso de uso.
func NewPedidoUseCase(
	tx ports.TxRunner,
	produtos repository.ProductRepository,
	depositos repository.WarehouseRepository,
	usuarios repository.UserRepository,
	centros repository.CostCenterRepository,
	pedidos repository.PedidoRepository,
	guard *idempotencia.Guard,
	estoqueSvc EstoqueService,
	financeiroSvc FinanceiroService,
) *PedidoUseCase {
	return &PedidoUseCase{
		tx:         tx,
		produtos:   produtos,
		depositos:  depositos,
		usuarios:   usuarios,
		centros:    centros,
		pedidos:    pedidos,
		guard:      guard,
		estoque:    estoqueSvc,
		financeiro: financeiroSvc,
	}
}

// Criar executa o caminho crítico da venda.
// idempotencyKey vazio desliga a deduplicação para a chamada.
func (uc *PedidoUseCase) Criar(ctx context.Context, actor, idempotencyKey string, in dto.CriarPedidoRequest) (*entity.Pedido, error) {
	// 1) Valida a lista de itens: não vazia, quantidades positivas, sem produto repetido.
	if len(in.Itens) == 0 {
		return nil, domain.ErrInvalidInput
	}
	vistos := make(map[string]bool, len(in.Itens))
	for _, it := range in.Itens {
		if it.ProdutoID == "" || vistos[it.ProdutoID] {
			return nil, domain.ErrInvalidInput
		}
		if it.Quantidade <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		vistos[it.ProdutoID] = true
	}
	switch in.FormaPagamento {
	case entity.PagamentoAVista, entity.PagamentoPrazo:
	case "":
		in.FormaPagamento = entity.PagamentoAVista
	default:
		return nil, domain.ErrInvalidInput
	}

	// 2) Idempotência: chave repetida reencontra o pedido recente do mesmo
	// usuário; sem correspondência na janela, segue e executa como novo.
	_, isNew, err := uc.guard.CheckAndRegister(ctx, idempotencyKey, actor, "POST /api/pedidos", in)
	if err != nil {
		return nil, err
	}
	if !isNew {
		if anterior, err := uc.pedidos.FindRecentByUser(actor, time.Now().Add(-entity.DedupWindow)); err == nil && anterior != nil {
			return anterior, nil
		}
	}

	// 3) Produtos e depósito existem; preço é fotografado por item (4).
	produtosPorID := make(map[string]*entity.Product, len(in.Itens))
	for _, it := range in.Itens {
		p, err := uc.produtos.GetByID(it.ProdutoID)
		if err != nil || p == nil {
			return nil, domain.ErrNotFound
		}
		produtosPorID[it.ProdutoID] = p
	}
	if in.DepositoID != "" {
		if w, _ := uc.depositos.GetByID(in.DepositoID); w == nil {
			return nil, domain.ErrNotFound
		}
	}

	// 6) Resolução do centro de custo: código explícito > padrão do usuário > nenhum.
	costCenterID, err := uc.resolverCentroCusto(in.CentroCustoCode, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pedidoID := uuid.New().String()

	// 5) O total fecha com a foto de preço por item antes da persistência;
	// a linha do pedido já nasce com o valor definitivo.
	total := decimal.Zero
	for _, it := range in.Itens {
		total = total.Add(decimal.NewFromInt(it.Quantidade).Mul(produtosPorID[it.ProdutoID].Price))
	}

	pedido := &entity.Pedido{
		ID:           pedidoID,
		Buyer:        in.Comprador,
		Status:       entity.PedidoPending,
		PaymentKind:  in.FormaPagamento,
		WarehouseID:  in.DepositoID,
		CostCenterID: costCenterID,
		Total:        total,
		CreatedAt:    now,
		CreatedBy:    actor,
	}

	// 7, 8, 9, 10) Persistência, débito, receita/título, CMV e auditoria
	// numa única transação: qualquer falha desfaz o pedido inteiro.
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Pedidos.Create(pedido); err != nil {
			return err
		}

		// Débito em duas passadas (checagem e gravação) sob os mesmos
		// bloqueios que congelam o custo para o CMV.
		saida := make([]estoque.SaidaItem, 0, len(in.Itens))
		for _, it := range in.Itens {
			saida = append(saida, estoque.SaidaItem{ProductID: it.ProdutoID, Quantity: it.Quantidade})
		}
		custos, err := uc.estoque.SaidaLoteInTx(r, &pedido.ID, in.DepositoID, saida, "pedido:"+pedidoID, actor, now)
		if err != nil {
			return err
		}

		custoTotal := decimal.Zero
		for _, it := range in.Itens {
			p := produtosPorID[it.ProdutoID]
			item := entity.ItemPedido{
				ID:        uuid.New().String(),
				PedidoID:  pedidoID,
				ProductID: it.ProdutoID,
				Quantity:  it.Quantidade,
				UnitPrice: p.Price,             // foto do preço; mudanças futuras não afetam o pedido
				UnitCost:  custos[it.ProdutoID], // foto do custo lida sob bloqueio
			}
			if err := r.Pedidos.CreateItem(&item); err != nil {
				return err
			}
			pedido.Items = append(pedido.Items, item)
			custoTotal = custoTotal.Add(decimal.NewFromInt(it.Quantidade).Mul(item.UnitCost))
		}

		if err := uc.financeiro.PostVendaReceitaInTx(r, pedido, actor, now); err != nil {
			return err
		}
		if pedido.PaymentKind == entity.PagamentoPrazo {
			parcelas := make([]financeiro.ParcelaSpec, 0, len(in.Parcelas))
			for _, p := range in.Parcelas {
				parcelas = append(parcelas, financeiro.ParcelaSpec{Valor: p.Valor, Vencimento: p.Vencimento})
			}
			if _, err := uc.financeiro.CriarTituloInTx(r, entity.TituloReceber, &pedido.ID, nil, total, parcelas, now); err != nil {
				return err
			}
		}
		if err := uc.financeiro.PostVendaCMVInTx(r, pedido, custoTotal, actor, now); err != nil {
			return err
		}

		return auditoria.RegistrarInTx(r, actor, "vendas.criar", "pedido", pedidoID,
			map[string]string{"total": total.StringFixed(2)}, now)
	})
	if err != nil {
		return nil, err
	}
	return pedido, nil
}

// AtualizarStatus avança o status informativo do pedido (Pending → Preparing
// → Shipped → Delivered); transição fora de ordem é conflito.
func (uc *PedidoUseCase) AtualizarStatus(ctx context.Context, id, novoStatus, actor string) (*entity.Pedido, error) {
	pedido, err := uc.pedidos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.ValidStatusTransition(pedido.Status, novoStatus) {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Pedidos.UpdateStatus(id, novoStatus); err != nil {
			return err
		}
		return auditoria.RegistrarInTx(r, actor, "vendas.status", "pedido", id,
			map[string]string{"de": pedido.Status, "para": novoStatus}, now)
	})
	if err != nil {
		return nil, err
	}
	pedido.Status = novoStatus
	return pedido, nil
}

// Get devolve um pedido com itens.
func (uc *PedidoUseCase) Get(ctx context.Context, id string) (*entity.Pedido, error) {
	_ = ctx
	p, err := uc.pedidos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Listar devolve pedidos por status (vazio = todos).
func (uc *PedidoUseCase) Listar(ctx context.Context, status string, limit, offset int) ([]*entity.Pedido, error) {
	_ = ctx
	return uc.pedidos.List(status, limit, offset)
}

// resolverCentroCusto aplica a precedência: código explícito > padrão do usuário > nenhum.
func (uc *PedidoUseCase) resolverCentroCusto(code, userID string) (*string, error) {
	if code != "" {
		cc, err := uc.centros.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if cc == nil {
			return nil, domain.ErrNotFound
		}
		return &cc.ID, nil
	}
	user, err := uc.usuarios.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user != nil && user.DefaultCostCenterID != nil {
		return user.DefaultCostCenterID, nil
	}
	return nil, nil
}
