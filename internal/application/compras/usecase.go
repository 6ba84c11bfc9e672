package compras

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/application/auditoria"
	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/application/idempotencia"
	"github.com/gestorsoft/gestor-api/internal/application/ports"
	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

// CompraUseCase orquestra o ciclo de vida da ordem de compra: criação sem
// efeito em estoque, recebimento com custeio por item, pagamentos parciais
// contra o saldo devedor e cancelamento com estorno compensatório.
type CompraUseCase struct {
	tx           ports.TxRunner
	produtos     repository.ProductRepository
	depositos    repository.WarehouseRepository
	fornecedores repository.FornecedorRepository
	usuarios     repository.UserRepository
	centros      repository.CostCenterRepository
	compras      repository.PurchaseOrderRepository
	guard        *idempotencia.Guard
	estoque      EstoqueService
	financeiro   FinanceiroService
}

// NewCompraUseCase constrói o caso de uso.
func NewCompraUseCase(
	tx ports.TxRunner,
	produtos repository.ProductRepository,
	depositos repository.WarehouseRepository,
	fornecedores repository.FornecedorRepository,
	usuarios repository.UserRepository,
	centros repository.CostCenterRepository,
	compras repository.PurchaseOrderRepository,
	guard *idempotencia.Guard,
	estoqueSvc EstoqueService,
	financeiroSvc FinanceiroService,
) *CompraUseCase {
	return &CompraUseCase{
		tx:           tx,
		produtos:     produtos,
		depositos:    depositos,
		fornecedores: fornecedores,
		usuarios:     usuarios,
		centros:      centros,
		compras:      compras,
		guard:        guard,
		estoque:      estoqueSvc,
		financeiro:   financeiroSvc,
	}
}

// Criar registra a ordem como PENDING. Nenhum movimento de estoque nem
// lançamento contábil acontece aqui; tudo isso é efeito do recebimento.
func (uc *CompraUseCase) Criar(ctx context.Context, actor, idempotencyKey string, in dto.CriarCompraRequest) (*entity.PurchaseOrder, error) {
	if in.FornecedorID == "" || len(in.Itens) == 0 {
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
		if it.CustoUnit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		vistos[it.ProdutoID] = true
	}

	// Deduplicação: chave já vista dentro da janela devolve a ordem anterior
	// sem reexecutar; sem reencontro, segue como operação nova.
	now := time.Now().UTC()
	_, isNew, err := uc.guard.CheckAndRegister(ctx, idempotencyKey, actor, "POST /api/compras", in)
	if err != nil {
		return nil, err
	}
	if !isNew {
		if anterior, err := uc.compras.FindRecentByUser(actor, now.Add(-entity.DedupWindow)); err == nil && anterior != nil {
			return anterior, nil
		}
	}

	fornecedor, err := uc.fornecedores.GetByID(in.FornecedorID)
	if err != nil {
		return nil, err
	}
	if fornecedor == nil {
		return nil, domain.ErrNotFound
	}
	if in.DepositoID != "" {
		dep, err := uc.depositos.GetByID(in.DepositoID)
		if err != nil {
			return nil, err
		}
		if dep == nil {
			return nil, domain.ErrNotFound
		}
	}
	for id := range vistos {
		p, err := uc.produtos.GetByID(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
	}
	centroCusto, err := uc.resolverCentroCusto(in.CentroCustoCode, actor)
	if err != nil {
		return nil, err
	}

	compra := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		FornecedorID: in.FornecedorID,
		Status:       entity.PurchasePending,
		AmountPaid:   decimal.Zero,
		WarehouseID:  in.DepositoID,
		CostCenterID: centroCusto,
		CreatedAt:    now,
		CreatedBy:    actor,
	}
	for _, it := range in.Itens {
		compra.Items = append(compra.Items, entity.PurchaseItem{
			ID:        uuid.New().String(),
			OrderID:   compra.ID,
			ProductID: it.ProdutoID,
			Quantity:  it.Quantidade,
			UnitCost:  it.CustoUnit,
		})
	}
	compra.Total = compra.ComputeTotal()

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Purchases.Create(compra); err != nil {
			return err
		}
		for i := range compra.Items {
			if err := r.Purchases.CreateItem(&compra.Items[i]); err != nil {
				return err
			}
		}
		return auditoria.RegistrarInTx(r, actor, "compra.criar", "compra", compra.ID, map[string]any{
			"fornecedor_id": compra.FornecedorID,
			"total":         compra.Total.StringFixed(2),
			"itens":         len(compra.Items),
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return compra, nil
}

// Receber materializa a mercadoria: por item, entrada com custo médio sob
// bloqueio, recibo físico e lançamento Estoque/Fornecedores. Reexecutar sobre
// uma ordem já recebida devolve a ordem inalterada.
func (uc *CompraUseCase) Receber(ctx context.Context, compraID, actor string) (*entity.PurchaseOrder, error) {
	now := time.Now().UTC()
	var resultado *entity.PurchaseOrder

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		compra, err := r.Purchases.GetByIDForUpdate(compraID)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.ErrNotFound
		}
		switch compra.Status {
		case entity.PurchaseReceived, entity.PurchasePaid:
			// Recebimento já efetivado: devolve sem duplicar entradas.
			resultado = compra
			return nil
		case entity.PurchaseCancelled:
			return domain.ErrConflict
		}
		if compra.WarehouseID == "" {
			return domain.ErrInvalidInput
		}

		receipt := &entity.StockReceipt{
			ID:              uuid.New().String(),
			PurchaseOrderID: &compra.ID,
			WarehouseID:     compra.WarehouseID,
			CreatedAt:       now,
			CreatedBy:       actor,
		}
		if err := r.Receipts.Create(receipt); err != nil {
			return err
		}

		origin := "recebimento:" + receipt.ID
		for _, it := range compra.Items {
			product, err := r.Products.GetByID(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if _, err := uc.estoque.EntradaInTx(r, product, compra.WarehouseID, it.Quantity, it.UnitCost, origin, actor, now); err != nil {
				return err
			}
			if err := r.Receipts.CreateItem(&entity.StockReceiptItem{
				ID:        uuid.New().String(),
				ReceiptID: receipt.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitCost:  it.UnitCost,
			}); err != nil {
				return err
			}
		}

		if err := uc.financeiro.PostCompraInTx(r, compra, actor, now); err != nil {
			return err
		}
		if err := r.Purchases.MarkReceived(compra.ID, now); err != nil {
			return err
		}
		compra.Status = entity.PurchaseReceived
		compra.ReceivedAt = &now
		resultado = compra
		return auditoria.RegistrarInTx(r, actor, "compra.receber", "compra", compra.ID, map[string]any{
			"recibo_id": receipt.ID,
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// Pagar aplica um pagamento parcial ou total contra o saldo devedor.
// Só ordens recebidas podem ser pagas; pagar acima do devido é rejeitado.
func (uc *CompraUseCase) Pagar(ctx context.Context, compraID string, valor decimal.Decimal, actor string) (*entity.PurchaseOrder, error) {
	if !valor.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	var resultado *entity.PurchaseOrder

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		compra, err := r.Purchases.GetByIDForUpdate(compraID)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.ErrNotFound
		}
		if compra.Status != entity.PurchaseReceived && compra.Status != entity.PurchasePaid {
			return domain.ErrConflict
		}
		devedor := compra.Outstanding()
		if valor.GreaterThan(devedor) {
			return &domain.ExceedsOutstandingError{Outstanding: devedor, Requested: valor}
		}

		if err := uc.financeiro.PostPagamentoCompraInTx(r, compra, valor, actor, now); err != nil {
			return err
		}

		compra.AmountPaid = compra.AmountPaid.Add(valor)
		if compra.AmountPaid.GreaterThanOrEqual(compra.Total) {
			compra.Status = entity.PurchasePaid
			compra.PaidAt = &now
		}
		if err := r.Purchases.UpdatePayment(compra); err != nil {
			return err
		}
		resultado = compra
		return auditoria.RegistrarInTx(r, actor, "compra.pagar", "compra", compra.ID, map[string]any{
			"valor":      valor.StringFixed(2),
			"valor_pago": compra.AmountPaid.StringFixed(2),
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// Cancelar desfaz uma ordem recebida e ainda não paga: saída compensatória
// por item com custeio reverso, recibo marcado como estornado e lançamento
// inverso. Ordens com qualquer pagamento não podem ser canceladas.
func (uc *CompraUseCase) Cancelar(ctx context.Context, compraID, actor string) (*entity.PurchaseOrder, error) {
	now := time.Now().UTC()
	var resultado *entity.PurchaseOrder

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		compra, err := r.Purchases.GetByIDForUpdate(compraID)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.ErrNotFound
		}
		if compra.Status == entity.PurchasePaid || compra.AmountPaid.IsPositive() {
			return domain.ErrCancelPaidOrder
		}
		if compra.Status != entity.PurchaseReceived {
			return domain.ErrCancelUnreceivedOrder
		}

		receipt, err := r.Receipts.GetByPurchaseOrder(compra.ID)
		if err != nil {
			return err
		}
		if receipt != nil && receipt.ReversedAt == nil {
			items, err := r.Receipts.GetItems(receipt.ID)
			if err != nil {
				return err
			}
			origin := "estorno:" + receipt.ID
			for _, it := range items {
				if err := uc.estoque.EstornoEntradaInTx(r, it.ProductID, receipt.WarehouseID, it.Quantity, it.UnitCost, origin, actor, now); err != nil {
					return err
				}
			}
			if err := r.Receipts.MarkReversed(receipt.ID, now); err != nil {
				return err
			}
		}

		if err := uc.financeiro.PostEstornoCompraInTx(r, compra, actor, now); err != nil {
			return err
		}
		if err := r.Purchases.UpdateStatus(compra.ID, entity.PurchaseCancelled); err != nil {
			return err
		}
		compra.Status = entity.PurchaseCancelled
		resultado = compra
		return auditoria.RegistrarInTx(r, actor, "compra.cancelar", "compra", compra.ID, nil, now)
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// Get busca uma ordem com itens.
func (uc *CompraUseCase) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	compra, err := uc.compras.GetByID(id)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, domain.ErrNotFound
	}
	return compra, nil
}

// Listar pagina ordens, opcionalmente por status.
func (uc *CompraUseCase) Listar(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.compras.List(status, limit, offset)
}

// resolverCentroCusto aplica a precedência: código explícito > padrão do usuário > nenhum.
func (uc *CompraUseCase) resolverCentroCusto(code, userID string) (*string, error) {
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
