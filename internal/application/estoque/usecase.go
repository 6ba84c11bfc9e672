package estoque

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/application/auditoria"
	"github.com/gestorsoft/gestor-api/internal/application/ports"
	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	domestoque "github.com/gestorsoft/gestor-api/internal/domain/estoque"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

// MovimentoUseCase registra movimentos de estoque de forma transacional
// (entrada, saída em lote, ajuste, transferência) com bloqueio de linha
// (SELECT FOR UPDATE) e Commit/Rollback pelo TxRunner.
type MovimentoUseCase struct {
	tx        ports.TxRunner
	produtos  repository.ProductRepository
	depositos repository.WarehouseRepository
	movs      repository.StockMovementRepository
}

// NewMovimentoUseCase constrói o caso de uso.
func NewMovimentoUseCase(
	tx ports.TxRunner,
	produtos repository.ProductRepository,
	depositos repository.WarehouseRepository,
	movs repository.StockMovementRepository,
) *MovimentoUseCase {
	return &MovimentoUseCase{tx: tx, produtos: produtos, depositos: depositos, movs: movs}
}

// EntradaInput entrada manual de estoque.
type EntradaInput struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UnitCost    decimal.Decimal
	Note        string
	Actor       string
}

// AjusteInput ajuste com sinal; Quantity != 0.
type AjusteInput struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	Reason      string
	Actor       string
}

// TransferenciaInput transferência entre depósitos.
type TransferenciaInput struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int64
	Actor           string
}

// SaidaItem linha de uma saída em lote.
type SaidaItem struct {
	ProductID string
	Quantity  int64
}

// RegistrarEntrada dá entrada de mercadoria: bloqueia a linha de saldo,
// recalcula o custo médio ponderado, soma o saldo, grava o movimento IN e o
// recibo físico (entrada manual, sem ordem de compra).
func (uc *MovimentoUseCase) RegistrarEntrada(ctx context.Context, in EntradaInput) (*entity.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.produtos.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.validarDeposito(in.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	receiptID := uuid.New().String()
	origin := "entrada:" + receiptID
	var mov *entity.StockMovement

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		var err error
		mov, err = uc.EntradaInTx(r, product, in.WarehouseID, in.Quantity, in.UnitCost, origin, in.Actor, now)
		if err != nil {
			return err
		}
		receipt := &entity.StockReceipt{
			ID:          receiptID,
			WarehouseID: in.WarehouseID,
			CreatedAt:   now,
			CreatedBy:   in.Actor,
		}
		if err := r.Receipts.Create(receipt); err != nil {
			return err
		}
		if err := r.Receipts.CreateItem(&entity.StockReceiptItem{
			ID:        uuid.New().String(),
			ReceiptID: receiptID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitCost:  in.UnitCost,
		}); err != nil {
			return err
		}
		return auditoria.RegistrarInTx(r, in.Actor, "estoque.entrada", "stock_receipt", receiptID, in, now)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// EntradaInTx executa uma entrada usando os repositórios da transação do
// chamador. Lê o saldo anterior sob bloqueio ANTES do movimento, aplica o
// custo médio ponderado exatamente uma vez e grava o movimento IN.
func (uc *MovimentoUseCase) EntradaInTx(
	r ports.TxRepos,
	product *entity.Product,
	warehouseID string,
	qty int64,
	unitCost decimal.Decimal,
	origin, actor string,
	now time.Time,
) (*entity.StockMovement, error) {
	stock, err := r.Stocks.GetForUpdate(product.ID, warehouseID)
	if err != nil {
		return nil, err
	}
	// Saldo global anterior para o custeio: o custo é por produto, não por depósito.
	saldoAnterior, err := r.Movements.SumQuantity(product.ID, "")
	if err != nil {
		return nil, err
	}
	novoCusto := domestoque.CustoMedio(saldoAnterior, product.Cost, qty, unitCost)
	if err := r.Products.UpdateCost(product.ID, novoCusto); err != nil {
		return nil, err
	}
	product.Cost = novoCusto

	stock.Quantity += qty
	stock.UpdatedAt = now
	if err := r.Stocks.Upsert(stock); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		WarehouseID: warehouseID,
		Kind:        entity.MovementIN,
		Quantity:    qty,
		UnitCost:    unitCost,
		Origin:      origin,
		CreatedAt:   now,
		CreatedBy:   actor,
	}
	return mov, r.Movements.Create(mov)
}

// SaidaLoteInTx debita um lote de itens em duas passadas dentro da transação
// do chamador: primeiro verifica o saldo de TODOS os itens sob bloqueio,
// depois grava todos os movimentos OUT. Se qualquer item falha na
// pré-checagem, nada é gravado. Devolve a foto do custo médio por produto
// lida sob o mesmo bloqueio (para o CMV do pedido).
func (uc *MovimentoUseCase) SaidaLoteInTx(
	r ports.TxRepos,
	pedidoID *string,
	warehouseID string,
	itens []SaidaItem,
	origin, actor string,
	now time.Time,
) (map[string]decimal.Decimal, error) {
	// Ordem determinística de bloqueio por produto evita deadlock entre lotes concorrentes.
	ordenados := make([]SaidaItem, len(itens))
	copy(ordenados, itens)
	sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].ProductID < ordenados[j].ProductID })

	// Passada 1: bloqueia e pré-checa todos os saldos.
	stocks := make(map[string]*entity.Stock, len(ordenados))
	custos := make(map[string]decimal.Decimal, len(ordenados))
	for _, it := range ordenados {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		stock, err := r.Stocks.GetForUpdate(it.ProductID, warehouseID)
		if err != nil {
			return nil, err
		}
		if stock.Quantity < it.Quantity {
			product, _ := r.Products.GetByID(it.ProductID)
			sku := ""
			if product != nil {
				sku = product.SKU
			}
			return nil, &domain.InsufficientStockError{ProductID: it.ProductID, SKU: sku}
		}
		product, err := r.Products.GetByID(it.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		stocks[it.ProductID] = stock
		custos[it.ProductID] = product.Cost
	}

	// Passada 2: grava os débitos; tudo ou nada pela transação.
	for _, it := range ordenados {
		stock := stocks[it.ProductID]
		stock.Quantity -= it.Quantity
		stock.UpdatedAt = now
		if err := r.Stocks.Upsert(stock); err != nil {
			return nil, err
		}
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   it.ProductID,
			WarehouseID: warehouseID,
			Kind:        entity.MovementOUT,
			Quantity:    -it.Quantity,
			UnitCost:    custos[it.ProductID],
			Origin:      origin,
			PedidoID:    pedidoID,
			CreatedAt:   now,
			CreatedBy:   actor,
		}
		if err := r.Movements.Create(mov); err != nil {
			return nil, err
		}
	}
	return custos, nil
}

// EstornoEntradaInTx desfaz uma linha de recebimento: recalcula o custo médio
// para trás (saldo pós-estorno como denominador), debita o saldo e grava o
// movimento OUT compensatório. O histórico nunca é editado. O estorno é
// causador de saída como qualquer OUT: se a mercadoria recebida já foi
// consumida, o saldo não comporta o débito e a operação falha.
func (uc *MovimentoUseCase) EstornoEntradaInTx(
	r ports.TxRepos,
	productID, warehouseID string,
	qty int64,
	unitCost decimal.Decimal,
	origin, actor string,
	now time.Time,
) error {
	stock, err := r.Stocks.GetForUpdate(productID, warehouseID)
	if err != nil {
		return err
	}
	product, err := r.Products.GetByID(productID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if stock.Quantity < qty {
		return &domain.InsufficientStockError{ProductID: productID, SKU: product.SKU}
	}
	saldoAtual, err := r.Movements.SumQuantity(productID, "")
	if err != nil {
		return err
	}

	novoCusto := domestoque.CustoMedioReverso(saldoAtual, product.Cost, qty, unitCost)
	if err := r.Products.UpdateCost(productID, novoCusto); err != nil {
		return err
	}

	stock.Quantity -= qty
	stock.UpdatedAt = now
	if err := r.Stocks.Upsert(stock); err != nil {
		return err
	}

	return r.Movements.Create(&entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Kind:        entity.MovementOUT,
		Quantity:    -qty,
		UnitCost:    unitCost,
		Origin:      origin,
		CreatedAt:   now,
		CreatedBy:   actor,
	})
}

// RegistrarAjuste grava um ajuste com sinal. Ajuste negativo é causador de
// saída: o saldo resultante não pode ficar negativo. Ajustes não alteram o
// custo médio; a valoração usa o custo vigente.
func (uc *MovimentoUseCase) RegistrarAjuste(ctx context.Context, in AjusteInput) (*entity.StockMovement, error) {
	if in.Quantity == 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.produtos.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.validarDeposito(in.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	var mov *entity.StockMovement

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		stock, err := r.Stocks.GetForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if in.Quantity < 0 && stock.Quantity+in.Quantity < 0 {
			return &domain.InsufficientStockError{ProductID: in.ProductID, SKU: product.SKU}
		}
		stock.Quantity += in.Quantity
		stock.UpdatedAt = now
		if err := r.Stocks.Upsert(stock); err != nil {
			return err
		}
		mov = &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Kind:        entity.MovementADJUST,
			Quantity:    in.Quantity,
			UnitCost:    product.Cost,
			Origin:      "ajuste:" + uuid.New().String(),
			Reason:      in.Reason,
			CreatedAt:   now,
			CreatedBy:   in.Actor,
		}
		if err := r.Movements.Create(mov); err != nil {
			return err
		}
		return auditoria.RegistrarInTx(r, in.Actor, "estoque.ajuste", "stock_movement", mov.ID, in, now)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Transferir move quantidade entre depósitos numa única transação: um OUT na
// origem e um IN no destino com a mesma tag de origem. Não passa pelo motor
// de custeio; transferência não muda o custo médio do produto.
func (uc *MovimentoUseCase) Transferir(ctx context.Context, in TransferenciaInput) error {
	if in.Quantity <= 0 || in.FromWarehouseID == in.ToWarehouseID {
		return domain.ErrInvalidTransfer
	}
	from, _ := uc.depositos.GetByID(in.FromWarehouseID)
	to, _ := uc.depositos.GetByID(in.ToWarehouseID)
	if from == nil || to == nil {
		return domain.ErrInvalidTransfer
	}
	product, err := uc.produtos.GetByID(in.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	origin := "transferencia:" + uuid.New().String()

	return uc.tx.Run(ctx, func(r ports.TxRepos) error {
		// As duas linhas são bloqueadas em ordem de depósito; transferências
		// opostas concorrentes adquirem os bloqueios na mesma ordem.
		ordem := []string{in.FromWarehouseID, in.ToWarehouseID}
		if ordem[1] < ordem[0] {
			ordem[0], ordem[1] = ordem[1], ordem[0]
		}
		var origem, destino *entity.Stock
		for _, depositoID := range ordem {
			stock, err := r.Stocks.GetForUpdate(in.ProductID, depositoID)
			if err != nil {
				return err
			}
			if depositoID == in.FromWarehouseID {
				origem = stock
			} else {
				destino = stock
			}
		}
		if origem.Quantity < in.Quantity {
			return &domain.InsufficientStockError{ProductID: in.ProductID, SKU: product.SKU}
		}

		origem.Quantity -= in.Quantity
		destino.Quantity += in.Quantity
		origem.UpdatedAt = now
		destino.UpdatedAt = now
		if err := r.Stocks.Upsert(origem); err != nil {
			return err
		}
		if err := r.Stocks.Upsert(destino); err != nil {
			return err
		}

		saida := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			WarehouseID: in.FromWarehouseID,
			Kind:        entity.MovementOUT,
			Quantity:    -in.Quantity,
			UnitCost:    product.Cost,
			Origin:      origin,
			CreatedAt:   now,
			CreatedBy:   in.Actor,
		}
		if err := r.Movements.Create(saida); err != nil {
			return err
		}
		entrada := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			WarehouseID: in.ToWarehouseID,
			Kind:        entity.MovementIN,
			Quantity:    in.Quantity,
			UnitCost:    product.Cost,
			Origin:      origin,
			CreatedAt:   now,
			CreatedBy:   in.Actor,
		}
		if err := r.Movements.Create(entrada); err != nil {
			return err
		}
		return auditoria.RegistrarInTx(r, in.Actor, "estoque.transferencia", "product", in.ProductID, in, now)
	})
}

// Saldo deriva o saldo atual somando os movimentos. O(n) no número de
// movimentos por desenho; a linha materializada é atalho, não autoridade.
func (uc *MovimentoUseCase) Saldo(ctx context.Context, productID, warehouseID string) (int64, error) {
	_ = ctx
	return uc.movs.SumQuantity(productID, warehouseID)
}

// Historico lista movimentos por produto ou por depósito num intervalo.
func (uc *MovimentoUseCase) Historico(ctx context.Context, productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	_ = ctx
	if productID != "" {
		return uc.movs.ListByProduct(productID, from, to, limit, offset)
	}
	if warehouseID != "" {
		return uc.movs.ListByWarehouse(warehouseID, from, to, limit, offset)
	}
	return nil, domain.ErrInvalidInput
}

// validarDeposito aceita vazio (sem depósito) ou um depósito existente.
func (uc *MovimentoUseCase) validarDeposito(id string) error {
	if id == "" {
		return nil
	}
	w, _ := uc.depositos.GetByID(id)
	if w == nil {
		return domain.ErrNotFound
	}
	return nil
}
