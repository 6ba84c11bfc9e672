package memoria

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository        = (*ProductRepo)(nil)
	_ repository.WarehouseRepository      = (*WarehouseRepo)(nil)
	_ repository.StockRepository          = (*StockRepo)(nil)
	_ repository.StockMovementRepository  = (*StockMovementRepo)(nil)
	_ repository.StockReceiptRepository   = (*StockReceiptRepo)(nil)
	_ repository.PurchaseOrderRepository  = (*PurchaseOrderRepo)(nil)
	_ repository.PedidoRepository         = (*PedidoRepo)(nil)
	_ repository.AccountRepository        = (*AccountRepo)(nil)
	_ repository.LedgerEntryRepository    = (*LedgerEntryRepo)(nil)
	_ repository.TituloRepository         = (*TituloRepo)(nil)
	_ repository.IdempotencyKeyRepository = (*IdempotencyKeyRepo)(nil)
	_ repository.AuditLogRepository       = (*AuditLogRepo)(nil)
	_ repository.UserRepository           = (*UserRepo)(nil)
	_ repository.CostCenterRepository     = (*CostCenterRepo)(nil)
	_ repository.FornecedorRepository     = (*FornecedorRepo)(nil)
)

// ProductRepo produtos em memória.
type ProductRepo struct{ s *Store }

// NewProductRepository constrói o adaptador.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Slug == slug {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Product
	for _, p := range r.s.products {
		p := p
		all = append(all, &p)
	}
	sortByCreatedDesc(all, func(p *entity.Product) time.Time { return p.CreatedAt })
	return paginate(all, limit, offset), nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) UpdateCost(id string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	p.UpdatedAt = time.Now().UTC()
	r.s.products[id] = p
	return nil
}

// WarehouseRepo depósitos em memória.
type WarehouseRepo struct{ s *Store }

// NewWarehouseRepository constrói o adaptador.
func NewWarehouseRepository(s *Store) *WarehouseRepo { return &WarehouseRepo{s: s} }

func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.warehouses {
		if existing.Slug == w.Slug {
			return domain.ErrDuplicate
		}
	}
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *WarehouseRepo) GetBySlug(slug string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.warehouses {
		if w.Slug == slug {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Warehouse
	for _, w := range r.s.warehouses {
		w := w
		all = append(all, &w)
	}
	sortByCreatedDesc(all, func(w *entity.Warehouse) time.Time { return w.CreatedAt })
	return paginate(all, limit, offset), nil
}

// StockRepo saldo materializado em memória. GetForUpdate equivale a Get:
// os testes são sequenciais, não há corrida a arbitrar.
type StockRepo struct{ s *Store }

// NewStockRepository constrói o adaptador.
func NewStockRepository(s *Store) *StockRepo { return &StockRepo{s: s} }

func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.stocks[stockKey(productID, warehouseID)]; ok {
		return &st, nil
	}
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID}, nil
}

func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *StockRepo) Upsert(stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stocks[stockKey(stock.ProductID, stock.WarehouseID)] = *stock
	return nil
}

func (r *StockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Stock
	for _, st := range r.s.stocks {
		if st.ProductID == productID {
			st := st
			out = append(out, &st)
		}
	}
	return out, nil
}

// StockMovementRepo livro de movimentos em memória, somente acréscimo.
type StockMovementRepo struct{ s *Store }

// NewStockMovementRepository constrói o adaptador.
func NewStockMovementRepository(s *Store) *StockMovementRepo { return &StockMovementRepo{s: s} }

func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *StockMovementRepo) SumQuantity(productID, warehouseID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if warehouseID != "" && m.WarehouseID != warehouseID {
			continue
		}
		total += m.Quantity
	}
	return total, nil
}

func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m entity.StockMovement) bool { return m.ProductID == productID }, from, to, limit, offset)
}

func (r *StockMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m entity.StockMovement) bool { return m.WarehouseID == warehouseID }, from, to, limit, offset)
}

func (r *StockMovementRepo) list(match func(entity.StockMovement) bool, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if match(m) && within(m.CreatedAt, from, to) {
			m := m
			out = append(out, &m)
		}
	}
	sortByCreatedDesc(out, func(m *entity.StockMovement) time.Time { return m.CreatedAt })
	return paginate(out, limit, offset), nil
}

func (r *StockMovementRepo) ListByOrigin(origin string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.Origin == origin {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *StockMovementRepo) ProductIDs() ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, m := range r.s.movements {
		if !seen[m.ProductID] {
			seen[m.ProductID] = true
			out = append(out, m.ProductID)
		}
	}
	return out, nil
}

// StockReceiptRepo recibos de recebimento em memória.
type StockReceiptRepo struct{ s *Store }

// NewStockReceiptRepository constrói o adaptador.
func NewStockReceiptRepository(s *Store) *StockReceiptRepo { return &StockReceiptRepo{s: s} }

func (r *StockReceiptRepo) Create(receipt *entity.StockReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.receipts[receipt.ID] = *receipt
	return nil
}

func (r *StockReceiptRepo) CreateItem(item *entity.StockReceiptItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.receiptItems[item.ReceiptID] = append(r.s.receiptItems[item.ReceiptID], *item)
	return nil
}

func (r *StockReceiptRepo) GetByID(id string) (*entity.StockReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.receipts[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *StockReceiptRepo) GetByPurchaseOrder(orderID string) (*entity.StockReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.receipts {
		if rec.PurchaseOrderID != nil && *rec.PurchaseOrderID == orderID {
			rec := rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *StockReceiptRepo) GetItems(receiptID string) ([]*entity.StockReceiptItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockReceiptItem
	for _, it := range r.s.receiptItems[receiptID] {
		it := it
		out = append(out, &it)
	}
	return out, nil
}

func (r *StockReceiptRepo) MarkReversed(id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.receipts[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.ReversedAt = &at
	r.s.receipts[id] = rec
	return nil
}

// PurchaseOrderRepo ordens de compra em memória.
type PurchaseOrderRepo struct{ s *Store }

// NewPurchaseOrderRepository constrói o adaptador.
func NewPurchaseOrderRepository(s *Store) *PurchaseOrderRepo { return &PurchaseOrderRepo{s: s} }

func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	saved := *o
	saved.Items = nil
	r.s.purchases[o.ID] = saved
	return nil
}

func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchItems[item.OrderID] = append(r.s.purchItems[item.OrderID], *item)
	return nil
}

func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	o.Items = append([]entity.PurchaseItem(nil), r.s.purchItems[id]...)
	return &o, nil
}

func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.PurchaseOrder
	for _, o := range r.s.purchases {
		if status != "" && o.Status != status {
			continue
		}
		o := o
		all = append(all, &o)
	}
	sortByCreatedDesc(all, func(o *entity.PurchaseOrder) time.Time { return o.CreatedAt })
	return paginate(all, limit, offset), nil
}

func (r *PurchaseOrderRepo) MarkReceived(id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = entity.PurchaseReceived
	o.ReceivedAt = &at
	r.s.purchases[id] = o
	return nil
}

func (r *PurchaseOrderRepo) UpdatePayment(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	saved, ok := r.s.purchases[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	saved.AmountPaid = o.AmountPaid
	saved.PaidAt = o.PaidAt
	saved.Status = o.Status
	r.s.purchases[o.ID] = saved
	return nil
}

func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.s.purchases[id] = o
	return nil
}

func (r *PurchaseOrderRepo) FindRecentByUser(userID string, since time.Time) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	var best *entity.PurchaseOrder
	for _, o := range r.s.purchases {
		if o.CreatedBy != userID || o.CreatedAt.Before(since) {
			continue
		}
		if best == nil || o.CreatedAt.After(best.CreatedAt) {
			o := o
			best = &o
		}
	}
	r.s.mu.Unlock()
	if best == nil {
		return nil, nil
	}
	return r.GetByID(best.ID)
}

// PedidoRepo pedidos de venda em memória.
type PedidoRepo struct{ s *Store }

// NewPedidoRepository constrói o adaptador.
func NewPedidoRepository(s *Store) *PedidoRepo { return &PedidoRepo{s: s} }

func (r *PedidoRepo) Create(p *entity.Pedido) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	saved := *p
	saved.Items = nil
	r.s.pedidos[p.ID] = saved
	return nil
}

func (r *PedidoRepo) CreateItem(item *entity.ItemPedido) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pedidoItems[item.PedidoID] = append(r.s.pedidoItems[item.PedidoID], *item)
	return nil
}

func (r *PedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pedidos[id]
	if !ok {
		return nil, nil
	}
	p.Items = append([]entity.ItemPedido(nil), r.s.pedidoItems[id]...)
	return &p, nil
}

func (r *PedidoRepo) List(status string, limit, offset int) ([]*entity.Pedido, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Pedido
	for _, p := range r.s.pedidos {
		if status != "" && p.Status != status {
			continue
		}
		p := p
		all = append(all, &p)
	}
	sortByCreatedDesc(all, func(p *entity.Pedido) time.Time { return p.CreatedAt })
	return paginate(all, limit, offset), nil
}

func (r *PedidoRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pedidos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	r.s.pedidos[id] = p
	return nil
}

func (r *PedidoRepo) FindRecentByUser(userID string, since time.Time) (*entity.Pedido, error) {
	r.s.mu.Lock()
	var best *entity.Pedido
	for _, p := range r.s.pedidos {
		if p.CreatedBy != userID || p.CreatedAt.Before(since) {
			continue
		}
		if best == nil || p.CreatedAt.After(best.CreatedAt) {
			p := p
			best = &p
		}
	}
	r.s.mu.Unlock()
	if best == nil {
		return nil, nil
	}
	return r.GetByID(best.ID)
}

// AccountRepo plano de contas em memória.
type AccountRepo struct{ s *Store }

// NewAccountRepository constrói o adaptador.
func NewAccountRepository(s *Store) *AccountRepo { return &AccountRepo{s: s} }

func (r *AccountRepo) Create(a *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[a.Name]; ok {
		return domain.ErrDuplicate
	}
	r.s.accounts[a.Name] = *a
	return nil
}

func (r *AccountRepo) GetByName(name string) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.accounts[name]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *AccountRepo) List() ([]*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Account
	for _, a := range r.s.accounts {
		a := a
		out = append(out, &a)
	}
	return out, nil
}

// LedgerEntryRepo razão em memória, somente acréscimo.
type LedgerEntryRepo struct{ s *Store }

// NewLedgerEntryRepository constrói o adaptador.
func NewLedgerEntryRepository(s *Store) *LedgerEntryRepo { return &LedgerEntryRepo{s: s} }

func (r *LedgerEntryRepo) Create(e *entity.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ledger = append(r.s.ledger, *e)
	return nil
}

func (r *LedgerEntryRepo) List(limit, offset int) ([]*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		e := e
		out = append(out, &e)
	}
	sortByCreatedDesc(out, func(e *entity.LedgerEntry) time.Time { return e.CreatedAt })
	return paginate(out, limit, offset), nil
}

func (r *LedgerEntryRepo) ListByPedido(pedidoID string) ([]*entity.LedgerEntry, error) {
	return r.listBy(func(e entity.LedgerEntry) bool { return e.PedidoID != nil && *e.PedidoID == pedidoID })
}

func (r *LedgerEntryRepo) ListByCompra(compraID string) ([]*entity.LedgerEntry, error) {
	return r.listBy(func(e entity.LedgerEntry) bool { return e.CompraID != nil && *e.CompraID == compraID })
}

func (r *LedgerEntryRepo) listBy(match func(entity.LedgerEntry) bool) ([]*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if match(e) {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}

// TituloRepo títulos e parcelas em memória.
type TituloRepo struct{ s *Store }

// NewTituloRepository constrói o adaptador.
func NewTituloRepository(s *Store) *TituloRepo { return &TituloRepo{s: s} }

func (r *TituloRepo) Create(t *entity.Titulo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	saved := *t
	saved.Parcelas = nil
	r.s.titulos[t.ID] = saved
	return nil
}

func (r *TituloRepo) CreateParcela(p *entity.Parcela) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.parcelas[p.TituloID] = append(r.s.parcelas[p.TituloID], *p)
	return nil
}

func (r *TituloRepo) GetByID(id string) (*entity.Titulo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.titulos[id]
	if !ok {
		return nil, nil
	}
	t.Parcelas = append([]entity.Parcela(nil), r.s.parcelas[id]...)
	return &t, nil
}

func (r *TituloRepo) GetByIDForUpdate(id string) (*entity.Titulo, error) {
	return r.GetByID(id)
}

func (r *TituloRepo) List(kind string, limit, offset int) ([]*entity.Titulo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Titulo
	for _, t := range r.s.titulos {
		if kind != "" && t.Kind != kind {
			continue
		}
		t := t
		all = append(all, &t)
	}
	sortByCreatedDesc(all, func(t *entity.Titulo) time.Time { return t.CreatedAt })
	return paginate(all, limit, offset), nil
}

func (r *TituloRepo) UpdatePagamento(t *entity.Titulo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	saved, ok := r.s.titulos[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	saved.ValorPago = t.ValorPago
	saved.Status = t.Status
	r.s.titulos[t.ID] = saved
	return nil
}

func (r *TituloRepo) MarkParcelaPaga(parcelaID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for tituloID, parcelas := range r.s.parcelas {
		for i := range parcelas {
			if parcelas[i].ID == parcelaID {
				parcelas[i].PagoEm = &at
				r.s.parcelas[tituloID] = parcelas
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

// IdempotencyKeyRepo guarda de deduplicação em memória.
type IdempotencyKeyRepo struct{ s *Store }

// NewIdempotencyKeyRepository constrói o adaptador.
func NewIdempotencyKeyRepository(s *Store) *IdempotencyKeyRepo { return &IdempotencyKeyRepo{s: s} }

func (r *IdempotencyKeyRepo) Insert(k *entity.IdempotencyKey) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.idemKeys[k.Key]; ok {
		return false, nil
	}
	r.s.idemKeys[k.Key] = *k
	return true, nil
}

func (r *IdempotencyKeyRepo) Get(key string) (*entity.IdempotencyKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if k, ok := r.s.idemKeys[key]; ok {
		return &k, nil
	}
	return nil, nil
}

// AuditLogRepo trilha de auditoria em memória.
type AuditLogRepo struct{ s *Store }

// NewAuditLogRepository constrói o adaptador.
func NewAuditLogRepository(s *Store) *AuditLogRepo { return &AuditLogRepo{s: s} }

func (r *AuditLogRepo) Create(l *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.auditLogs = append(r.s.auditLogs, *l)
	return nil
}

func (r *AuditLogRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.AuditLog
	for _, l := range r.s.auditLogs {
		l := l
		out = append(out, &l)
	}
	sortByCreatedDesc(out, func(l *entity.AuditLog) time.Time { return l.CreatedAt })
	return paginate(out, limit, offset), nil
}

// UserRepo usuários em memória.
type UserRepo struct{ s *Store }

// NewUserRepository constrói o adaptador.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// CostCenterRepo centros de custo em memória.
type CostCenterRepo struct{ s *Store }

// NewCostCenterRepository constrói o adaptador.
func NewCostCenterRepository(s *Store) *CostCenterRepo { return &CostCenterRepo{s: s} }

func (r *CostCenterRepo) Create(c *entity.CostCenter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.costCenters {
		if existing.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.costCenters[c.ID] = *c
	return nil
}

func (r *CostCenterRepo) GetByID(id string) (*entity.CostCenter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.costCenters[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CostCenterRepo) GetByCode(code string) (*entity.CostCenter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.costCenters {
		if c.Code == code {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CostCenterRepo) List(limit, offset int) ([]*entity.CostCenter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CostCenter
	for _, c := range r.s.costCenters {
		c := c
		out = append(out, &c)
	}
	sortByCreatedDesc(out, func(c *entity.CostCenter) time.Time { return c.CreatedAt })
	return paginate(out, limit, offset), nil
}

// FornecedorRepo fornecedores em memória.
type FornecedorRepo struct{ s *Store }

// NewFornecedorRepository constrói o adaptador.
func NewFornecedorRepository(s *Store) *FornecedorRepo { return &FornecedorRepo{s: s} }

func (r *FornecedorRepo) Create(f *entity.Fornecedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.fornecedores[f.ID] = *f
	return nil
}

func (r *FornecedorRepo) GetByID(id string) (*entity.Fornecedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.fornecedores[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (r *FornecedorRepo) List(limit, offset int) ([]*entity.Fornecedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Fornecedor
	for _, f := range r.s.fornecedores {
		f := f
		out = append(out, &f)
	}
	sortByCreatedDesc(out, func(f *entity.Fornecedor) time.Time { return f.CreatedAt })
	return paginate(out, limit, offset), nil
}
