// Package memoria implementa os repositórios em memória, para testes e modo
// de demonstração. As entidades são guardadas por valor; leituras devolvem
// cópias, de modo que mutações fora dos repositórios não vazam para o estado.
package memoria

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// Store guarda todo o estado compartilhado pelos repositórios em memória.
type Store struct {
	mu sync.Mutex

	products     map[string]entity.Product
	warehouses   map[string]entity.Warehouse
	stocks       map[string]entity.Stock // chave produto|depósito
	movements    []entity.StockMovement
	receipts     map[string]entity.StockReceipt
	receiptItems map[string][]entity.StockReceiptItem
	purchases    map[string]entity.PurchaseOrder
	purchItems   map[string][]entity.PurchaseItem
	pedidos      map[string]entity.Pedido
	pedidoItems  map[string][]entity.ItemPedido
	accounts     map[string]entity.Account // chave nome
	ledger       []entity.LedgerEntry
	titulos      map[string]entity.Titulo
	parcelas     map[string][]entity.Parcela
	idemKeys     map[string]entity.IdempotencyKey
	auditLogs    []entity.AuditLog
	users        map[string]entity.User
	costCenters  map[string]entity.CostCenter
	fornecedores map[string]entity.Fornecedor
}

// NewStore constrói um estado vazio.
func NewStore() *Store {
	return &Store{
		products:     map[string]entity.Product{},
		warehouses:   map[string]entity.Warehouse{},
		stocks:       map[string]entity.Stock{},
		receipts:     map[string]entity.StockReceipt{},
		receiptItems: map[string][]entity.StockReceiptItem{},
		purchases:    map[string]entity.PurchaseOrder{},
		purchItems:   map[string][]entity.PurchaseItem{},
		pedidos:      map[string]entity.Pedido{},
		pedidoItems:  map[string][]entity.ItemPedido{},
		accounts:     map[string]entity.Account{},
		titulos:      map[string]entity.Titulo{},
		parcelas:     map[string][]entity.Parcela{},
		idemKeys:     map[string]entity.IdempotencyKey{},
		users:        map[string]entity.User{},
		costCenters:  map[string]entity.CostCenter{},
		fornecedores: map[string]entity.Fornecedor{},
	}
}

// SeedAccounts grava o plano de contas fixo; idempotente, para setup de testes.
func (s *Store) SeedAccounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed := map[string]string{
		entity.AccountCaixa:         entity.AccountAtivo,
		entity.AccountEstoque:       entity.AccountAtivo,
		entity.AccountClientes:      entity.AccountAtivo,
		entity.AccountFornecedores:  entity.AccountPassivo,
		entity.AccountReceitaVendas: entity.AccountReceita,
		entity.AccountCMV:           entity.AccountDespesa,
	}
	for name, kind := range seed {
		if _, ok := s.accounts[name]; !ok {
			s.accounts[name] = entity.Account{ID: "acc-" + strings.ToLower(strings.ReplaceAll(name, " ", "-")), Name: name, Kind: kind}
		}
	}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

// snapshot copia o estado inteiro para o rollback do runner de transação.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := NewStore()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	for k, v := range s.receiptItems {
		c.receiptItems[k] = append([]entity.StockReceiptItem(nil), v...)
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.purchItems {
		c.purchItems[k] = append([]entity.PurchaseItem(nil), v...)
	}
	for k, v := range s.pedidos {
		c.pedidos[k] = v
	}
	for k, v := range s.pedidoItems {
		c.pedidoItems[k] = append([]entity.ItemPedido(nil), v...)
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	c.ledger = append([]entity.LedgerEntry(nil), s.ledger...)
	for k, v := range s.titulos {
		c.titulos[k] = v
	}
	for k, v := range s.parcelas {
		c.parcelas[k] = append([]entity.Parcela(nil), v...)
	}
	for k, v := range s.idemKeys {
		c.idemKeys[k] = v
	}
	c.auditLogs = append([]entity.AuditLog(nil), s.auditLogs...)
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.costCenters {
		c.costCenters[k] = v
	}
	for k, v := range s.fornecedores {
		c.fornecedores[k] = v
	}
	return c
}

// restore substitui o estado pelo snapshot.
func (s *Store) restore(c *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = c.products
	s.warehouses = c.warehouses
	s.stocks = c.stocks
	s.movements = c.movements
	s.receipts = c.receipts
	s.receiptItems = c.receiptItems
	s.purchases = c.purchases
	s.purchItems = c.purchItems
	s.pedidos = c.pedidos
	s.pedidoItems = c.pedidoItems
	s.accounts = c.accounts
	s.ledger = c.ledger
	s.titulos = c.titulos
	s.parcelas = c.parcelas
	s.idemKeys = c.idemKeys
	s.auditLogs = c.auditLogs
	s.users = c.users
	s.costCenters = c.costCenters
	s.fornecedores = c.fornecedores
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func within(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func sortByCreatedDesc[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
}
