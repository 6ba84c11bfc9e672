package repository

import "github.com/gestorsoft/gestor-api/internal/domain/entity"

// StockRepository linha materializada de saldo por produto e depósito.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate obtém o saldo bloqueando a linha (SELECT FOR UPDATE);
	// é a âncora de bloqueio entre a pré-checagem e o débito.
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// ListByProduct devolve as linhas de todos os depósitos do produto
	// (auditoria de consistência).
	ListByProduct(productID string) ([]*entity.Stock, error)
}
