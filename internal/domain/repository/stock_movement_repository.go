package repository

import (
	"time"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// StockMovementRepository livro imutável de movimentos de estoque.
// Não existem métodos de atualização ou remoção: estorno é um movimento novo.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	// SumQuantity deriva o saldo por soma dos movimentos.
	// warehouseID vazio soma todos os depósitos.
	SumQuantity(productID, warehouseID string) (int64, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListByOrigin devolve os movimentos correlacionados de uma mesma operação.
	ListByOrigin(origin string) ([]*entity.StockMovement, error)
	// ProductIDs devolve os produtos com movimento registrado (auditoria de consistência).
	ProductIDs() ([]string, error)
}
