package repository

import (
	"time"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// PedidoRepository acesso a pedidos de venda.
type PedidoRepository interface {
	Create(p *entity.Pedido) error
	CreateItem(item *entity.ItemPedido) error
	// GetByID carrega o pedido com itens.
	GetByID(id string) (*entity.Pedido, error)
	List(status string, limit, offset int) ([]*entity.Pedido, error)
	UpdateStatus(id, status string) error
	// FindRecentByUser devolve o pedido mais recente criado pelo usuário desde o
	// instante dado (heurística de reencontro para idempotência).
	FindRecentByUser(userID string, since time.Time) (*entity.Pedido, error)
}
