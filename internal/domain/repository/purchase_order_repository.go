package repository

import (
	"time"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// PurchaseOrderRepository acesso a ordens de compra.
type PurchaseOrderRepository interface {
	Create(o *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseItem) error
	// GetByID carrega a ordem com itens.
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloqueia a linha da ordem para as transições de estado.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	MarkReceived(id string, at time.Time) error
	// UpdatePayment grava amount_paid, paid_at e o status resultante.
	UpdatePayment(o *entity.PurchaseOrder) error
	UpdateStatus(id, status string) error
	// FindRecentByUser devolve a ordem mais recente criada pelo usuário desde o
	// instante dado (heurística de reencontro para idempotência).
	FindRecentByUser(userID string, since time.Time) (*entity.PurchaseOrder, error)
}
