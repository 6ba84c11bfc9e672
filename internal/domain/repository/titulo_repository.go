package repository

import (
	"time"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// TituloRepository títulos (AR/AP) e suas parcelas.
type TituloRepository interface {
	Create(t *entity.Titulo) error
	CreateParcela(p *entity.Parcela) error
	// GetByID carrega o título com parcelas.
	GetByID(id string) (*entity.Titulo, error)
	// GetByIDForUpdate bloqueia o título para aplicar pagamento de parcela.
	GetByIDForUpdate(id string) (*entity.Titulo, error)
	List(kind string, limit, offset int) ([]*entity.Titulo, error)
	// UpdatePagamento grava valor_pago e o status resultante.
	UpdatePagamento(t *entity.Titulo) error
	MarkParcelaPaga(parcelaID string, at time.Time) error
}
