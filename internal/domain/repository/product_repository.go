package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// ProductRepository acesso a produtos do catálogo.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(p *entity.Product) error
	// UpdateCost escreve o custo médio ponderado; uso exclusivo do motor de custeio.
	UpdateCost(id string, cost decimal.Decimal) error
}
