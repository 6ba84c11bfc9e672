package repository

import "github.com/gestorsoft/gestor-api/internal/domain/entity"

// CostCenterRepository centros de custo.
type CostCenterRepository interface {
	Create(c *entity.CostCenter) error
	GetByID(id string) (*entity.CostCenter, error)
	GetByCode(code string) (*entity.CostCenter, error)
	List(limit, offset int) ([]*entity.CostCenter, error)
}
