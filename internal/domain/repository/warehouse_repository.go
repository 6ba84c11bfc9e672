package repository

import "github.com/gestorsoft/gestor-api/internal/domain/entity"

// WarehouseRepository acesso a depósitos.
type WarehouseRepository interface {
	Create(w *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetBySlug(slug string) (*entity.Warehouse, error)
	List(limit, offset int) ([]*entity.Warehouse, error)
}
