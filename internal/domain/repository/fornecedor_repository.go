package repository

import "github.com/gestorsoft/gestor-api/internal/domain/entity"

// FornecedorRepository fornecedores.
type FornecedorRepository interface {
	Create(f *entity.Fornecedor) error
	GetByID(id string) (*entity.Fornecedor, error)
	List(limit, offset int) ([]*entity.Fornecedor, error)
}
