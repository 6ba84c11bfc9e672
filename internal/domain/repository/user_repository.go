package repository

import "github.com/gestorsoft/gestor-api/internal/domain/entity"

// UserRepository acesso a usuários.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
