package repository

import "github.com/gestorsoft/gestor-api/internal/domain/entity"

// AccountRepository plano de contas.
type AccountRepository interface {
	Create(a *entity.Account) error
	// GetByName resolve a conta pelo nome; ausência é erro de configuração.
	GetByName(name string) (*entity.Account, error)
	List() ([]*entity.Account, error)
}

// LedgerEntryRepository razão em partidas dobradas, somente acréscimo.
type LedgerEntryRepository interface {
	Create(e *entity.LedgerEntry) error
	List(limit, offset int) ([]*entity.LedgerEntry, error)
	ListByPedido(pedidoID string) ([]*entity.LedgerEntry, error)
	ListByCompra(compraID string) ([]*entity.LedgerEntry, error)
}
