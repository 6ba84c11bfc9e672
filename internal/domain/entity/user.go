package entity

import "time"

// Papéis de usuário (RBAC).
const (
	RoleAdmin       = "admin"
	RoleFinanceiro  = "financeiro"
	RoleOperacional = "operacional"
)

// User representa um usuário da aplicação.
type User struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string
	Role                string
	DefaultCostCenterID *string // centro de custo padrão para resolução em pedidos/compras
	CreatedAt           time.Time
}
