package entity

import "time"

// Warehouse representa um depósito onde o estoque é armazenado.
// O slug é derivado do nome e único; serve apenas como dimensão de escopo
// para saldos e transferências.
type Warehouse struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}
