package entity

import "time"

// Fornecedor é a contraparte de uma ordem de compra.
type Fornecedor struct {
	ID        string
	Name      string
	Document  string // CNPJ/CPF
	CreatedAt time.Time
}
