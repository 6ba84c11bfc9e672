package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto (SKU) do catálogo.
// Cost é o custo médio ponderado recalculado a cada recebimento; somente o motor
// de custeio escreve nesse campo. Price é o preço de venda vigente.
type Product struct {
	ID          string
	Slug        string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // preço de venda
	Cost        decimal.Decimal // custo médio ponderado (inicia em 0)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
