package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry é uma linha imutável do razão em partidas dobradas.
// Todo lançamento tem conta de débito e de crédito com valor positivo;
// correções são lançamentos inversos novos, nunca edição do histórico.
type LedgerEntry struct {
	ID              string
	Description     string
	DebitAccountID  string
	CreditAccountID string
	Amount          decimal.Decimal
	CostCenterID    *string
	PedidoID        *string
	CompraID        *string
	CreatedAt       time.Time
	Actor           string
}
