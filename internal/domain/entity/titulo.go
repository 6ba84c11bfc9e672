package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos e estados de título.
const (
	TituloReceber = "RECEBER" // AR
	TituloPagar   = "PAGAR"   // AP

	TituloAberto  = "ABERTO"
	TituloQuitado = "QUITADO"
)

// Titulo é uma obrigação financeira (a receber ou a pagar), opcionalmente
// parcelada. Valor deve ser sempre igual à soma dos valores das parcelas;
// o título passa a QUITADO quando ValorPago >= Valor.
type Titulo struct {
	ID        string
	Kind      string
	PedidoID  *string
	CompraID  *string
	Valor     decimal.Decimal
	ValorPago decimal.Decimal
	Status    string
	CreatedAt time.Time
	Parcelas  []Parcela
}

// Parcela é uma fração independente de um título, paga isoladamente.
type Parcela struct {
	ID         string
	TituloID   string
	Numero     int
	Valor      decimal.Decimal
	Vencimento *time.Time
	PagoEm     *time.Time
}

// SomaParcelas devolve a soma dos valores das parcelas.
func (t *Titulo) SomaParcelas() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range t.Parcelas {
		sum = sum.Add(p.Valor)
	}
	return sum
}
