package estoque

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Saldo 10 a 5.00; entram 10 a 7.00 -> custo médio exato 6.00.
func TestCustoMedio_EntradaPonderada(t *testing.T) {
	novo := CustoMedio(10, dec("5.00"), 10, dec("7.00"))
	assert.True(t, novo.Equal(dec("6.00")), "esperado 6.00, obtido %s", novo)
}

// Saldo zero: o custo passa a ser o custo da entrada.
func TestCustoMedio_SaldoZeroAssumeCustoDaEntrada(t *testing.T) {
	novo := CustoMedio(0, decimal.Zero, 4, dec("6.00"))
	assert.True(t, novo.Equal(dec("6.00")))
}

// Denominador não positivo (saldo negativo por ajuste) também assume o custo da entrada.
func TestCustoMedio_DenominadorNaoPositivo(t *testing.T) {
	novo := CustoMedio(-5, dec("3.00"), 5, dec("8.00"))
	assert.True(t, novo.Equal(dec("8.00")))
}

// Divisão não exata mantém precisão interna; arredondamento só na borda.
func TestCustoMedio_PrecisaoInterna(t *testing.T) {
	// (1*1.00 + 2*2.00) / 3 = 1.666...
	novo := CustoMedio(1, dec("1.00"), 2, dec("2.00"))
	assert.Equal(t, "1.67", novo.StringFixed(2))
	assert.False(t, novo.Equal(dec("1.67")), "o valor interno não deve vir arredondado")
}

// Estorno total de um recebimento em saldo antes vazio zera o custo.
func TestCustoMedioReverso_SaldoZeradoZeraCusto(t *testing.T) {
	// Recebeu 4 a 6.00 num saldo vazio; cancelar as 4 devolve saldo 0 e custo 0.
	novo := CustoMedioReverso(4, dec("6.00"), 4, dec("6.00"))
	assert.True(t, novo.Equal(decimal.Zero))
}

// Estorno parcial recompõe o custo anterior quando sobra estoque de outra origem.
func TestCustoMedioReverso_RecompoeCustoAnterior(t *testing.T) {
	// Havia 10 a 5.00; entraram 10 a 7.00 (média 6.00). Estornando as 10 a 7.00
	// o custo volta a exatamente 5.00.
	novo := CustoMedioReverso(20, dec("6.00"), 10, dec("7.00"))
	assert.True(t, novo.Equal(dec("5.00")), "esperado 5.00, obtido %s", novo)
}

// Total negativo por arredondamentos anteriores não produz custo negativo.
func TestCustoMedioReverso_NuncaNegativo(t *testing.T) {
	novo := CustoMedioReverso(5, dec("1.00"), 3, dec("2.00"))
	assert.False(t, novo.IsNegative())
}
