package estoque

import "github.com/shopspring/decimal"

// CustoMedio implementa o custo médio ponderado (serviço de domínio).
// NovoCusto = ((SaldoAnterior * CustoAnterior) + (QtdEntrada * CustoEntrada)) / (SaldoAnterior + QtdEntrada)
// SaldoAnterior é lido antes do movimento de entrada. Se o denominador não for
// positivo, o custo passa a ser o custo da entrada. Sem arredondamento aqui;
// precisão total interna, duas casas só na borda de serialização.
func CustoMedio(saldoAnterior int64, custoAnterior decimal.Decimal, qtdEntrada int64, custoEntrada decimal.Decimal) decimal.Decimal {
	soma := saldoAnterior + qtdEntrada
	if soma <= 0 {
		return custoEntrada
	}
	num := decimal.NewFromInt(saldoAnterior).Mul(custoAnterior).
		Add(decimal.NewFromInt(qtdEntrada).Mul(custoEntrada))
	return num.Div(decimal.NewFromInt(soma))
}

// CustoMedioReverso desfaz uma entrada no custo médio (estorno de recebimento).
// Subtrai do total acumulado o valor da entrada cancelada e usa o saldo
// pós-estorno como denominador. Saldo resultante <= 0 zera o custo.
func CustoMedioReverso(saldoAtual int64, custoAtual decimal.Decimal, qtdCancelada int64, custoCancelado decimal.Decimal) decimal.Decimal {
	saldoFinal := saldoAtual - qtdCancelada
	if saldoFinal <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(saldoAtual).Mul(custoAtual).
		Sub(decimal.NewFromInt(qtdCancelada).Mul(custoCancelado))
	if num.IsNegative() {
		return decimal.Zero
	}
	return num.Div(decimal.NewFromInt(saldoFinal))
}
