package entity

import "time"

// Stock é a linha materializada de saldo por produto e depósito.
// Serve de âncora de bloqueio (SELECT FOR UPDATE) e caminho rápido de leitura;
// o valor autoritativo continua derivável somando os movimentos.
type Stock struct {
	ProductID   string
	WarehouseID string // vazio = saldo sem depósito
	Quantity    int64
	UpdatedAt   time.Time
}
