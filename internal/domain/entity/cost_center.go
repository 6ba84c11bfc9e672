package entity

import "time"

// CostCenter particiona lançamentos e ordens para fins de relatório.
type CostCenter struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
}
