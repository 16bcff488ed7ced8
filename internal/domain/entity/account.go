package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta bancaria.
const (
	AccountKindAutomatic = "automatic" // alimentada solo por la distribución GYA
	AccountKindManual    = "manual"    // operada manualmente (ingresos, gastos, transferencias)
)

// Account representa un banco/bóveda interna con su capital actual e históricos.
// Invariante: Balance = TotalIncome - TotalExpense después de cualquier mutación aceptada.
type Account struct {
	ID           string
	Name         string
	Kind         string
	Balance      decimal.Decimal // capital actual
	TotalIncome  decimal.Decimal // histórico de ingresos
	TotalExpense decimal.Decimal // histórico de gastos
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Consistent indica si el capital coincide con la diferencia de los históricos.
func (a *Account) Consistent() bool {
	return a.Balance.Equal(a.TotalIncome.Sub(a.TotalExpense))
}
