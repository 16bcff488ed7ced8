// Package ledger contiene las reglas puras del libro mayor: efecto de cada movimiento sobre
// los contadores de una cuenta y el recálculo completo desde el historial.
//
// Invariante: balance = totalIncome − totalExpense después de cada mutación aceptada.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

// IsIncome tipos que suman al saldo.
func IsIncome(k entity.MovementKind) bool {
	return k == entity.MovementIncome || k == entity.MovementAdvance || k == entity.MovementTransferIn
}

// IsExpense tipos que restan al saldo.
func IsExpense(k entity.MovementKind) bool {
	return k == entity.MovementExpense || k == entity.MovementPayment || k == entity.MovementTransferOut
}

// Delta cambios relativos sobre los contadores de una cuenta.
type Delta struct {
	Balance decimal.Decimal `json:"balance"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// IsZero true si el delta no cambia nada.
func (d Delta) IsZero() bool {
	return d.Balance.IsZero() && d.Income.IsZero() && d.Expense.IsZero()
}

// Effect delta que produce un movimiento sobre su cuenta.
func Effect(m entity.Movement) Delta {
	switch {
	case IsIncome(m.Kind):
		return Delta{Balance: m.Amount, Income: m.Amount, Expense: decimal.Zero}
	case IsExpense(m.Kind):
		return Delta{Balance: m.Amount.Neg(), Income: decimal.Zero, Expense: m.Amount}
	default:
		return Delta{Balance: decimal.Zero, Income: decimal.Zero, Expense: decimal.Zero}
	}
}

// Inverse delta que deshace exactamente el efecto de un movimiento.
func Inverse(m entity.Movement) Delta {
	d := Effect(m)
	return Delta{Balance: d.Balance.Neg(), Income: d.Income.Neg(), Expense: d.Expense.Neg()}
}

// Totals contadores de una cuenta derivados de su historial.
type Totals struct {
	AccountID    string          `json:"account_id"`
	Balance      decimal.Decimal `json:"balance"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// Recompute pliega el historial completo de la cuenta. El resultado no depende del orden.
// Movimientos de otras cuentas se ignoran.
func Recompute(accountID string, movements []entity.Movement) Totals {
	t := Totals{AccountID: accountID, Balance: decimal.Zero, TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for _, m := range movements {
		if m.AccountID != accountID {
			continue
		}
		d := Effect(m)
		t.TotalIncome = t.TotalIncome.Add(d.Income)
		t.TotalExpense = t.TotalExpense.Add(d.Expense)
	}
	t.Balance = t.TotalIncome.Sub(t.TotalExpense)
	return t
}

// Drift diferencia entre lo derivado del historial y lo almacenado (derivado − almacenado).
func Drift(stored entity.Account, folded Totals) Delta {
	return Delta{
		Balance: folded.Balance.Sub(stored.Balance),
		Income:  folded.TotalIncome.Sub(stored.TotalIncome),
		Expense: folded.TotalExpense.Sub(stored.TotalExpense),
	}
}

// Summary resumen de corte de una cuenta en un rango de fechas.
type Summary struct {
	AccountID      string                                  `json:"account_id"`
	From           time.Time                               `json:"from"`
	To             time.Time                               `json:"to"`
	OpeningBalance decimal.Decimal                         `json:"opening_balance"`
	Income         decimal.Decimal                         `json:"income"`
	Expense        decimal.Decimal                         `json:"expense"`
	ClosingBalance decimal.Decimal                         `json:"closing_balance"`
	ByKind         map[entity.MovementKind]decimal.Decimal `json:"by_kind"`
	Count          int                                     `json:"count"`
}

// Summarize agrupa los movimientos del rango [from, to] por tipo. El saldo inicial se deduce
// del saldo actual menos el neto de todo lo posterior a from.
func Summarize(account entity.Account, movements []entity.Movement, from, to time.Time) Summary {
	s := Summary{
		AccountID: account.ID,
		From:      from,
		To:        to,
		Income:    decimal.Zero,
		Expense:   decimal.Zero,
		ByKind:    map[entity.MovementKind]decimal.Decimal{},
	}
	later := decimal.Zero
	for _, m := range movements {
		if m.AccountID != account.ID || m.Timestamp.Before(from) {
			continue
		}
		d := Effect(m)
		if m.Timestamp.After(to) {
			later = later.Add(d.Balance)
			continue
		}
		s.Income = s.Income.Add(d.Income)
		s.Expense = s.Expense.Add(d.Expense)
		s.ByKind[m.Kind] = s.ByKind[m.Kind].Add(m.Amount)
		s.Count++
	}
	s.ClosingBalance = account.Balance.Sub(later)
	s.OpeningBalance = s.ClosingBalance.Sub(s.Income.Sub(s.Expense))
	return s
}

// ClientDebt Σ saldo pendiente de las ventas del cliente.
func ClientDebt(clientID string, sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		if s.ClientID == clientID {
			total = total.Add(s.AmountRemaining)
		}
	}
	return total
}

// DistributorDebt Σ saldo pendiente de las órdenes de compra del distribuidor.
func DistributorDebt(distributorID string, orders []entity.PurchaseOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.DistributorID == distributorID {
			total = total.Add(o.AmountRemaining())
		}
	}
	return total
}
