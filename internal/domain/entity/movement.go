package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento del libro de una cuenta.
type MovementKind string

// Tipos de movimiento bancario.
const (
	MovementIncome      MovementKind = "income"       // ingreso
	MovementExpense     MovementKind = "expense"      // gasto
	MovementAdvance     MovementKind = "advance"      // abono de venta distribuido a un bucket
	MovementPayment     MovementKind = "payment"      // pago a distribuidor
	MovementTransferOut MovementKind = "transfer_out" // salida por transferencia
	MovementTransferIn  MovementKind = "transfer_in"  // entrada por transferencia
)

// Valid indica si el tipo es uno de los conocidos.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementIncome, MovementExpense, MovementAdvance, MovementPayment, MovementTransferOut, MovementTransferIn:
		return true
	}
	return false
}

// IsTransfer indica si el movimiento es una pata de transferencia.
func (k MovementKind) IsTransfer() bool {
	return k == MovementTransferOut || k == MovementTransferIn
}

// Movement registro inmutable del libro de una cuenta. Amount siempre > 0;
// el signo lo determina Kind.
type Movement struct {
	ID                    string
	AccountID             string
	Kind                  MovementKind
	Amount                decimal.Decimal
	Timestamp             time.Time
	Note                  string
	CounterpartyAccountID string // solo transferencias
	TransferGroupID       string // agrupa las dos patas de una transferencia
	SaleID                string
	PurchaseOrderID       string
	Bucket                Bucket // solo abonos distribuidos
	CreatedBy             string
}
