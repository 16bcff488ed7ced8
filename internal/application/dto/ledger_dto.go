package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest body para POST /api/accounts.
type CreateAccountRequest struct {
	ID   string `json:"id" validate:"required,min=1,max=64"`
	Name string `json:"name" validate:"required,min=1,max=200"`
	Kind string `json:"kind" validate:"omitempty,oneof=automatic manual"`
}

// AccountResponse salida de una cuenta.
type AccountResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	Balance      decimal.Decimal `json:"balance"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID                    string          `json:"id"`
	AccountID             string          `json:"account_id"`
	Kind                  string          `json:"kind"`
	Amount                decimal.Decimal `json:"amount"`
	Timestamp             time.Time       `json:"timestamp"`
	Note                  string          `json:"note,omitempty"`
	CounterpartyAccountID string          `json:"counterparty_account_id,omitempty"`
	TransferGroupID       string          `json:"transfer_group_id,omitempty"`
	SaleID                string          `json:"sale_id,omitempty"`
	PurchaseOrderID       string          `json:"purchase_order_id,omitempty"`
	Bucket                string          `json:"bucket,omitempty"`
	CreatedBy             string          `json:"created_by,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ManualMovementRequest body para ingresos y gastos manuales.
type ManualMovementRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note" validate:"max=500"`
}

// TransferRequest body para POST /api/transfers.
type TransferRequest struct {
	OriginAccountID      string          `json:"origin_account_id" validate:"required"`
	DestinationAccountID string          `json:"destination_account_id" validate:"required"`
	Amount               decimal.Decimal `json:"amount"`
	Note                 string          `json:"note" validate:"max=500"`
}

// TransferResponse resultado de una transferencia.
type TransferResponse struct {
	TransferGroupID    string           `json:"transfer_group_id"`
	Out                MovementResponse `json:"out"`
	In                 MovementResponse `json:"in"`
	OriginBalance      decimal.Decimal  `json:"origin_balance"`
	DestinationBalance decimal.Decimal  `json:"destination_balance"`
}

// ReconcileRequest body para POST /api/accounts/:id/reconcile (corte de caja).
type ReconcileRequest struct {
	PhysicalCount decimal.Decimal `json:"physical_count"`
	Note          string          `json:"note" validate:"max=500"`
}

// ReconcileResponse resultado del corte.
type ReconcileResponse struct {
	AccountID       string            `json:"account_id"`
	PreviousBalance decimal.Decimal   `json:"previous_balance"`
	PhysicalCount   decimal.Decimal   `json:"physical_count"`
	Difference      decimal.Decimal   `json:"difference"`
	Balance         decimal.Decimal   `json:"balance"`
	Adjustment      *MovementResponse `json:"adjustment,omitempty"`
}

// SummaryResponse resumen de corte de una cuenta en un rango de fechas.
type SummaryResponse struct {
	AccountID      string                     `json:"account_id"`
	From           time.Time                  `json:"from"`
	To             time.Time                  `json:"to"`
	OpeningBalance decimal.Decimal            `json:"opening_balance"`
	Income         decimal.Decimal            `json:"income"`
	Expense        decimal.Decimal            `json:"expense"`
	ClosingBalance decimal.Decimal            `json:"closing_balance"`
	ByKind         map[string]decimal.Decimal `json:"by_kind"`
	Count          int                        `json:"count"`
}
