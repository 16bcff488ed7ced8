package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client cliente; TotalDebt es derivado (Σ AmountRemaining de sus ventas activas).
type Client struct {
	ID        string
	Name      string
	Phone     string
	TotalDebt decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Distributor proveedor; PendingBalance es derivado (Σ pendiente de sus órdenes activas).
type Distributor struct {
	ID             string
	Name           string
	Phone          string
	PendingBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
