package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyRequest body para crear clientes y distribuidores.
type PartyRequest struct {
	ID    string `json:"id" validate:"omitempty,max=64"`
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone" validate:"max=50"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	TotalDebt decimal.Decimal `json:"total_debt"`
	CreatedAt time.Time       `json:"created_at"`
}

// DistributorResponse salida de un distribuidor.
type DistributorResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateSaleRequest body para POST /api/sales y /api/sales/preview.
// purchase_unit_price y freight_unit_price son opcionales: se toman de la orden o del flete por defecto.
type CreateSaleRequest struct {
	ClientID          string           `json:"client_id" validate:"required"`
	PurchaseOrderID   string           `json:"purchase_order_id"`
	Quantity          int64            `json:"quantity" validate:"gte=0"`
	SaleUnitPrice     decimal.Decimal  `json:"sale_unit_price"`
	PurchaseUnitPrice *decimal.Decimal `json:"purchase_unit_price,omitempty"`
	FreightUnitPrice  *decimal.Decimal `json:"freight_unit_price,omitempty"`
	AmountPaid        decimal.Decimal  `json:"amount_paid"`
	Note              string           `json:"note" validate:"max=500"`
}

// DistributionResponse reparto GYA.
type DistributionResponse struct {
	BucketCost    decimal.Decimal `json:"bucket_cost"`
	BucketFreight decimal.Decimal `json:"bucket_freight"`
	BucketProfit  decimal.Decimal `json:"bucket_profit"`
	Total         decimal.Decimal `json:"total"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID                string               `json:"id"`
	ClientID          string               `json:"client_id"`
	PurchaseOrderID   string               `json:"purchase_order_id,omitempty"`
	Quantity          int64                `json:"quantity"`
	SaleUnitPrice     decimal.Decimal      `json:"sale_unit_price"`
	PurchaseUnitPrice decimal.Decimal      `json:"purchase_unit_price"`
	FreightUnitPrice  decimal.Decimal      `json:"freight_unit_price"`
	Total             decimal.Decimal      `json:"total"`
	Distribution      DistributionResponse `json:"distribution"`
	AmountPaid        decimal.Decimal      `json:"amount_paid"`
	AmountRemaining   decimal.Decimal      `json:"amount_remaining"`
	PaymentState      string               `json:"payment_state"`
	Note              string               `json:"note,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// SaleResultResponse venta creada o abonada con los movimientos que generó.
type SaleResultResponse struct {
	Sale       SaleResponse       `json:"sale"`
	Movements  []MovementResponse `json:"movements"`
	Warnings   []string           `json:"warnings,omitempty"`
	ClientDebt decimal.Decimal    `json:"client_debt"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AdvanceRequest body para POST /api/sales/:id/advances.
type AdvanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note" validate:"max=500"`
}

// ProportionalResponse parte realizada del reparto según lo pagado.
type ProportionalResponse struct {
	CapitalCost    decimal.Decimal `json:"capital_cost"`
	CapitalFreight decimal.Decimal `json:"capital_freight"`
	CapitalProfit  decimal.Decimal `json:"capital_profit"`
	Proportion     decimal.Decimal `json:"proportion"`
}

// MarginsResponse márgenes en porcentaje.
type MarginsResponse struct {
	Net   decimal.Decimal `json:"net"`
	Gross decimal.Decimal `json:"gross"`
}

// SalePreviewResponse vista previa de una venta sin persistir nada.
type SalePreviewResponse struct {
	Distribution DistributionResponse `json:"distribution"`
	Realized     ProportionalResponse `json:"realized"`
	Margins      MarginsResponse      `json:"margins"`
	Valid        bool                 `json:"valid"`
	Errors       []string             `json:"errors"`
	Warnings     []string             `json:"warnings"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	DistributorID   string           `json:"distributor_id" validate:"required"`
	Quantity        int64            `json:"quantity" validate:"gt=0"`
	UnitCost        decimal.Decimal  `json:"unit_cost"`
	UnitFreight     *decimal.Decimal `json:"unit_freight,omitempty"`
	InitialPayment  decimal.Decimal  `json:"initial_payment"`
	SourceAccountID string           `json:"source_account_id"`
	Note            string           `json:"note" validate:"max=500"`
}

// PayDistributorRequest body para POST /api/purchase-orders/:id/payments.
type PayDistributorRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	SourceAccountID string          `json:"source_account_id" validate:"required"`
	Note            string          `json:"note" validate:"max=500"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID              string          `json:"id"`
	DistributorID   string          `json:"distributor_id"`
	QuantityOrdered int64           `json:"quantity_ordered"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	UnitFreight     decimal.Decimal `json:"unit_freight"`
	AmountOwed      decimal.Decimal `json:"amount_owed"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`
	StockRemaining  int64           `json:"stock_remaining"`
	State           string          `json:"state"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PurchaseOrderResultResponse orden creada o pagada.
type PurchaseOrderResultResponse struct {
	Order              PurchaseOrderResponse `json:"order"`
	Payment            *MovementResponse     `json:"payment,omitempty"`
	DistributorPending decimal.Decimal       `json:"distributor_pending"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
