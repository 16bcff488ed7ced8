package http

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/application/dto"
	"github.com/jhoicas/chronos-ledger/internal/application/reconciliation"
	"github.com/jhoicas/chronos-ledger/internal/application/sales"
	"github.com/jhoicas/chronos-ledger/internal/application/transfer"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/ledger"
)

func toAccountResponse(a *entity.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:           a.ID,
		Name:         a.Name,
		Kind:         a.Kind,
		Balance:      a.Balance,
		TotalIncome:  a.TotalIncome,
		TotalExpense: a.TotalExpense,
		Active:       a.Active,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                    m.ID,
		AccountID:             m.AccountID,
		Kind:                  string(m.Kind),
		Amount:                m.Amount,
		Timestamp:             m.Timestamp,
		Note:                  m.Note,
		CounterpartyAccountID: m.CounterpartyAccountID,
		TransferGroupID:       m.TransferGroupID,
		SaleID:                m.SaleID,
		PurchaseOrderID:       m.PurchaseOrderID,
		Bucket:                string(m.Bucket),
		CreatedBy:             m.CreatedBy,
	}
}

func toMovementList(list []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toTransferResponse(r *transfer.Result) dto.TransferResponse {
	return dto.TransferResponse{
		TransferGroupID:    r.TransferGroupID,
		Out:                toMovementResponse(r.Out),
		In:                 toMovementResponse(r.In),
		OriginBalance:      r.OriginBalance,
		DestinationBalance: r.DestinationBalance,
	}
}

func toReconcileResponse(r *reconciliation.Result) dto.ReconcileResponse {
	out := dto.ReconcileResponse{
		AccountID:       r.AccountID,
		PreviousBalance: r.PreviousBalance,
		PhysicalCount:   r.PhysicalCount,
		Difference:      r.Difference,
		Balance:         r.Balance,
	}
	if r.Adjustment != nil {
		adj := toMovementResponse(r.Adjustment)
		out.Adjustment = &adj
	}
	return out
}

func toSummaryResponse(s *ledger.Summary) dto.SummaryResponse {
	byKind := make(map[string]decimal.Decimal, len(s.ByKind))
	for k, v := range s.ByKind {
		byKind[string(k)] = v
	}
	return dto.SummaryResponse{
		AccountID:      s.AccountID,
		From:           s.From,
		To:             s.To,
		OpeningBalance: s.OpeningBalance,
		Income:         s.Income,
		Expense:        s.Expense,
		ClosingBalance: s.ClosingBalance,
		ByKind:         byKind,
		Count:          s.Count,
	}
}

func toDistributionResponse(d entity.Distribution) dto.DistributionResponse {
	return dto.DistributionResponse{
		BucketCost:    d.BucketCost,
		BucketFreight: d.BucketFreight,
		BucketProfit:  d.BucketProfit,
		Total:         d.Total,
	}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:                s.ID,
		ClientID:          s.ClientID,
		PurchaseOrderID:   s.PurchaseOrderID,
		Quantity:          s.Quantity,
		SaleUnitPrice:     s.SaleUnitPrice,
		PurchaseUnitPrice: s.PurchaseUnitPrice,
		FreightUnitPrice:  s.FreightUnitPrice,
		Total:             s.Total,
		Distribution:      toDistributionResponse(s.Distribution),
		AmountPaid:        s.AmountPaid,
		AmountRemaining:   s.AmountRemaining,
		PaymentState:      string(s.PaymentState),
		Note:              s.Note,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toSaleResultResponse(r *sales.SaleResult) dto.SaleResultResponse {
	return dto.SaleResultResponse{
		Sale:       toSaleResponse(r.Sale),
		Movements:  toMovementList(r.Movements),
		Warnings:   r.Warnings,
		ClientDebt: r.ClientDebt,
	}
}

func toPreviewResponse(p sales.Preview) dto.SalePreviewResponse {
	return dto.SalePreviewResponse{
		Distribution: toDistributionResponse(p.Distribution),
		Realized: dto.ProportionalResponse{
			CapitalCost:    p.Realized.CapitalCost,
			CapitalFreight: p.Realized.CapitalFreight,
			CapitalProfit:  p.Realized.CapitalProfit,
			Proportion:     p.Realized.Proportion,
		},
		Margins:  dto.MarginsResponse{Net: p.Margins.Net, Gross: p.Margins.Gross},
		Valid:    p.Validation.Valid,
		Errors:   p.Validation.Errors,
		Warnings: p.Validation.Warnings,
	}
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	return dto.PurchaseOrderResponse{
		ID:              o.ID,
		DistributorID:   o.DistributorID,
		QuantityOrdered: o.QuantityOrdered,
		UnitCost:        o.UnitCost,
		UnitFreight:     o.UnitFreight,
		AmountOwed:      o.AmountOwed,
		AmountPaid:      o.AmountPaid,
		AmountRemaining: o.AmountRemaining(),
		StockRemaining:  o.StockRemaining,
		State:           string(o.State),
		Note:            o.Note,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderResultResponse(r *sales.OrderResult) dto.PurchaseOrderResultResponse {
	out := dto.PurchaseOrderResultResponse{
		Order:              toPurchaseOrderResponse(r.Order),
		DistributorPending: r.DistributorPending,
	}
	if r.Payment != nil {
		p := toMovementResponse(r.Payment)
		out.Payment = &p
	}
	return out
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, TotalDebt: c.TotalDebt, CreatedAt: c.CreatedAt}
}

func toDistributorResponse(d *entity.Distributor) dto.DistributorResponse {
	return dto.DistributorResponse{ID: d.ID, Name: d.Name, Phone: d.Phone, PendingBalance: d.PendingBalance, CreatedAt: d.CreatedAt}
}
