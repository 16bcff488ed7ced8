package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

// PartyDebt deuda derivada de un cliente o distribuidor.
type PartyDebt struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// DebtsReport resultado del recálculo de deudas.
type DebtsReport struct {
	Clients      []PartyDebt `json:"clients"`
	Distributors []PartyDebt `json:"distributors"`
}

// RecomputeDebts recalcula la deuda de todos los clientes y el saldo pendiente de todos los
// distribuidores desde sus ventas y órdenes. Idempotente.
func (s *Service) RecomputeDebts(ctx context.Context) (*DebtsReport, error) {
	report := &DebtsReport{}
	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		report.Clients = nil
		report.Distributors = nil
		clients, err := tx.Parties.ListClients(ctx)
		if err != nil {
			return err
		}
		for _, c := range clients {
			debt, err := refreshClientDebt(ctx, tx, c.ID)
			if err != nil {
				return err
			}
			report.Clients = append(report.Clients, PartyDebt{ID: c.ID, Name: c.Name, Amount: debt})
		}
		distributors, err := tx.Parties.ListDistributors(ctx)
		if err != nil {
			return err
		}
		for _, d := range distributors {
			pending, err := refreshDistributorBalance(ctx, tx, d.ID)
			if err != nil {
				return err
			}
			report.Distributors = append(report.Distributors, PartyDebt{ID: d.ID, Name: d.Name, Amount: pending})
		}
		return nil
	})
	if err != nil {
		s.ledger.Reject("recompute_debts", err)
		return nil, err
	}
	return report, nil
}
