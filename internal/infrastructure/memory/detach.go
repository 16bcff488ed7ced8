package memory

import (
	"strings"

	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

// Los registros guardados no comparten memoria con el llamador: fiber entrega params y headers
// sobre buffers que se reutilizan entre peticiones.

func detachAccount(a entity.Account) entity.Account {
	a.ID = strings.Clone(a.ID)
	a.Name = strings.Clone(a.Name)
	a.Kind = strings.Clone(a.Kind)
	return a
}

func detachMovement(m entity.Movement) entity.Movement {
	m.ID = strings.Clone(m.ID)
	m.AccountID = strings.Clone(m.AccountID)
	m.Kind = entity.MovementKind(strings.Clone(string(m.Kind)))
	m.Note = strings.Clone(m.Note)
	m.CounterpartyAccountID = strings.Clone(m.CounterpartyAccountID)
	m.TransferGroupID = strings.Clone(m.TransferGroupID)
	m.SaleID = strings.Clone(m.SaleID)
	m.PurchaseOrderID = strings.Clone(m.PurchaseOrderID)
	m.CreatedBy = strings.Clone(m.CreatedBy)
	return m
}

func detachSale(s entity.Sale) entity.Sale {
	s.ID = strings.Clone(s.ID)
	s.ClientID = strings.Clone(s.ClientID)
	s.PurchaseOrderID = strings.Clone(s.PurchaseOrderID)
	s.Note = strings.Clone(s.Note)
	return s
}

func detachOrder(o entity.PurchaseOrder) entity.PurchaseOrder {
	o.ID = strings.Clone(o.ID)
	o.DistributorID = strings.Clone(o.DistributorID)
	o.Note = strings.Clone(o.Note)
	return o
}

func detachClient(c entity.Client) entity.Client {
	c.ID = strings.Clone(c.ID)
	c.Name = strings.Clone(c.Name)
	c.Phone = strings.Clone(c.Phone)
	return c
}

func detachDistributor(d entity.Distributor) entity.Distributor {
	d.ID = strings.Clone(d.ID)
	d.Name = strings.Clone(d.Name)
	d.Phone = strings.Clone(d.Phone)
	return d
}
