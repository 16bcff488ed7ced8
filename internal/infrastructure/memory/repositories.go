package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/ledger"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

var (
	_ repository.AccountRepository       = (*AccountRepo)(nil)
	_ repository.MovementRepository      = (*MovementRepo)(nil)
	_ repository.SaleRepository          = (*SaleRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
	_ repository.PartyRepository         = (*PartyRepo)(nil)
)

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuentas
// ──────────────────────────────────────────────────────────────────────────────

// AccountRepo cuentas en memoria.
type AccountRepo struct{ b *binding }

func (r *AccountRepo) Create(_ context.Context, a *entity.Account) error {
	return r.b.do(func(st *state) error {
		if _, ok := st.accounts[a.ID]; ok {
			return domain.ErrDuplicate
		}
		v := detachAccount(*a)
		st.accounts[v.ID] = v
		return nil
	})
}

func (r *AccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	var out *entity.Account
	err := r.b.do(func(st *state) error {
		if a, ok := st.accounts[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *AccountRepo) List(_ context.Context) ([]*entity.Account, error) {
	var out []*entity.Account
	err := r.b.do(func(st *state) error {
		for _, a := range st.accounts {
			a := a
			out = append(out, &a)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *AccountRepo) GetForUpdate(_ context.Context, ids ...string) (map[string]*entity.Account, error) {
	out := make(map[string]*entity.Account, len(ids))
	err := r.b.do(func(st *state) error {
		for _, id := range ids {
			if a, ok := st.accounts[id]; ok {
				out[id] = &a
			}
		}
		return nil
	})
	return out, err
}

func (r *AccountRepo) ApplyDelta(_ context.Context, id string, d ledger.Delta) error {
	return r.b.do(func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return domain.NewNotFound("cuenta", id)
		}
		a.Balance = a.Balance.Add(d.Balance)
		a.TotalIncome = a.TotalIncome.Add(d.Income)
		a.TotalExpense = a.TotalExpense.Add(d.Expense)
		st.accounts[a.ID] = a
		return nil
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

// MovementRepo movimientos en memoria, en orden de inserción.
type MovementRepo struct{ b *binding }

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.b.do(func(st *state) error {
		for _, existing := range st.movements {
			if existing.ID == m.ID {
				return domain.ErrDuplicate
			}
		}
		st.movements = append(st.movements, detachMovement(*m))
		return nil
	})
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.b.do(func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				m := m
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) ListByTransferGroup(_ context.Context, groupID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.b.do(func(st *state) error {
		for _, m := range st.movements {
			if groupID != "" && m.TransferGroupID == groupID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

// List más recientes primero.
func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.b.do(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.AccountID != "" && m.AccountID != f.AccountID {
				continue
			}
			if f.From != nil && m.Timestamp.Before(*f.From) {
				continue
			}
			if f.To != nil && m.Timestamp.After(*f.To) {
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return page(out, f.Limit, f.Offset), nil
}

func (r *MovementRepo) ListAllByAccount(_ context.Context, accountID string) ([]entity.Movement, error) {
	var out []entity.Movement
	err := r.b.do(func(st *state) error {
		for _, m := range st.movements {
			if m.AccountID == accountID {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) Delete(_ context.Context, id string) error {
	return r.b.do(func(st *state) error {
		for i, m := range st.movements {
			if m.ID == id {
				st.movements = append(st.movements[:i:i], st.movements[i+1:]...)
				return nil
			}
		}
		return domain.NewNotFound("movimiento", id)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

// SaleRepo ventas en memoria.
type SaleRepo struct{ b *binding }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.b.do(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		v := detachSale(*s)
		st.sales[v.ID] = v
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.b.do(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) UpdatePayment(_ context.Context, s *entity.Sale) error {
	return r.b.do(func(st *state) error {
		cur, ok := st.sales[s.ID]
		if !ok {
			return domain.NewNotFound("venta", s.ID)
		}
		cur.AmountPaid = s.AmountPaid
		cur.AmountRemaining = s.AmountRemaining
		cur.PaymentState = s.PaymentState
		cur.UpdatedAt = s.UpdatedAt
		st.sales[cur.ID] = cur
		return nil
	})
}

func (r *SaleRepo) filter(keep func(entity.Sale) bool) ([]entity.Sale, error) {
	var out []entity.Sale
	err := r.b.do(func(st *state) error {
		for _, s := range st.sales {
			if keep(s) {
				out = append(out, s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}

func (r *SaleRepo) ListByPurchaseOrder(_ context.Context, purchaseOrderID string) ([]entity.Sale, error) {
	return r.filter(func(s entity.Sale) bool { return s.PurchaseOrderID == purchaseOrderID })
}

func (r *SaleRepo) ListByClient(_ context.Context, clientID string) ([]entity.Sale, error) {
	return r.filter(func(s entity.Sale) bool { return s.ClientID == clientID })
}

func (r *SaleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	all, err := r.filter(func(entity.Sale) bool { return true })
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Sale, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, &all[i])
	}
	return page(out, limit, offset), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct{ b *binding }

func (r *PurchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	return r.b.do(func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		v := detachOrder(*o)
		st.orders[v.ID] = v
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.b.do(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	return r.b.do(func(st *state) error {
		cur, ok := st.orders[o.ID]
		if !ok {
			return domain.NewNotFound("orden de compra", o.ID)
		}
		st.orders[cur.ID] = detachOrder(*o)
		return nil
	})
}

func (r *PurchaseOrderRepo) ListByDistributor(_ context.Context, distributorID string) ([]entity.PurchaseOrder, error) {
	var out []entity.PurchaseOrder
	err := r.b.do(func(st *state) error {
		for _, o := range st.orders {
			if o.DistributorID == distributorID {
				out = append(out, o)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}

func (r *PurchaseOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	err := r.b.do(func(st *state) error {
		for _, o := range st.orders {
			o := o
			out = append(out, &o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes y distribuidores
// ──────────────────────────────────────────────────────────────────────────────

// PartyRepo clientes y distribuidores en memoria.
type PartyRepo struct{ b *binding }

func (r *PartyRepo) CreateClient(_ context.Context, c *entity.Client) error {
	return r.b.do(func(st *state) error {
		if _, ok := st.clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		v := detachClient(*c)
		st.clients[v.ID] = v
		return nil
	})
}

func (r *PartyRepo) GetClient(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.b.do(func(st *state) error {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *PartyRepo) ListClients(_ context.Context) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.b.do(func(st *state) error {
		for _, c := range st.clients {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *PartyRepo) SetClientDebt(_ context.Context, id string, debt decimal.Decimal) error {
	return r.b.do(func(st *state) error {
		c, ok := st.clients[id]
		if !ok {
			return domain.NewNotFound("cliente", id)
		}
		c.TotalDebt = debt
		st.clients[c.ID] = c
		return nil
	})
}

func (r *PartyRepo) CreateDistributor(_ context.Context, d *entity.Distributor) error {
	return r.b.do(func(st *state) error {
		if _, ok := st.distributors[d.ID]; ok {
			return domain.ErrDuplicate
		}
		v := detachDistributor(*d)
		st.distributors[v.ID] = v
		return nil
	})
}

func (r *PartyRepo) GetDistributor(_ context.Context, id string) (*entity.Distributor, error) {
	var out *entity.Distributor
	err := r.b.do(func(st *state) error {
		if d, ok := st.distributors[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *PartyRepo) ListDistributors(_ context.Context) ([]*entity.Distributor, error) {
	var out []*entity.Distributor
	err := r.b.do(func(st *state) error {
		for _, d := range st.distributors {
			d := d
			out = append(out, &d)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *PartyRepo) SetDistributorBalance(_ context.Context, id string, pending decimal.Decimal) error {
	return r.b.do(func(st *state) error {
		d, ok := st.distributors[id]
		if !ok {
			return domain.NewNotFound("distribuidor", id)
		}
		d.PendingBalance = pending
		st.distributors[d.ID] = d
		return nil
	})
}
