// Package sales orquesta el flujo comercial: ventas con distribución GYA, abonos, órdenes de compra,
// pagos a distribuidores y recálculo de deudas de clientes y distribuidores.
package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/application/ports"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/ledger"
	"github.com/jhoicas/chronos-ledger/internal/domain/payment"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

// Service casos de uso de ventas y compras.
type Service struct {
	txRunner ports.TxRunner
	repos    repository.Repos
	ledger   *ledgerapp.Service
	buckets  entity.BucketAccounts
}

// NewService construye el servicio. buckets indica la cuenta destino de cada bucket GYA.
func NewService(txRunner ports.TxRunner, repos repository.Repos, ledger *ledgerapp.Service, buckets entity.BucketAccounts) *Service {
	return &Service{txRunner: txRunner, repos: repos, ledger: ledger, buckets: buckets}
}

// Buckets catálogo de cuentas de los buckets.
func (s *Service) Buckets() entity.BucketAccounts { return s.buckets }

// PartyInput alta de cliente o distribuidor.
type PartyInput struct {
	ID    string
	Name  string
	Phone string
}

func (in *PartyInput) normalize() error {
	in.Name = norm.NFC.String(strings.TrimSpace(in.Name))
	if in.Name == "" {
		return &domain.ValidationError{Errors: []string{"el nombre es obligatorio"}}
	}
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	return nil
}

// CreateClient registra un cliente con deuda cero.
func (s *Service) CreateClient(ctx context.Context, in PartyInput) (*entity.Client, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	now := s.ledger.Now()
	c := &entity.Client{ID: in.ID, Name: in.Name, Phone: in.Phone, TotalDebt: decimal.Zero, CreatedAt: now, UpdatedAt: now}
	if err := s.repos.Parties.CreateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateDistributor registra un distribuidor con saldo pendiente cero.
func (s *Service) CreateDistributor(ctx context.Context, in PartyInput) (*entity.Distributor, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	now := s.ledger.Now()
	d := &entity.Distributor{ID: in.ID, Name: in.Name, Phone: in.Phone, PendingBalance: decimal.Zero, CreatedAt: now, UpdatedAt: now}
	if err := s.repos.Parties.CreateDistributor(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetClient cliente o NotFoundError.
func (s *Service) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	c, err := s.repos.Parties.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound("cliente", id)
	}
	return c, nil
}

// GetDistributor distribuidor o NotFoundError.
func (s *Service) GetDistributor(ctx context.Context, id string) (*entity.Distributor, error) {
	d, err := s.repos.Parties.GetDistributor(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NewNotFound("distribuidor", id)
	}
	return d, nil
}

// postAdvance registra los movimientos de un abono distribuido. Montos cero se omiten; un bucket
// negativo (venta con pérdida) se registra como pago (egreso) por su valor absoluto.
func (s *Service) postAdvance(ctx context.Context, tx repository.Repos, sale *entity.Sale, pending []payment.PendingMovement, note, userID string, now time.Time) ([]*entity.Movement, error) {
	posted := make([]*entity.Movement, 0, len(pending))
	for _, p := range pending {
		if p.Amount.IsZero() {
			continue
		}
		kind := p.Kind
		amount := p.Amount
		if amount.IsNegative() {
			kind = entity.MovementPayment
			amount = amount.Abs()
		}
		m := &entity.Movement{
			AccountID: p.AccountID,
			Kind:      kind,
			Amount:    amount,
			Timestamp: now,
			Note:      note,
			SaleID:    sale.ID,
			Bucket:    p.Bucket,
			CreatedBy: userID,
		}
		if err := s.ledger.PostInTx(ctx, tx, m); err != nil {
			return nil, err
		}
		posted = append(posted, m)
	}
	return posted, nil
}

func refreshClientDebt(ctx context.Context, tx repository.Repos, clientID string) (decimal.Decimal, error) {
	sales, err := tx.Sales.ListByClient(ctx, clientID)
	if err != nil {
		return decimal.Zero, err
	}
	debt := ledger.ClientDebt(clientID, sales)
	return debt, tx.Parties.SetClientDebt(ctx, clientID, debt)
}

func refreshDistributorBalance(ctx context.Context, tx repository.Repos, distributorID string) (decimal.Decimal, error) {
	orders, err := tx.Orders.ListByDistributor(ctx, distributorID)
	if err != nil {
		return decimal.Zero, err
	}
	pending := ledger.DistributorDebt(distributorID, orders)
	return pending, tx.Parties.SetDistributorBalance(ctx, distributorID, pending)
}
