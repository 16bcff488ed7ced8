// Package memory implementa los puertos de repositorio en memoria (tests y APP_STORAGE=memory).
// Run serializa las transacciones: trabaja sobre una copia del estado y la publica solo si fn
// termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/chronos-ledger/internal/application/ports"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	accounts     map[string]entity.Account
	movements    []entity.Movement
	sales        map[string]entity.Sale
	orders       map[string]entity.PurchaseOrder
	clients      map[string]entity.Client
	distributors map[string]entity.Distributor
}

func newState() *state {
	return &state{
		accounts:     map[string]entity.Account{},
		sales:        map[string]entity.Sale{},
		orders:       map[string]entity.PurchaseOrder{},
		clients:      map[string]entity.Client{},
		distributors: map[string]entity.Distributor{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	c.movements = append(make([]entity.Movement, 0, len(s.movements)+4), s.movements...)
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.distributors {
		c.distributors[k] = v
	}
	return c
}

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// binding ata repositorios al estado compartido (st nil, con lock por llamada) o a la copia de una tx.
type binding struct {
	store *Store
	st    *state
}

func (b *binding) do(fn func(st *state) error) error {
	if b.st != nil {
		return fn(b.st)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}

func bind(b *binding) repository.Repos {
	return repository.Repos{
		Accounts:  &AccountRepo{b: b},
		Movements: &MovementRepo{b: b},
		Sales:     &SaleRepo{b: b},
		Orders:    &PurchaseOrderRepo{b: b},
		Parties:   &PartyRepo{b: b},
	}
}

// Repos repositorios fuera de transacción.
func (s *Store) Repos() repository.Repos {
	return bind(&binding{store: s})
}

// Run ejecuta fn con repos sobre una copia del estado; la copia reemplaza al estado solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(tx repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(bind(&binding{store: s, st: work})); err != nil {
		return err
	}
	s.st = work
	return nil
}
