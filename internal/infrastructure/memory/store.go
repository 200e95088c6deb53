// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con DB_DRIVER=memory para levantar la API sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// Store datos compartidos por los repositorios en memoria.
// Un único mutex serializa las transacciones (equivale a bloquear todas las filas).
type Store struct {
	mu          sync.Mutex
	products    map[string]*entity.Product
	arrivals    []*entity.ProductArrival
	corrections []*entity.StockCorrection
	users       map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
	}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Arrivals repositorio de llegadas fuera de transacción.
func (s *Store) Arrivals() *ArrivalRepo { return &ArrivalRepo{s: s} }

// Corrections repositorio de correcciones fuera de transacción.
func (s *Store) Corrections() *CorrectionRepo { return &CorrectionRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Dashboard consultas agregadas.
func (s *Store) Dashboard() *DashboardRepo { return &DashboardRepo{s: s} }

// TxRunner runner transaccional sobre el store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// do ejecuta fn con el lock tomado salvo que ya estemos dentro de una tx.
func (s *Store) do(inTx bool, fn func()) {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

type snapshot struct {
	products    map[string]*entity.Product
	arrivals    []*entity.ProductArrival
	corrections []*entity.StockCorrection
}

func (s *Store) snapshot() snapshot {
	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	return snapshot{
		products:    products,
		arrivals:    append([]*entity.ProductArrival(nil), s.arrivals...),
		corrections: append([]*entity.StockCorrection(nil), s.corrections...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.arrivals = snap.arrivals
	s.corrections = snap.corrections
}

// TxRunner ejecuta el callback con el store bloqueado y revierte los cambios si devuelve error.
type TxRunner struct {
	s *Store
}

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	arrivalRepo repository.ArrivalRepository,
	correctionRepo repository.CorrectionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	err := fn(
		&ProductRepo{s: r.s, inTx: true},
		&ArrivalRepo{s: r.s, inTx: true},
		&CorrectionRepo{s: r.s, inTx: true},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
