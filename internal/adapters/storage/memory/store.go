package memory

import (
	"context"
	"sync"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/bookings"
	"pet-adoption/internal/domain/favorites"
	"pet-adoption/internal/domain/history"
	"pet-adoption/internal/domain/medicalrecords"
	"pet-adoption/internal/domain/payments"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
)

type txKey struct{}

// Store guarda todas las entidades bajo un único mutex.
// WithTx toma el mutex durante toda la transacción de workflow. Cada escritura
// hecha dentro de la tx deja una entrada en el undo log; si fn falla se
// deshacen en orden inverso. Los repos son vistas sobre el Store.
type Store struct {
	mu   sync.Mutex
	undo []func()

	shelters     map[string]shelters.Shelter
	pets         map[string]pets.Pet
	applications map[string]applications.Application
	bookings     map[string]bookings.Booking
	payments     map[string]payments.Payment
	paymentsByTx map[string]string
	favorites    map[string]favorites.Favorite // key: user|pet
	records      map[string]medicalrecords.Record
	history      []history.Entry
}

func NewStore() *Store {
	return &Store{
		shelters:     make(map[string]shelters.Shelter),
		pets:         make(map[string]pets.Pet),
		applications: make(map[string]applications.Application),
		bookings:     make(map[string]bookings.Booking),
		payments:     make(map[string]payments.Payment),
		paymentsByTx: make(map[string]string),
		favorites:    make(map[string]favorites.Favorite),
		records:      make(map[string]medicalrecords.Record),
	}
}

// put escribe m[k] = v. Dentro de una tx registra el valor anterior.
func put[K comparable, V any](ctx context.Context, s *Store, m map[K]V, k K, v V) {
	if s.inTx(ctx) {
		old, existed := m[k]
		s.undo = append(s.undo, func() {
			if existed {
				m[k] = old
			} else {
				delete(m, k)
			}
		})
	}
	m[k] = v
}

// remove borra m[k]. Dentro de una tx registra cómo restaurarlo.
func remove[K comparable, V any](ctx context.Context, s *Store, m map[K]V, k K) {
	old, existed := m[k]
	if !existed {
		return
	}
	if s.inTx(ctx) {
		s.undo = append(s.undo, func() { m[k] = old })
	}
	delete(m, k)
}

func (s *Store) appendHistory(ctx context.Context, e history.Entry) {
	if s.inTx(ctx) {
		n := len(s.history)
		s.undo = append(s.undo, func() { s.history = s.history[:n] })
	}
	s.history = append(s.history, e)
}

func (s *Store) rollback() {
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i]()
	}
}

// WithTx implementa workflow.TxRunner. Las llamadas anidadas reusan la tx abierta.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	s.undo = nil
	committed := false
	defer func() {
		if !committed {
			s.rollback()
		}
		s.undo = nil
		s.mu.Unlock()
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(*Store)
	return v == s
}

// lock toma el mutex salvo que ctx ya esté dentro de una tx de este Store.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
