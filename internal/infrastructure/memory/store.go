// Package memory is an in-process implementation of the domain repositories.
// It backs the service tests and local runs without a database.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
)

// ErrDuplicate is returned when a unique column already holds the value
var ErrDuplicate = errors.New("memory: duplicate key")

type txKey struct{}

// table keeps rows by id and remembers insertion order
type table[T any] struct {
	rows map[uuid.UUID]T
	seq  []uuid.UUID
}

func newTable[T any]() table[T] {
	return table[T]{rows: map[uuid.UUID]T{}}
}

func (t *table[T]) put(id uuid.UUID, row T) {
	if _, ok := t.rows[id]; !ok {
		t.seq = append(t.seq, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) remove(id uuid.UUID) {
	delete(t.rows, id)
	for i, v := range t.seq {
		if v == id {
			t.seq = append(t.seq[:i:i], t.seq[i+1:]...)
			return
		}
	}
}

// each visits rows in insertion order until fn returns false
func (t *table[T]) each(fn func(row T) bool) {
	for _, id := range t.seq {
		row, ok := t.rows[id]
		if !ok {
			continue
		}
		if !fn(row) {
			return
		}
	}
}

func (t table[T]) clone() table[T] {
	c := table[T]{rows: make(map[uuid.UUID]T, len(t.rows))}
	for _, id := range t.seq {
		if row, ok := t.rows[id]; ok {
			c.rows[id] = row
			c.seq = append(c.seq, id)
		}
	}
	return c
}

type state struct {
	businesses       table[entity.Business]
	users            table[entity.User]
	products         table[entity.Product]
	stocks           map[uuid.UUID]entity.ProductStock
	services         table[entity.Service]
	productGroups    table[entity.ProductGroup]
	serviceGroups    table[entity.ServiceGroup]
	productMembers   map[uuid.UUID][]uuid.UUID
	serviceMembers   map[uuid.UUID][]uuid.UUID
	discounts        table[entity.Discount]
	taxes            table[entity.Tax]
	appliedDiscounts table[entity.AppliedDiscount]
	appliedTaxes     table[entity.AppliedTax]
	giftcards        table[entity.Giftcard]
	orders           table[entity.Order]
	items            table[entity.OrderItem]
	transactions     table[entity.Transaction]
	payments         table[entity.Payment]
	idempotency      map[string]entity.IdempotencyRecord
}

func newState() *state {
	return &state{
		businesses:       newTable[entity.Business](),
		users:            newTable[entity.User](),
		products:         newTable[entity.Product](),
		stocks:           map[uuid.UUID]entity.ProductStock{},
		services:         newTable[entity.Service](),
		productGroups:    newTable[entity.ProductGroup](),
		serviceGroups:    newTable[entity.ServiceGroup](),
		productMembers:   map[uuid.UUID][]uuid.UUID{},
		serviceMembers:   map[uuid.UUID][]uuid.UUID{},
		discounts:        newTable[entity.Discount](),
		taxes:            newTable[entity.Tax](),
		appliedDiscounts: newTable[entity.AppliedDiscount](),
		appliedTaxes:     newTable[entity.AppliedTax](),
		giftcards:        newTable[entity.Giftcard](),
		orders:           newTable[entity.Order](),
		items:            newTable[entity.OrderItem](),
		transactions:     newTable[entity.Transaction](),
		payments:         newTable[entity.Payment](),
		idempotency:      map[string]entity.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	c := &state{
		businesses:       s.businesses.clone(),
		users:            s.users.clone(),
		products:         s.products.clone(),
		stocks:           make(map[uuid.UUID]entity.ProductStock, len(s.stocks)),
		services:         s.services.clone(),
		productGroups:    s.productGroups.clone(),
		serviceGroups:    s.serviceGroups.clone(),
		productMembers:   cloneMembers(s.productMembers),
		serviceMembers:   cloneMembers(s.serviceMembers),
		discounts:        s.discounts.clone(),
		taxes:            s.taxes.clone(),
		appliedDiscounts: s.appliedDiscounts.clone(),
		appliedTaxes:     s.appliedTaxes.clone(),
		giftcards:        s.giftcards.clone(),
		orders:           s.orders.clone(),
		items:            s.items.clone(),
		transactions:     s.transactions.clone(),
		payments:         s.payments.clone(),
		idempotency:      make(map[string]entity.IdempotencyRecord, len(s.idempotency)),
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

func cloneMembers(m map[uuid.UUID][]uuid.UUID) map[uuid.UUID][]uuid.UUID {
	c := make(map[uuid.UUID][]uuid.UUID, len(m))
	for k, v := range m {
		c[k] = append([]uuid.UUID(nil), v...)
	}
	return c
}

// Store holds every table in memory. Units of work run one at a time and
// restore a snapshot of all tables when they fail; writes outside a unit of
// work are queued behind it.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *state
	now  func() time.Time
}

var _ domainRepo.TxManager = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the clock used for timestamps
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// WithinTransaction runs fn exclusively and rolls every table back if fn fails
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) read(fn func(d *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// write applies fn to the live tables. Outside a unit of work it waits for
// any running one to finish, so a rollback cannot discard it.
func (s *Store) write(ctx context.Context, fn func(d *state, now time.Time) error) error {
	if ctx.Value(txKey{}) == nil {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data, s.now())
}

func stampNew(m *entity.Model, now time.Time) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// sortByCreated orders rows by creation time keeping insertion order for ties
func sortByCreated[T any](rows []T, created func(T) time.Time, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return created(rows[i]).After(created(rows[j]))
		}
		return created(rows[i]).Before(created(rows[j]))
	})
}
