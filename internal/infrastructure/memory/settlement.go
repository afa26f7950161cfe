package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type giftcardRepository struct{ s *Store }

// Giftcards returns the giftcard repository of the store
func (s *Store) Giftcards() domainRepo.GiftcardRepository { return &giftcardRepository{s} }

func (r *giftcardRepository) Create(ctx context.Context, giftcard *entity.Giftcard) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		dup := false
		d.giftcards.each(func(g entity.Giftcard) bool {
			dup = g.Code == giftcard.Code
			return !dup
		})
		if dup {
			return ErrDuplicate
		}
		stampNew(&giftcard.Model, now)
		d.giftcards.put(giftcard.ID, *giftcard)
		return nil
	})
}

func (r *giftcardRepository) GetByCode(ctx context.Context, code string) (*entity.Giftcard, error) {
	var out *entity.Giftcard
	r.s.read(func(d *state) {
		d.giftcards.each(func(g entity.Giftcard) bool {
			if g.Code == code {
				out = &g
				return false
			}
			return true
		})
	})
	return out, nil
}

func (r *giftcardRepository) AtomicDebit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	ok := false
	err := r.s.write(ctx, func(d *state, now time.Time) error {
		g, found := d.giftcards.get(id)
		if !found || g.Amount.LessThan(amount) {
			return nil
		}
		g.Amount = g.Amount.Sub(amount)
		g.UpdatedAt = now
		d.giftcards.put(id, g)
		ok = true
		return nil
	})
	return ok, err
}

type transactionRepository struct{ s *Store }

// Transactions returns the transaction repository of the store
func (s *Store) Transactions() domainRepo.TransactionRepository { return &transactionRepository{s} }

func withPayments(d *state, t entity.Transaction) entity.Transaction {
	t.Payments = []entity.Payment{}
	d.payments.each(func(p entity.Payment) bool {
		if p.TransactionID == t.ID {
			t.Payments = append(t.Payments, p)
		}
		return true
	})
	return t
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&transaction.Model, now)
		for i := range transaction.Payments {
			p := &transaction.Payments[i]
			p.TransactionID = transaction.ID
			stampNew(&p.Model, now)
			d.payments.put(p.ID, *p)
		}
		row := *transaction
		row.Payments = nil
		d.transactions.put(transaction.ID, row)
		return nil
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var out *entity.Transaction
	r.s.read(func(d *state) {
		if t, ok := d.transactions.get(id); ok {
			t = withPayments(d, t)
			out = &t
		}
	})
	return out, nil
}

func (r *transactionRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Transaction, error) {
	out := []entity.Transaction{}
	r.s.read(func(d *state) {
		d.transactions.each(func(t entity.Transaction) bool {
			if t.OrderID == orderID {
				out = append(out, withPayments(d, t))
			}
			return true
		})
	})
	return out, nil
}

func (r *transactionRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]entity.Transaction, error) {
	out := []entity.Transaction{}
	r.s.read(func(d *state) {
		d.transactions.each(func(t entity.Transaction) bool {
			o, ok := d.orders.get(t.OrderID)
			if ok && o.BusinessID == businessID && !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
				out = append(out, withPayments(d, t))
			}
			return true
		})
	})
	return out, nil
}
