package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
)

type discountRepository struct{ s *Store }

// Discounts returns the discount repository of the store
func (s *Store) Discounts() domainRepo.DiscountRepository { return &discountRepository{s} }

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&discount.Model, now)
		d.discounts.put(discount.ID, *discount)
		return nil
	})
}

func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	var out *entity.Discount
	r.s.read(func(d *state) {
		if dc, ok := d.discounts.get(id); ok {
			out = &dc
		}
	})
	return out, nil
}

func (r *discountRepository) FindBestForCategory(ctx context.Context, categoryID uuid.UUID, now time.Time) (*entity.Discount, error) {
	var best *entity.Discount
	r.s.read(func(d *state) {
		d.discounts.each(func(dc entity.Discount) bool {
			if dc.CategoryID == nil || *dc.CategoryID != categoryID || !dc.IsApplicable(now) {
				return true
			}
			if best == nil ||
				dc.Amount.GreaterThan(best.Amount) ||
				(dc.Amount.Equal(best.Amount) && dc.ID.String() < best.ID.String()) {
				candidate := dc
				best = &candidate
			}
			return true
		})
	})
	return best, nil
}

type taxRepository struct{ s *Store }

// Taxes returns the tax repository of the store
func (s *Store) Taxes() domainRepo.TaxRepository { return &taxRepository{s} }

func (r *taxRepository) Create(ctx context.Context, tax *entity.Tax) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&tax.Model, now)
		d.taxes.put(tax.ID, *tax)
		return nil
	})
}

func (r *taxRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	var out *entity.Tax
	r.s.read(func(d *state) {
		if t, ok := d.taxes.get(id); ok {
			out = &t
		}
	})
	return out, nil
}

func (r *taxRepository) FindFirstForCategory(ctx context.Context, categoryID uuid.UUID) (*entity.Tax, error) {
	var out *entity.Tax
	r.s.read(func(d *state) {
		d.taxes.each(func(t entity.Tax) bool {
			if t.CategoryID != nil && *t.CategoryID == categoryID {
				out = &t
				return false
			}
			return true
		})
	})
	return out, nil
}

type appliedPricingRepository struct{ s *Store }

// AppliedPricing returns the applied discount/tax repository of the store
func (s *Store) AppliedPricing() domainRepo.AppliedPricingRepository {
	return &appliedPricingRepository{s}
}

func (r *appliedPricingRepository) CreateDiscount(ctx context.Context, applied *entity.AppliedDiscount) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&applied.Model, now)
		d.appliedDiscounts.put(applied.ID, *applied)
		return nil
	})
}

func (r *appliedPricingRepository) CreateTax(ctx context.Context, applied *entity.AppliedTax) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&applied.Model, now)
		d.appliedTaxes.put(applied.ID, *applied)
		return nil
	})
}

func (r *appliedPricingRepository) DeleteByOrderItemID(ctx context.Context, orderItemID uuid.UUID) error {
	return r.s.write(ctx, func(d *state, _ time.Time) error {
		d.appliedDiscounts.each(func(a entity.AppliedDiscount) bool {
			if a.OrderItemID == orderItemID {
				d.appliedDiscounts.remove(a.ID)
			}
			return true
		})
		d.appliedTaxes.each(func(a entity.AppliedTax) bool {
			if a.OrderItemID == orderItemID {
				d.appliedTaxes.remove(a.ID)
			}
			return true
		})
		return nil
	})
}

func (r *appliedPricingRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.s.write(ctx, func(d *state, _ time.Time) error {
		d.appliedDiscounts.each(func(a entity.AppliedDiscount) bool {
			if a.OrderID == orderID {
				d.appliedDiscounts.remove(a.ID)
			}
			return true
		})
		d.appliedTaxes.each(func(a entity.AppliedTax) bool {
			if a.OrderID == orderID {
				d.appliedTaxes.remove(a.ID)
			}
			return true
		})
		return nil
	})
}
