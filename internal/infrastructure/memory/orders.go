package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/pkg/pagination"
)

type orderRepository struct{ s *Store }

// Orders returns the order repository of the store
func (s *Store) Orders() domainRepo.OrderRepository { return &orderRepository{s} }

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&order.Model, now)
		row := *order
		row.Items = nil
		d.orders.put(order.ID, row)
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var out *entity.Order
	r.s.read(func(d *state) {
		if o, ok := d.orders.get(id); ok {
			out = &o
		}
	})
	return out, nil
}

func (r *orderRepository) List(ctx context.Context, businessID uuid.UUID, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	if params == nil {
		params = &domainRepo.OrderFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	var matched []entity.Order
	r.s.read(func(d *state) {
		d.orders.each(func(o entity.Order) bool {
			switch {
			case o.BusinessID != businessID:
			case params.Status != nil && o.Status != *params.Status:
			case params.StartDate != nil && o.CreatedAt.Before(*params.StartDate):
			case params.EndDate != nil && !o.CreatedAt.Before(*params.EndDate):
			default:
				matched = append(matched, o)
			}
			return true
		})
	})

	sortByCreated(matched, func(o entity.Order) time.Time { return o.CreatedAt }, !strings.EqualFold(params.SortOrder, "asc"))

	total := int64(len(matched))
	start := params.Pagination.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(d *state, _ time.Time) error {
		d.orders.remove(id)
		return nil
	})
}

func (r *orderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error) {
	ok := false
	err := r.s.write(ctx, func(d *state, now time.Time) error {
		o, found := d.orders.get(id)
		if !found || o.Status != from {
			return nil
		}
		o.Status = to
		o.UpdatedAt = now
		d.orders.put(id, o)
		ok = true
		return nil
	})
	return ok, err
}

type orderItemRepository struct{ s *Store }

// OrderItems returns the order item repository of the store
func (s *Store) OrderItems() domainRepo.OrderItemRepository { return &orderItemRepository{s} }

// withApplied attaches the applied records of the item, never nil
func withApplied(d *state, item entity.OrderItem) entity.OrderItem {
	item.AppliedDiscounts = []entity.AppliedDiscount{}
	item.AppliedTaxes = []entity.AppliedTax{}
	d.appliedDiscounts.each(func(a entity.AppliedDiscount) bool {
		if a.OrderItemID == item.ID {
			item.AppliedDiscounts = append(item.AppliedDiscounts, a)
		}
		return true
	})
	d.appliedTaxes.each(func(a entity.AppliedTax) bool {
		if a.OrderItemID == item.ID {
			item.AppliedTaxes = append(item.AppliedTaxes, a)
		}
		return true
	})
	return item
}

func (r *orderItemRepository) Create(ctx context.Context, item *entity.OrderItem) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&item.Model, now)
		row := *item
		row.AppliedDiscounts = nil
		row.AppliedTaxes = nil
		d.items.put(item.ID, row)
		return nil
	})
}

func (r *orderItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	var out *entity.OrderItem
	r.s.read(func(d *state) {
		if it, ok := d.items.get(id); ok {
			it = withApplied(d, it)
			out = &it
		}
	})
	return out, nil
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	items := []entity.OrderItem{}
	r.s.read(func(d *state) {
		d.items.each(func(it entity.OrderItem) bool {
			if it.OrderID == orderID {
				items = append(items, withApplied(d, it))
			}
			return true
		})
	})
	return items, nil
}

func (r *orderItemRepository) GetByIDs(ctx context.Context, orderID uuid.UUID, ids []uuid.UUID) ([]entity.OrderItem, error) {
	items := []entity.OrderItem{}
	r.s.read(func(d *state) {
		d.items.each(func(it entity.OrderItem) bool {
			if it.OrderID == orderID && containsID(ids, it.ID) {
				items = append(items, withApplied(d, it))
			}
			return true
		})
	})
	return items, nil
}

func (r *orderItemRepository) Update(ctx context.Context, item *entity.OrderItem) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		row, ok := d.items.get(item.ID)
		if !ok {
			return nil
		}
		row.Type = item.Type
		row.Price = item.Price
		row.Quantity = item.Quantity
		row.ProductID = item.ProductID
		row.ServiceID = item.ServiceID
		row.PriceDiscounted = item.PriceDiscounted
		row.UpdatedBy = item.UpdatedBy
		row.UpdatedAt = now
		d.items.put(row.ID, row)
		return nil
	})
}

func (r *orderItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(d *state, _ time.Time) error {
		d.items.remove(id)
		return nil
	})
}

func (r *orderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.s.write(ctx, func(d *state, _ time.Time) error {
		d.items.each(func(it entity.OrderItem) bool {
			if it.OrderID == orderID {
				d.items.remove(it.ID)
			}
			return true
		})
		return nil
	})
}

func (r *orderItemRepository) LinkTransaction(ctx context.Context, ids []uuid.UUID, transactionID uuid.UUID) (int64, error) {
	var linked int64
	err := r.s.write(ctx, func(d *state, now time.Time) error {
		for _, id := range ids {
			it, ok := d.items.get(id)
			if !ok || it.IsPaid() {
				continue
			}
			txID := transactionID
			it.TransactionID = &txID
			it.UpdatedAt = now
			d.items.put(id, it)
			linked++
		}
		return nil
	})
	return linked, err
}

func (r *orderItemRepository) CountUnpaid(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var count int64
	r.s.read(func(d *state) {
		d.items.each(func(it entity.OrderItem) bool {
			if it.OrderID == orderID && !it.IsPaid() {
				count++
			}
			return true
		})
	})
	return count, nil
}
