package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
)

type productRepository struct{ s *Store }

// Products returns the product repository of the store
func (s *Store) Products() domainRepo.ProductRepository { return &productRepository{s} }

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&product.Model, now)
		if product.Stock != nil {
			product.Stock.ProductID = product.ID
			stampNew(&product.Stock.Model, now)
			d.stocks[product.ID] = *product.Stock
		}
		row := *product
		row.Stock = nil
		d.products.put(product.ID, row)
		return nil
	})
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var out *entity.Product
	r.s.read(func(d *state) {
		p, ok := d.products.get(id)
		if !ok {
			return
		}
		if st, ok := d.stocks[id]; ok {
			p.Stock = &st
		}
		out = &p
	})
	return out, nil
}

func (r *productRepository) GetStock(ctx context.Context, productID uuid.UUID) (*entity.ProductStock, error) {
	var out *entity.ProductStock
	r.s.read(func(d *state) {
		if st, ok := d.stocks[productID]; ok {
			out = &st
		}
	})
	return out, nil
}

func (r *productRepository) SetStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		st, ok := d.stocks[productID]
		if !ok {
			st = entity.ProductStock{ProductID: productID}
			stampNew(&st.Model, now)
		}
		st.Quantity = quantity
		st.UpdatedAt = now
		d.stocks[productID] = st
		return nil
	})
}

func (r *productRepository) AtomicDecrementStock(ctx context.Context, productID uuid.UUID, amount int) (bool, error) {
	ok := false
	err := r.s.write(ctx, func(d *state, now time.Time) error {
		st, found := d.stocks[productID]
		if !found || st.Quantity < amount {
			return nil
		}
		st.Quantity -= amount
		st.UpdatedAt = now
		d.stocks[productID] = st
		ok = true
		return nil
	})
	return ok, err
}

func (r *productRepository) IncrementStock(ctx context.Context, productID uuid.UUID, amount int) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		st, ok := d.stocks[productID]
		if !ok {
			st = entity.ProductStock{ProductID: productID}
			stampNew(&st.Model, now)
		}
		st.Quantity += amount
		st.UpdatedAt = now
		d.stocks[productID] = st
		return nil
	})
}

type serviceRepository struct{ s *Store }

// Services returns the service repository of the store
func (s *Store) Services() domainRepo.ServiceRepository { return &serviceRepository{s} }

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&service.Model, now)
		d.services.put(service.ID, *service)
		return nil
	})
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var out *entity.Service
	r.s.read(func(d *state) {
		if sv, ok := d.services.get(id); ok {
			out = &sv
		}
	})
	return out, nil
}

type categoryRepository struct{ s *Store }

// Categories returns the product/service group repository of the store
func (s *Store) Categories() domainRepo.CategoryRepository { return &categoryRepository{s} }

func (r *categoryRepository) CreateProductGroup(ctx context.Context, group *entity.ProductGroup, productIDs []uuid.UUID) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&group.Model, now)
		row := *group
		row.Products = nil
		d.productGroups.put(group.ID, row)
		d.productMembers[group.ID] = append([]uuid.UUID(nil), productIDs...)
		return nil
	})
}

func (r *categoryRepository) CreateServiceGroup(ctx context.Context, group *entity.ServiceGroup, serviceIDs []uuid.UUID) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&group.Model, now)
		row := *group
		row.Services = nil
		d.serviceGroups.put(group.ID, row)
		d.serviceMembers[group.ID] = append([]uuid.UUID(nil), serviceIDs...)
		return nil
	})
}

func (r *categoryRepository) GetProductGroup(ctx context.Context, id uuid.UUID) (*entity.ProductGroup, error) {
	var out *entity.ProductGroup
	r.s.read(func(d *state) {
		g, ok := d.productGroups.get(id)
		if !ok {
			return
		}
		for _, pid := range d.productMembers[id] {
			if p, ok := d.products.get(pid); ok {
				g.Products = append(g.Products, p)
			}
		}
		out = &g
	})
	return out, nil
}

func (r *categoryRepository) GetServiceGroup(ctx context.Context, id uuid.UUID) (*entity.ServiceGroup, error) {
	var out *entity.ServiceGroup
	r.s.read(func(d *state) {
		g, ok := d.serviceGroups.get(id)
		if !ok {
			return
		}
		for _, sid := range d.serviceMembers[id] {
			if sv, ok := d.services.get(sid); ok {
				g.Services = append(g.Services, sv)
			}
		}
		out = &g
	})
	return out, nil
}

func (r *categoryRepository) FindProductGroupFor(ctx context.Context, productID uuid.UUID) (*entity.ProductGroup, error) {
	var out *entity.ProductGroup
	r.s.read(func(d *state) {
		d.productGroups.each(func(g entity.ProductGroup) bool {
			if containsID(d.productMembers[g.ID], productID) {
				out = &g
				return false
			}
			return true
		})
	})
	return out, nil
}

func (r *categoryRepository) FindServiceGroupFor(ctx context.Context, serviceID uuid.UUID) (*entity.ServiceGroup, error) {
	var out *entity.ServiceGroup
	r.s.read(func(d *state) {
		d.serviceGroups.each(func(g entity.ServiceGroup) bool {
			if containsID(d.serviceMembers[g.ID], serviceID) {
				out = &g
				return false
			}
			return true
		})
	})
	return out, nil
}
