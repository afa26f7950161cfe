package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
)

// ProductRepository defines the interface for product and stock data operations
type ProductRepository interface {
	// Create stores the product together with its Stock row when one is set
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetStock(ctx context.Context, productID uuid.UUID) (*entity.ProductStock, error)
	// SetStock overwrites the quantity on hand, creating the stock row if missing
	SetStock(ctx context.Context, productID uuid.UUID, quantity int) error
	// AtomicDecrementStock decrements stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock, (false, err) on error.
	AtomicDecrementStock(ctx context.Context, productID uuid.UUID, amount int) (bool, error)
	// IncrementStock returns quantity to stock (removed items, deleted orders)
	IncrementStock(ctx context.Context, productID uuid.UUID, amount int) error
}

// ServiceRepository defines the interface for service data operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
}

// CategoryRepository defines the interface for product and service groups
type CategoryRepository interface {
	CreateProductGroup(ctx context.Context, group *entity.ProductGroup, productIDs []uuid.UUID) error
	CreateServiceGroup(ctx context.Context, group *entity.ServiceGroup, serviceIDs []uuid.UUID) error
	GetProductGroup(ctx context.Context, id uuid.UUID) (*entity.ProductGroup, error)
	GetServiceGroup(ctx context.Context, id uuid.UUID) (*entity.ServiceGroup, error)
	// FindProductGroupFor returns the oldest group containing the product, or nil
	FindProductGroupFor(ctx context.Context, productID uuid.UUID) (*entity.ProductGroup, error)
	// FindServiceGroupFor returns the oldest group containing the service, or nil
	FindServiceGroupFor(ctx context.Context, serviceID uuid.UUID) (*entity.ServiceGroup, error)
}
