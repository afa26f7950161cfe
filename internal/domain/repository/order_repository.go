package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, businessID uuid.UUID, params *OrderFilterParams) ([]entity.Order, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// TransitionStatus moves the order from one status to another only if it is
	// currently in from. Returns false when another writer changed it first.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortOrder  string
}

// OrderItemRepository defines the interface for order item data operations.
// Items are returned with their AppliedDiscounts and AppliedTaxes loaded,
// never nil.
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	// GetByIDs returns the items among ids that belong to the order
	GetByIDs(ctx context.Context, orderID uuid.UUID, ids []uuid.UUID) ([]entity.OrderItem, error)
	// Update writes type, price, quantity and catalog references of an item
	Update(ctx context.Context, item *entity.OrderItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
	// LinkTransaction sets the transaction id on every unpaid item among ids
	// and returns how many rows were linked.
	LinkTransaction(ctx context.Context, ids []uuid.UUID, transactionID uuid.UUID) (int64, error)
	CountUnpaid(ctx context.Context, orderID uuid.UUID) (int64, error)
}
