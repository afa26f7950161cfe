package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
)

// DiscountRepository defines the interface for discount data operations
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
	// FindBestForCategory returns the active discount of the category with the
	// largest amount that has not ended at now. Ties go to the lowest id.
	FindBestForCategory(ctx context.Context, categoryID uuid.UUID, now time.Time) (*entity.Discount, error)
}

// TaxRepository defines the interface for tax data operations
type TaxRepository interface {
	Create(ctx context.Context, tax *entity.Tax) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error)
	// FindFirstForCategory returns the oldest tax of the category regardless of its active flag
	FindFirstForCategory(ctx context.Context, categoryID uuid.UUID) (*entity.Tax, error)
}

// AppliedPricingRepository stores the discount and tax records attached to order items
type AppliedPricingRepository interface {
	CreateDiscount(ctx context.Context, applied *entity.AppliedDiscount) error
	CreateTax(ctx context.Context, applied *entity.AppliedTax) error
	DeleteByOrderItemID(ctx context.Context, orderItemID uuid.UUID) error
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
