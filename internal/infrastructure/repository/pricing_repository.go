package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	return conn(ctx, r.db).Create(discount).Error
}

func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	var discount entity.Discount
	err := conn(ctx, r.db).First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &discount, err
}

func (r *discountRepository) FindBestForCategory(ctx context.Context, categoryID uuid.UUID, now time.Time) (*entity.Discount, error) {
	var discounts []entity.Discount
	err := conn(ctx, r.db).
		Where("category_id = ? AND active = ? AND end_date > ?", categoryID, true, now).
		Order("amount DESC").
		Order("id ASC").
		Limit(1).
		Find(&discounts).Error
	if err != nil || len(discounts) == 0 {
		return nil, err
	}
	return &discounts[0], nil
}

type taxRepository struct {
	db *gorm.DB
}

// NewTaxRepository creates a new tax repository
func NewTaxRepository(db *gorm.DB) domainRepo.TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) Create(ctx context.Context, tax *entity.Tax) error {
	return conn(ctx, r.db).Create(tax).Error
}

func (r *taxRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	var tax entity.Tax
	err := conn(ctx, r.db).First(&tax, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tax, err
}

func (r *taxRepository) FindFirstForCategory(ctx context.Context, categoryID uuid.UUID) (*entity.Tax, error) {
	var taxes []entity.Tax
	err := conn(ctx, r.db).
		Where("category_id = ?", categoryID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(1).
		Find(&taxes).Error
	if err != nil || len(taxes) == 0 {
		return nil, err
	}
	return &taxes[0], nil
}

type appliedPricingRepository struct {
	db *gorm.DB
}

// NewAppliedPricingRepository creates a repository for applied discounts and taxes
func NewAppliedPricingRepository(db *gorm.DB) domainRepo.AppliedPricingRepository {
	return &appliedPricingRepository{db: db}
}

func (r *appliedPricingRepository) CreateDiscount(ctx context.Context, applied *entity.AppliedDiscount) error {
	return conn(ctx, r.db).Create(applied).Error
}

func (r *appliedPricingRepository) CreateTax(ctx context.Context, applied *entity.AppliedTax) error {
	return conn(ctx, r.db).Create(applied).Error
}

func (r *appliedPricingRepository) DeleteByOrderItemID(ctx context.Context, orderItemID uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Delete(&entity.AppliedDiscount{}, "order_item_id = ?", orderItemID).Error; err != nil {
		return err
	}
	return db.Delete(&entity.AppliedTax{}, "order_item_id = ?", orderItemID).Error
}

func (r *appliedPricingRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Delete(&entity.AppliedDiscount{}, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	return db.Delete(&entity.AppliedTax{}, "order_id = ?", orderID).Error
}
