package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *gorm.DB) domainRepo.OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) Create(ctx context.Context, item *entity.OrderItem) error {
	return conn(ctx, r.db).Omit("AppliedDiscounts", "AppliedTaxes").Create(item).Error
}

func (r *orderItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	var item entity.OrderItem
	err := conn(ctx, r.db).Scopes(preloadApplied).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	fillApplied(&item)
	return &item, err
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	items := []entity.OrderItem{}
	err := conn(ctx, r.db).
		Scopes(preloadApplied).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	for i := range items {
		fillApplied(&items[i])
	}
	return items, err
}

func (r *orderItemRepository) GetByIDs(ctx context.Context, orderID uuid.UUID, ids []uuid.UUID) ([]entity.OrderItem, error) {
	items := []entity.OrderItem{}
	if len(ids) == 0 {
		return items, nil
	}
	err := conn(ctx, r.db).
		Scopes(preloadApplied).
		Where("order_id = ? AND id IN ?", orderID, ids).
		Find(&items).Error
	for i := range items {
		fillApplied(&items[i])
	}
	return items, err
}

func (r *orderItemRepository) Update(ctx context.Context, item *entity.OrderItem) error {
	return conn(ctx, r.db).Model(&entity.OrderItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"type":             item.Type,
			"price":            item.Price,
			"quantity":         item.Quantity,
			"product_id":       item.ProductID,
			"service_id":       item.ServiceID,
			"price_discounted": item.PriceDiscounted,
			"updated_by":       item.UpdatedBy,
		}).Error
}

func (r *orderItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.OrderItem{}, "id = ?", id).Error
}

func (r *orderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.OrderItem{}, "order_id = ?", orderID).Error
}

// LinkTransaction uses: UPDATE order_items SET transaction_id = ? WHERE id IN ? AND transaction_id IS NULL
func (r *orderItemRepository) LinkTransaction(ctx context.Context, ids []uuid.UUID, transactionID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := conn(ctx, r.db).Model(&entity.OrderItem{}).
		Where("id IN ? AND transaction_id IS NULL", ids).
		Update("transaction_id", transactionID)
	return result.RowsAffected, result.Error
}

func (r *orderItemRepository) CountUnpaid(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.OrderItem{}).
		Where("order_id = ? AND transaction_id IS NULL", orderID).
		Count(&count).Error
	return count, err
}

func fillApplied(item *entity.OrderItem) {
	if item.AppliedDiscounts == nil {
		item.AppliedDiscounts = []entity.AppliedDiscount{}
	}
	if item.AppliedTaxes == nil {
		item.AppliedTaxes = []entity.AppliedTax{}
	}
}
