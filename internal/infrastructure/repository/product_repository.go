package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return conn(ctx, r.db).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).Preload("Stock").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetStock(ctx context.Context, productID uuid.UUID) (*entity.ProductStock, error) {
	var stock entity.ProductStock
	err := conn(ctx, r.db).First(&stock, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stock, err
}

func (r *productRepository) SetStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	stock := entity.ProductStock{ProductID: productID, Quantity: quantity}
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&stock).Error
}

// AtomicDecrementStock atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE product_stocks SET quantity = quantity - amount WHERE product_id = ? AND quantity >= amount
func (r *productRepository) AtomicDecrementStock(ctx context.Context, productID uuid.UUID, amount int) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.ProductStock{}).
		Where("product_id = ? AND quantity >= ?", productID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, productID uuid.UUID, amount int) error {
	result := conn(ctx, r.db).Model(&entity.ProductStock{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.SetStock(ctx, productID, amount)
	}
	return nil
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return conn(ctx, r.db).Create(service).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := conn(ctx, r.db).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}
