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

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new product/service group repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) CreateProductGroup(ctx context.Context, group *entity.ProductGroup, productIDs []uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Omit(clause.Associations).Create(group).Error; err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}
	members := make([]entity.ProductGroupMember, 0, len(productIDs))
	for _, id := range productIDs {
		members = append(members, entity.ProductGroupMember{ProductGroupID: group.ID, ProductID: id})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&members).Error
}

func (r *categoryRepository) CreateServiceGroup(ctx context.Context, group *entity.ServiceGroup, serviceIDs []uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Omit(clause.Associations).Create(group).Error; err != nil {
		return err
	}
	if len(serviceIDs) == 0 {
		return nil
	}
	members := make([]entity.ServiceGroupMember, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		members = append(members, entity.ServiceGroupMember{ServiceGroupID: group.ID, ServiceID: id})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&members).Error
}

func (r *categoryRepository) GetProductGroup(ctx context.Context, id uuid.UUID) (*entity.ProductGroup, error) {
	var group entity.ProductGroup
	err := conn(ctx, r.db).Preload("Products").First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *categoryRepository) GetServiceGroup(ctx context.Context, id uuid.UUID) (*entity.ServiceGroup, error) {
	var group entity.ServiceGroup
	err := conn(ctx, r.db).Preload("Services").First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *categoryRepository) FindProductGroupFor(ctx context.Context, productID uuid.UUID) (*entity.ProductGroup, error) {
	var group entity.ProductGroup
	err := conn(ctx, r.db).
		Joins("JOIN product_group_members m ON m.product_group_id = product_groups.id").
		Where("m.product_id = ?", productID).
		Order("product_groups.created_at ASC").
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *categoryRepository) FindServiceGroupFor(ctx context.Context, serviceID uuid.UUID) (*entity.ServiceGroup, error) {
	var group entity.ServiceGroup
	err := conn(ctx, r.db).
		Joins("JOIN service_group_members m ON m.service_group_id = service_groups.id").
		Where("m.service_id = ?", serviceID).
		Order("service_groups.created_at ASC").
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}
