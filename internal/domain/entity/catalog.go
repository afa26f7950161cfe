package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stock-tracked sellable good
type Product struct {
	Model
	BusinessID uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`

	Stock *ProductStock `gorm:"foreignKey:ProductID" json:"stock,omitempty"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Service is a sellable service; services carry no stock
type Service struct {
	Model
	BusinessID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	DurationMinutes int             `gorm:"default:0" json:"duration_minutes"`
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ProductStock is the quantity on hand of one product. Quantity never drops below zero.
type ProductStock struct {
	Model
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Quantity  int       `gorm:"not null;default:0;check:chk_product_stocks_quantity,quantity >= 0" json:"quantity"`
}

// TableName returns the table name for the ProductStock model
func (ProductStock) TableName() string {
	return "product_stocks"
}

// ProductGroup is a product category used to scope discounts and taxes
type ProductGroup struct {
	Model
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	Products []Product `gorm:"many2many:product_group_members" json:"products,omitempty"`
}

// TableName returns the table name for the ProductGroup model
func (ProductGroup) TableName() string {
	return "product_groups"
}

// ServiceGroup is a service category used to scope discounts and taxes
type ServiceGroup struct {
	Model
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	Services []Service `gorm:"many2many:service_group_members" json:"services,omitempty"`
}

// TableName returns the table name for the ServiceGroup model
func (ServiceGroup) TableName() string {
	return "service_groups"
}

// ProductGroupMember links a product to a product group
type ProductGroupMember struct {
	ProductGroupID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_group_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"product_id"`
}

// TableName returns the table name for the ProductGroupMember model
func (ProductGroupMember) TableName() string {
	return "product_group_members"
}

// ServiceGroupMember links a service to a service group
type ServiceGroupMember struct {
	ServiceGroupID uuid.UUID `gorm:"type:uuid;primaryKey" json:"service_group_id"`
	ServiceID      uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"service_id"`
}

// TableName returns the table name for the ServiceGroupMember model
func (ServiceGroupMember) TableName() string {
	return "service_group_members"
}
