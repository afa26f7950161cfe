package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBusinessRequest represents a business creation request
type CreateBusinessRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Address string `json:"address"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	BusinessID   string          `json:"business_id"`
	Name         string          `json:"name" binding:"required,max=255"`
	Price        decimal.Decimal `json:"price"`
	InitialStock int             `json:"initial_stock" binding:"min=0"`
}

// SetStockRequest overwrites the quantity on hand of a product
type SetStockRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// CreateServiceRequest represents a service creation request
type CreateServiceRequest struct {
	BusinessID      string          `json:"business_id"`
	Name            string          `json:"name" binding:"required,max=255"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes" binding:"min=0"`
}

// CreateGroupRequest creates a product or service group with its members
type CreateGroupRequest struct {
	BusinessID  string      `json:"business_id"`
	Name        string      `json:"name" binding:"required,max=255"`
	Description string      `json:"description"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
}
