package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents an order creation request. Status and
// currency are enum names and default to Open and EUR.
type CreateOrderRequest struct {
	BusinessID string          `json:"business_id"`
	Status     string          `json:"status"`
	Currency   string          `json:"currency"`
	Tip        decimal.Decimal `json:"tip"`
}

// OrderFilterRequest represents order list filters
type OrderFilterRequest struct {
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// AddItemRequest adds a product or service line to an order
type AddItemRequest struct {
	Type      string           `json:"type" binding:"required"`
	ProductID *uuid.UUID       `json:"product_id"`
	ServiceID *uuid.UUID       `json:"service_id"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest overwrites fields of an unpaid item; omitted fields are kept
type UpdateItemRequest struct {
	Type      *string          `json:"type"`
	ProductID *uuid.UUID       `json:"product_id"`
	ServiceID *uuid.UUID       `json:"service_id"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  *int             `json:"quantity" binding:"omitempty,min=1"`
}

// ApplyDiscountRequest folds a discount into an item's price
type ApplyDiscountRequest struct {
	DiscountID uuid.UUID `json:"discount_id" binding:"required"`
}
