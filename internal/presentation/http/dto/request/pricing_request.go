package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDiscountRequest represents a discount creation request
type CreateDiscountRequest struct {
	BusinessID string          `json:"business_id"`
	Name       string          `json:"name" binding:"required,max=255"`
	Method     string          `json:"method" binding:"required"`
	Active     *bool           `json:"active"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	EndDate    time.Time       `json:"end_date" binding:"required"`
	CategoryID *uuid.UUID      `json:"category_id"`
}

// CreateTaxRequest represents a tax creation request
type CreateTaxRequest struct {
	BusinessID string          `json:"business_id"`
	Name       string          `json:"name" binding:"required,max=255"`
	Active     *bool           `json:"active"`
	Percentage decimal.Decimal `json:"percentage"`
	CategoryID *uuid.UUID      `json:"category_id"`
	ProductID  *uuid.UUID      `json:"product_id"`
	ServiceID  *uuid.UUID      `json:"service_id"`
}

// IssueGiftcardRequest issues a giftcard. An empty code is generated.
type IssueGiftcardRequest struct {
	BusinessID string          `json:"business_id"`
	Code       string          `json:"code" binding:"omitempty,max=64"`
	Amount     decimal.Decimal `json:"amount"`
}
