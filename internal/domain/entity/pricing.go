package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount is a pricing rule optionally scoped to a product or service group
type Discount struct {
	Model
	BusinessID uuid.UUID           `gorm:"type:uuid;not null;index" json:"business_id"`
	Name       string              `gorm:"size:255;not null" json:"name"`
	Method     enum.DiscountMethod `gorm:"not null;default:0" json:"method"`
	Active     bool                `gorm:"not null;default:true" json:"active"`
	Amount     decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	Percentage decimal.Decimal     `gorm:"type:decimal(5,2);not null;default:0" json:"percentage"`
	EndDate    time.Time           `gorm:"not null;index" json:"end_date"`
	CategoryID *uuid.UUID          `gorm:"type:uuid;index" json:"category_id,omitempty"`
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}

// IsApplicable reports whether the discount is active and not yet expired at now
func (d *Discount) IsApplicable(now time.Time) bool {
	return d.Active && d.EndDate.After(now)
}

// AmountFor returns the discount granted on a line total. A fixed discount
// never exceeds the total.
func (d *Discount) AmountFor(total decimal.Decimal) decimal.Decimal {
	switch d.Method {
	case enum.DiscountMethodFixed:
		return decimal.Min(d.Amount, total)
	case enum.DiscountMethodPercentageFromTotal:
		return total.Mul(d.Percentage).Div(hundred).Round(2)
	default:
		return decimal.Zero
	}
}

// Tax is a percentage tax optionally scoped to a group, product or service
type Tax struct {
	Model
	BusinessID uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Active     bool            `gorm:"not null;default:true" json:"active"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"percentage"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	ProductID  *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ServiceID  *uuid.UUID      `gorm:"type:uuid;index" json:"service_id,omitempty"`
}

// TableName returns the table name for the Tax model
func (Tax) TableName() string {
	return "taxes"
}

// AmountFor returns the tax due on a line total
func (t *Tax) AmountFor(total decimal.Decimal) decimal.Decimal {
	return total.Mul(t.Percentage).Div(hundred).Round(2)
}

// AppliedDiscount records a discount applied to one order item. Immutable.
type AppliedDiscount struct {
	Model
	OrderID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"order_id"`
	OrderItemID uuid.UUID           `gorm:"type:uuid;not null;index" json:"order_item_id"`
	DiscountID  uuid.UUID           `gorm:"type:uuid;not null" json:"discount_id"`
	Method      enum.DiscountMethod `gorm:"not null" json:"method"`
	Amount      decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"amount"`
	Percentage  decimal.Decimal     `gorm:"type:decimal(5,2);not null;default:0" json:"percentage"`
}

// TableName returns the table name for the AppliedDiscount model
func (AppliedDiscount) TableName() string {
	return "applied_discounts"
}

// AppliedTax records a tax applied to one order item. Immutable.
type AppliedTax struct {
	Model
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	OrderItemID uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_item_id"`
	TaxID       uuid.UUID       `gorm:"type:uuid;not null" json:"tax_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Percentage  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentage"`
}

// TableName returns the table name for the AppliedTax model
func (AppliedTax) TableName() string {
	return "applied_taxes"
}
