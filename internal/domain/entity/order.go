package entity

import (
	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Order is a tab of items for one business, settled by one or more transactions
type Order struct {
	Model
	BusinessID uuid.UUID        `gorm:"type:uuid;not null;index" json:"business_id"`
	Currency   enum.Currency    `gorm:"not null;default:0" json:"currency"`
	Tip        decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"tip"`
	Status     enum.OrderStatus `gorm:"not null;default:0;index" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsOpen reports whether items may still be added, changed or paid
func (o *Order) IsOpen() bool {
	return o.Status == enum.OrderStatusOpen
}

// OrderItem is one product or service line of an order.
// TransactionID is nil until the line is paid. PriceDiscounted is set once a
// discount has been folded into Price; the automatic AppliedDiscounts then
// stay as a record only.
type OrderItem struct {
	Model
	OrderID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Type            enum.OrderItemType `gorm:"not null;default:0" json:"type"`
	Price           decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity        int                `gorm:"not null;check:chk_order_items_quantity,quantity >= 1" json:"quantity"`
	ProductID       *uuid.UUID         `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ServiceID       *uuid.UUID         `gorm:"type:uuid;index" json:"service_id,omitempty"`
	TransactionID   *uuid.UUID         `gorm:"type:uuid;index" json:"transaction_id,omitempty"`
	PriceDiscounted bool               `gorm:"not null;default:false" json:"price_discounted"`

	AppliedDiscounts []AppliedDiscount `gorm:"foreignKey:OrderItemID" json:"applied_discounts"`
	AppliedTaxes     []AppliedTax      `gorm:"foreignKey:OrderItemID" json:"applied_taxes"`
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Total returns price times quantity
func (i *OrderItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DiscountTotal returns the discount still owed against Total
func (i *OrderItem) DiscountTotal() decimal.Decimal {
	total := decimal.Zero
	if i.PriceDiscounted {
		return total
	}
	for _, d := range i.AppliedDiscounts {
		total = total.Add(d.Amount)
	}
	return total
}

// IsPaid reports whether the item is linked to a transaction
func (i *OrderItem) IsPaid() bool {
	return i.TransactionID != nil && *i.TransactionID != uuid.Nil
}

// CatalogID returns the product or service id the item refers to
func (i *OrderItem) CatalogID() *uuid.UUID {
	if i.Type == enum.OrderItemTypeProduct {
		return i.ProductID
	}
	return i.ServiceID
}
