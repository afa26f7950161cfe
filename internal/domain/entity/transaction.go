package entity

import (
	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Transaction settles a purchase or refund for an order. Immutable once written.
type Transaction struct {
	Model
	OrderID uuid.UUID            `gorm:"type:uuid;not null;index" json:"order_id"`
	Type    enum.TransactionType `gorm:"not null" json:"type"`
	// Amount is the settled amount: the amount due for a purchase, the refunded amount for a refund
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	ChangeGiven decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"change_given"`
	Currency    enum.Currency   `gorm:"not null;default:0" json:"currency"`
	// RefundOfID points a refund at the purchase it reverses
	RefundOfID *uuid.UUID `gorm:"type:uuid;index" json:"refund_of_id,omitempty"`

	Payments []Payment `gorm:"foreignKey:TransactionID" json:"payments"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// BankcardReference returns the external reference of the first bankcard payment, if any
func (t *Transaction) BankcardReference() string {
	for _, p := range t.Payments {
		if p.Method == enum.PaymentMethodBankcard && p.ExternalReference != "" {
			return p.ExternalReference
		}
	}
	return ""
}

// Payment is one tender of a transaction. Append-only.
type Payment struct {
	Model
	TransactionID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Method            enum.PaymentMethod `gorm:"not null" json:"method"`
	Amount            decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency          enum.Currency      `gorm:"not null;default:0" json:"currency"`
	ExternalReference string             `gorm:"size:255" json:"external_reference,omitempty"`
	GiftcardID        *uuid.UUID         `gorm:"type:uuid;index" json:"giftcard_id,omitempty"`
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
