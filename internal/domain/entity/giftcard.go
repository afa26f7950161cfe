package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Giftcard is a prepaid balance looked up by its code
type Giftcard struct {
	Model
	BusinessID uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	Code       string          `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;check:chk_giftcards_amount,amount >= 0" json:"amount"`
}

// TableName returns the table name for the Giftcard model
func (Giftcard) TableName() string {
	return "giftcards"
}
