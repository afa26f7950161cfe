package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProcessTransactionRequest pays for some items of an order
type ProcessTransactionRequest struct {
	OrderItemIDs          []uuid.UUID     `json:"order_item_ids" binding:"required,min=1"`
	PaidByCash            decimal.Decimal `json:"paid_by_cash"`
	PaidByGiftcard        decimal.Decimal `json:"paid_by_giftcard"`
	GiftcardCode          string          `json:"giftcard_code"`
	PaidByBankcard        decimal.Decimal `json:"paid_by_bankcard"`
	ExternalTransactionID string          `json:"external_transaction_id"`
}

// RefundRequest refunds part or all of a purchase transaction
type RefundRequest struct {
	Method string          `json:"method" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" binding:"omitempty,max=500"`
}

// AuthorizeCardRequest charges a card through the card processor
type AuthorizeCardRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID string          `json:"payment_method_id" binding:"required"`
}
