// Package payments adapts external card processors to the settlement flow.
package payments

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Status enumerates the normalised payment states shared across processors.
type Status string

const (
	// StatusPending indicates the payment awaits customer action or processor confirmation.
	StatusPending Status = "pending"
	// StatusSucceeded indicates the processor reports the payment as captured.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates the processor reports a failure.
	StatusFailed Status = "failed"
	// StatusRefunded indicates the payment has been refunded in full.
	StatusRefunded Status = "refunded"
)

// ErrNotConfigured is returned when no card processor is available
var ErrNotConfigured = errors.New("payments: card processor not configured")

// AuthorizeRequest asks the processor to charge a card for an order
type AuthorizeRequest struct {
	Amount          decimal.Decimal
	Currency        string
	PaymentMethodID string
	OrderID         string
	IdempotencyKey  string
}

// Authorization is the processor view of a card payment
type Authorization struct {
	Reference string
	Status    Status
	Amount    decimal.Decimal
	Currency  string
}

// Succeeded reports whether the payment was captured
func (a Authorization) Succeeded() bool {
	return a.Status == StatusSucceeded
}

// RefundRequest returns part or all of a card payment
type RefundRequest struct {
	Reference      string
	Amount         decimal.Decimal
	Reason         string
	IdempotencyKey string
}

// Refund is the processor view of a refund
type Refund struct {
	ID        string
	Reference string
	Status    Status
	Amount    decimal.Decimal
}

// Processor is the card processor capability used by settlement
type Processor interface {
	Authorize(ctx context.Context, req AuthorizeRequest) (Authorization, error)
	Lookup(ctx context.Context, reference string) (Authorization, error)
	Refund(ctx context.Context, req RefundRequest) (Refund, error)
}

// ToMinorUnits converts a two decimal amount into cents
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FromMinorUnits converts cents into a two decimal amount
func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}
