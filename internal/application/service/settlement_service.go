package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/internal/infrastructure/messaging"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/logger"
	"github.com/sangkips/pos-api/pkg/payments"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettlementService records payments for order items and refunds
type SettlementService struct {
	repos     Repositories
	processor payments.Processor
	events    *EventSink
	logger    *zap.Logger
}

// NewSettlementService creates a new settlement service. processor may be nil
// when no card processor is configured.
func NewSettlementService(repos Repositories, processor payments.Processor, events *EventSink, log *zap.Logger) *SettlementService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SettlementService{
		repos:     repos,
		processor: processor,
		events:    events,
		logger:    log,
	}
}

// ProcessTransactionInput represents a payment for some items of an order
type ProcessTransactionInput struct {
	OrderID               uuid.UUID
	ItemIDs               []uuid.UUID
	PaidByCash            decimal.Decimal
	PaidByGiftcard        decimal.Decimal
	GiftcardCode          string
	PaidByBankcard        decimal.Decimal
	ExternalTransactionID string
}

func (in *ProcessTransactionInput) validate() error {
	if len(in.ItemIDs) == 0 {
		return apperror.NewInvalidArgumentError("At least one order item is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(in.ItemIDs))
	for _, id := range in.ItemIDs {
		if _, dup := seen[id]; dup {
			return apperror.NewInvalidArgumentError("Order item listed more than once")
		}
		seen[id] = struct{}{}
	}
	if in.PaidByCash.IsNegative() || in.PaidByGiftcard.IsNegative() || in.PaidByBankcard.IsNegative() {
		return apperror.NewInvalidArgumentError("Payment amounts must not be negative")
	}
	if in.PaidByGiftcard.IsPositive() && strings.TrimSpace(in.GiftcardCode) == "" {
		return apperror.NewInvalidArgumentError("Giftcard code is required")
	}
	if in.PaidByBankcard.IsPositive() && strings.TrimSpace(in.ExternalTransactionID) == "" {
		return apperror.NewInvalidArgumentError("External transaction id is required for bankcard payments")
	}
	return nil
}

// ProcessTransaction settles the listed items of an order. The amount due is
// the items' total less their applied discounts (none once a discount was
// folded into the price), plus the tip when the transaction pays the last
// unpaid items. Change is only given from cash. The
// order closes once no item is left unpaid.
func (s *SettlementService) ProcessTransaction(ctx context.Context, input *ProcessTransactionInput) (*entity.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.verifyBankcard(ctx, input); err != nil {
		return nil, err
	}

	var (
		transaction *entity.Transaction
		order       *entity.Order
		closed      bool
	)
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repos.Orders.GetByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil || !visible(ctx, order.BusinessID) {
			return apperror.NewNotFoundError("Order")
		}
		if !order.IsOpen() {
			return apperror.Newf(apperror.KindInvalidState, "Order is %s", order.Status)
		}

		items, err := s.repos.OrderItems.GetByIDs(ctx, order.ID, input.ItemIDs)
		if err != nil {
			return err
		}
		if len(items) != len(input.ItemIDs) {
			return apperror.NewInvalidArgumentError("Order items do not belong to the order")
		}
		for i := range items {
			if items[i].IsPaid() {
				return apperror.NewInvalidStateError("Order item is already paid")
			}
		}

		unpaid, err := s.repos.OrderItems.CountUnpaid(ctx, order.ID)
		if err != nil {
			return err
		}
		due := amountDue(items)
		if unpaid == int64(len(items)) {
			due = due.Add(order.Tip)
		}

		cardShare := input.PaidByGiftcard.Add(input.PaidByBankcard)
		tendered := cardShare.Add(input.PaidByCash)
		if tendered.LessThan(due) {
			return apperror.Newf(apperror.KindInvalidArgument, "Payment of %s does not cover the amount due of %s", tendered.StringFixed(2), due.StringFixed(2))
		}
		if cardShare.GreaterThan(due) {
			return apperror.NewInvalidArgumentError("Giftcard and bankcard payments exceed the amount due")
		}

		actor := ActorFromContext(ctx)
		transaction = &entity.Transaction{
			OrderID:     order.ID,
			Type:        enum.TransactionTypePurchase,
			Amount:      due,
			ChangeGiven: tendered.Sub(due),
			Currency:    order.Currency,
			Payments:    []entity.Payment{},
		}
		transaction.Stamp(actor)

		if input.PaidByGiftcard.IsPositive() {
			giftcard, err := s.repos.Giftcards.GetByCode(ctx, strings.TrimSpace(input.GiftcardCode))
			if err != nil {
				return err
			}
			if giftcard == nil {
				return apperror.NewNotFoundError("Giftcard")
			}
			ok, err := s.repos.Giftcards.AtomicDebit(ctx, giftcard.ID, input.PaidByGiftcard)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientResourceError("Insufficient giftcard balance")
			}
			transaction.Payments = append(transaction.Payments, newPayment(actor, enum.PaymentMethodGiftcard, input.PaidByGiftcard, order.Currency, "", &giftcard.ID))
		}
		if input.PaidByCash.IsPositive() {
			transaction.Payments = append(transaction.Payments, newPayment(actor, enum.PaymentMethodCash, input.PaidByCash, order.Currency, "", nil))
		}
		if input.PaidByBankcard.IsPositive() {
			transaction.Payments = append(transaction.Payments, newPayment(actor, enum.PaymentMethodBankcard, input.PaidByBankcard, order.Currency, strings.TrimSpace(input.ExternalTransactionID), nil))
		}

		if err := s.repos.Transactions.Create(ctx, transaction); err != nil {
			return err
		}

		linked, err := s.repos.OrderItems.LinkTransaction(ctx, input.ItemIDs, transaction.ID)
		if err != nil {
			return err
		}
		if linked != int64(len(input.ItemIDs)) {
			return apperror.NewInvalidStateError("Order item is already paid")
		}

		remaining, err := s.repos.OrderItems.CountUnpaid(ctx, order.ID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			ok, err := s.repos.Orders.TransitionStatus(ctx, order.ID, enum.OrderStatusOpen, enum.OrderStatusClosed)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInvalidStateError("Order was changed by another request")
			}
			closed = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx, s.logger)
	log.Info("transaction processed",
		zap.String("order_id", order.ID.String()),
		zap.String("transaction_id", transaction.ID.String()),
		zap.String("amount", transaction.Amount.StringFixed(2)),
		zap.Int("items", len(input.ItemIDs)),
	)
	if closed {
		log.Info("order closed", zap.String("order_id", order.ID.String()))
		s.events.publish(ctx, messaging.OrderEvent{
			Type:          messaging.EventOrderClosed,
			OrderID:       order.ID,
			BusinessID:    order.BusinessID,
			TransactionID: &transaction.ID,
			Amount:        &transaction.Amount,
		})
	}
	return transaction, nil
}

// verifyBankcard checks the card payment with the processor, when one is configured
func (s *SettlementService) verifyBankcard(ctx context.Context, input *ProcessTransactionInput) error {
	if s.processor == nil || !input.PaidByBankcard.IsPositive() {
		return nil
	}
	auth, err := s.processor.Lookup(ctx, strings.TrimSpace(input.ExternalTransactionID))
	if err != nil {
		logger.FromContext(ctx, s.logger).Warn("bankcard lookup failed",
			zap.String("reference", input.ExternalTransactionID),
			zap.Error(err),
		)
		return apperror.NewInvalidArgumentError("Unknown bankcard payment reference")
	}
	if !auth.Succeeded() {
		return apperror.Newf(apperror.KindInvalidState, "Bankcard payment is %s", auth.Status)
	}
	if auth.Amount.LessThan(input.PaidByBankcard) {
		return apperror.NewInvalidArgumentError("Bankcard payment does not cover the bankcard amount")
	}
	return nil
}

// RefundInput represents a refund of a purchase transaction
type RefundInput struct {
	OrderID       uuid.UUID
	TransactionID uuid.UUID
	Method        string
	Amount        decimal.Decimal
	Reason        string
}

// RefundTransaction records a refund against a purchase and marks the order
// Refunded. Refunds to a giftcard are never allowed. Bankcard refunds go
// through the card processor when one is configured.
func (s *SettlementService) RefundTransaction(ctx context.Context, input *RefundInput) (*entity.Transaction, error) {
	method, err := enum.ParsePaymentMethod(input.Method)
	if err != nil {
		return nil, apperror.NewInvalidArgumentError("Invalid refund method")
	}
	if method == enum.PaymentMethodGiftcard {
		return nil, apperror.NewInvalidStateError("Refunds to a giftcard are not allowed")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidArgumentError("Refund amount must be positive")
	}

	var (
		refund     *entity.Transaction
		order      *entity.Order
		cardRefund string
	)
	err = s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repos.Orders.GetByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil || !visible(ctx, order.BusinessID) {
			return apperror.NewNotFoundError("Order")
		}
		original, err := s.repos.Transactions.GetByID(ctx, input.TransactionID)
		if err != nil {
			return err
		}
		if original == nil || original.OrderID != order.ID {
			return apperror.NewNotFoundError("Transaction")
		}
		if original.Type != enum.TransactionTypePurchase {
			return apperror.NewInvalidArgumentError("Only purchase transactions can be refunded")
		}
		if input.Amount.GreaterThan(original.Amount) {
			return apperror.NewInvalidArgumentError("Refund exceeds the original transaction amount")
		}
		if order.Status == enum.OrderStatusRefunded {
			return apperror.NewInvalidStateError("Order is already refunded")
		}

		actor := ActorFromContext(ctx)
		amount := input.Amount.Round(2)
		reference := ""
		if method == enum.PaymentMethodBankcard {
			reference = original.BankcardReference()
			if reference == "" {
				return apperror.NewInvalidArgumentError("Original transaction has no bankcard payment")
			}
		}

		refund = &entity.Transaction{
			OrderID:    order.ID,
			Type:       enum.TransactionTypeRefund,
			Amount:     amount,
			Currency:   order.Currency,
			RefundOfID: &original.ID,
		}
		refund.Stamp(actor)

		ok, err := s.repos.Orders.TransitionStatus(ctx, order.ID, order.Status, enum.OrderStatusRefunded)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewInvalidStateError("Order was changed by another request")
		}

		if method == enum.PaymentMethodBankcard && s.processor != nil {
			result, err := s.processor.Refund(ctx, payments.RefundRequest{
				Reference:      reference,
				Amount:         amount,
				Reason:         input.Reason,
				IdempotencyKey: "refund-" + original.ID.String() + "-" + amount.StringFixed(2),
			})
			if err != nil {
				return apperror.Wrap(err, "Card refund failed")
			}
			if result.Status == payments.StatusFailed {
				return apperror.NewInvalidStateError("Card refund was declined")
			}
			reference = result.ID
			cardRefund = result.ID
		}
		refund.Payments = []entity.Payment{newPayment(actor, method, amount, order.Currency, reference, nil)}

		return s.repos.Transactions.Create(ctx, refund)
	})
	if err != nil {
		if cardRefund != "" {
			// the card is refunded at the processor; only the record is missing
			logger.FromContext(ctx, s.logger).Error("card refunded but refund not recorded",
				zap.String("order_id", input.OrderID.String()),
				zap.String("transaction_id", input.TransactionID.String()),
				zap.String("processor_refund_id", cardRefund),
				zap.String("amount", input.Amount.StringFixed(2)),
				zap.Error(err),
			)
		}
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("order refunded",
		zap.String("order_id", order.ID.String()),
		zap.String("transaction_id", refund.ID.String()),
		zap.String("method", method.String()),
		zap.String("amount", refund.Amount.StringFixed(2)),
	)
	s.events.publish(ctx, messaging.OrderEvent{
		Type:          messaging.EventOrderRefunded,
		OrderID:       order.ID,
		BusinessID:    order.BusinessID,
		TransactionID: &refund.ID,
		Amount:        &refund.Amount,
	})
	return refund, nil
}

// GetTransaction returns one transaction of an order with its payments
func (s *SettlementService) GetTransaction(ctx context.Context, orderID, transactionID uuid.UUID) (*entity.Transaction, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !visible(ctx, order.BusinessID) {
		return nil, apperror.NewNotFoundError("Order")
	}

	transaction, err := s.repos.Transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil || transaction.OrderID != orderID {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return transaction, nil
}

// ListTransactions returns the transactions of an order in creation order
func (s *SettlementService) ListTransactions(ctx context.Context, orderID uuid.UUID) ([]entity.Transaction, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !visible(ctx, order.BusinessID) {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.repos.Transactions.ListByOrderID(ctx, orderID)
}

// AuthorizeCardInput represents a card charge for an open order
type AuthorizeCardInput struct {
	OrderID         uuid.UUID
	Amount          decimal.Decimal
	PaymentMethodID string
	IdempotencyKey  string
}

// AuthorizeCardPayment charges a card through the processor. The returned
// reference is passed to ProcessTransaction as the external transaction id.
func (s *SettlementService) AuthorizeCardPayment(ctx context.Context, input *AuthorizeCardInput) (*payments.Authorization, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidArgumentError("Amount must be positive")
	}
	if strings.TrimSpace(input.PaymentMethodID) == "" {
		return nil, apperror.NewInvalidArgumentError("Payment method is required")
	}
	if s.processor == nil {
		return nil, apperror.NewInvalidStateError("Card processor is not configured")
	}

	order, err := s.repos.Orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !visible(ctx, order.BusinessID) {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.IsOpen() {
		return nil, apperror.Newf(apperror.KindInvalidState, "Order is %s", order.Status)
	}

	auth, err := s.processor.Authorize(ctx, payments.AuthorizeRequest{
		Amount:          input.Amount.Round(2),
		Currency:        order.Currency.String(),
		PaymentMethodID: input.PaymentMethodID,
		OrderID:         order.ID.String(),
		IdempotencyKey:  input.IdempotencyKey,
	})
	if err != nil {
		logger.FromContext(ctx, s.logger).Warn("card authorization failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, apperror.NewInvalidStateError("Card authorization failed")
	}
	if auth.Status == payments.StatusFailed {
		return nil, apperror.NewInvalidStateError("Card authorization was declined")
	}
	return &auth, nil
}

// amountDue is the items' total less the amounts of their applied discounts, never negative
func amountDue(items []entity.OrderItem) decimal.Decimal {
	due := decimal.Zero
	for i := range items {
		due = due.Add(items[i].Total()).Sub(items[i].DiscountTotal())
	}
	return decimal.Max(decimal.Zero, due).Round(2)
}

func newPayment(actor *uuid.UUID, method enum.PaymentMethod, amount decimal.Decimal, currency enum.Currency, reference string, giftcardID *uuid.UUID) entity.Payment {
	p := entity.Payment{
		Method:            method,
		Amount:            amount,
		Currency:          currency,
		ExternalReference: reference,
		GiftcardID:        giftcardID,
	}
	p.Stamp(actor)
	return p
}
