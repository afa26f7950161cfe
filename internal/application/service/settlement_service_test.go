package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/internal/infrastructure/messaging"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// discountedOrder is an open order with one item of 2 x 10.00 carrying a 5.00 discount
func discountedOrder(t *testing.T, f *fixture) (*entity.Order, *entity.OrderItem, *entity.Product) {
	t.Helper()
	p := f.product(t, "Coffee beans", "10.00", 10)
	group := f.productGroup(t, p.ID)
	f.discount(t, group.ID, "FIXED", "5.00", "0")
	f.tax(t, group.ID, "10")
	order := f.openOrder(t)
	item := f.addProduct(t, order.ID, p.ID, 2)
	return order, item, p
}

func (f *fixture) giftcard(t *testing.T, amount string) *entity.Giftcard {
	t.Helper()
	g, err := f.giftcards.Issue(f.ctx, &IssueGiftcardInput{BusinessID: f.business.ID, Amount: dec(amount)})
	require.NoError(t, err)
	return g
}

func TestProcessTransactionWithCashClosesOrder(t *testing.T) {
	f := newFixture(t)
	order, item, _ := discountedOrder(t, f)

	tx, err := f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID:    order.ID,
		ItemIDs:    []uuid.UUID{item.ID},
		PaidByCash: dec("15"),
	})
	require.NoError(t, err)

	assert.Equal(t, enum.TransactionTypePurchase, tx.Type)
	assert.True(t, dec("15.00").Equal(tx.Amount))
	assert.True(t, tx.ChangeGiven.IsZero())
	require.Len(t, tx.Payments, 1)
	assert.Equal(t, enum.PaymentMethodCash, tx.Payments[0].Method)

	items, err := f.orders.GetAllItemsOfOrder(f.ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, items[0].TransactionID)
	assert.Equal(t, tx.ID, *items[0].TransactionID)
	assert.Equal(t, enum.OrderStatusClosed, f.orderStatus(t, order.ID))
	assert.Contains(t, f.publisher.types(), messaging.EventOrderClosed)
}

func TestExplicitDiscountReplacesAutomaticDiscount(t *testing.T) {
	f := newFixture(t)
	order, item, _ := discountedOrder(t, f)
	manual := f.discount(t, f.productGroup(t).ID, "PERCENTAGE", "0", "10")

	updated, err := f.pricing.ApplyDiscountToItem(f.ctx, order.ID, item.ID, manual.ID)
	require.NoError(t, err)
	assert.True(t, dec("9.00").Equal(updated.Price), updated.Price.String())
	assert.True(t, updated.PriceDiscounted)

	items, err := f.orders.GetAllItemsOfOrder(f.ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items[0].AppliedDiscounts, 1)
	assert.True(t, items[0].DiscountTotal().IsZero())

	_, err = f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID:    order.ID,
		ItemIDs:    []uuid.UUID{item.ID},
		PaidByCash: dec("13"),
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	tx, err := f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID:    order.ID,
		ItemIDs:    []uuid.UUID{item.ID},
		PaidByCash: dec("18"),
	})
	require.NoError(t, err)
	assert.True(t, dec("18.00").Equal(tx.Amount), tx.Amount.String())
	assert.True(t, tx.ChangeGiven.IsZero())
}

func TestProcessTransactionGivesChangeFromCash(t *testing.T) {
	f := newFixture(t)
	order, item, _ := discountedOrder(t, f)
	g := f.giftcard(t, "50")

	tx, err := f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID:        order.ID,
		ItemIDs:        []uuid.UUID{item.ID},
		PaidByCash:     dec("10"),
		PaidByGiftcard: dec("10"),
		GiftcardCode:   g.Code,
	})
	require.NoError(t, err)

	assert.True(t, dec("5.00").Equal(tx.ChangeGiven))
	require.Len(t, tx.Payments, 2)
	assert.Equal(t, enum.PaymentMethodGiftcard, tx.Payments[0].Method)
	assert.Equal(t, g.ID, *tx.Payments[0].GiftcardID)
	assert.Equal(t, enum.PaymentMethodCash, tx.Payments[1].Method)

	card, err := f.giftcards.GetByCode(f.ctx, g.Code)
	require.NoError(t, err)
	assert.True(t, dec("40.00").Equal(card.Amount))
}

func TestProcessTransactionPartialLeavesOrderOpen(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Coffee beans", "10.00", 10)
	order, err := f.orders.AddOrder(f.ctx, &AddOrderInput{BusinessID: f.business.ID, Tip: dec("2")})
	require.NoError(t, err)
	first := f.addProduct(t, order.ID, p.ID, 1)
	second := f.addProduct(t, order.ID, p.ID, 1)

	tx, err := f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID:    order.ID,
		ItemIDs:    []uuid.UUID{first.ID},
		PaidByCash: dec("10"),
	})
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(tx.Amount))
	assert.Equal(t, enum.OrderStatusOpen, f.orderStatus(t, order.ID))

	_, err = f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID:    order.ID,
		ItemIDs:    []uuid.UUID{second.ID},
		PaidByCash: dec("10"),
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument, "the last payment must include the tip")

	tx, err = f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID:    order.ID,
		ItemIDs:    []uuid.UUID{second.ID},
		PaidByCash: dec("12"),
	})
	require.NoError(t, err)
	assert.True(t, dec("12").Equal(tx.Amount))
	assert.Equal(t, enum.OrderStatusClosed, f.orderStatus(t, order.ID))
}

func TestProcessTransactionGiftcardBalanceTooLow(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Hamper", "30.00", 1)
	order := f.openOrder(t)
	item := f.addProduct(t, order.ID, p.ID, 1)
	g := f.giftcard(t, "20.00")

	_, err := f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID:        order.ID,
		ItemIDs:        []uuid.UUID{item.ID},
		PaidByGiftcard: dec("25.00"),
		GiftcardCode:   g.Code,
		PaidByCash:     dec("5.00"),
	})

	assert.ErrorIs(t, err, apperror.ErrInsufficientResource)
	card, err := f.giftcards.GetByCode(f.ctx, g.Code)
	require.NoError(t, err)
	assert.True(t, dec("20.00").Equal(card.Amount))
	txs, err := f.settlement.ListTransactions(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
	items, err := f.orders.GetAllItemsOfOrder(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, items[0].TransactionID)
	assert.Equal(t, enum.OrderStatusOpen, f.orderStatus(t, order.ID))
}

func TestProcessTransactionRejectsDoubleBilling(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Coffee beans", "10.00", 10)
	order := f.openOrder(t)
	paid := f.addProduct(t, order.ID, p.ID, 1)
	f.addProduct(t, order.ID, p.ID, 1)

	_, err := f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID: order.ID, ItemIDs: []uuid.UUID{paid.ID}, PaidByCash: dec("10"),
	})
	require.NoError(t, err)

	_, err = f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
		OrderID: order.ID, ItemIDs: []uuid.UUID{paid.ID}, PaidByCash: dec("10"),
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidState)

	txs, err := f.settlement.ListTransactions(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestProcessTransactionValidation(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Coffee beans", "10.00", 10)
	order := f.openOrder(t)
	item := f.addProduct(t, order.ID, p.ID, 1)
	otherOrder := f.openOrder(t)
	foreign := f.addProduct(t, otherOrder.ID, p.ID, 1)

	cases := map[string]struct {
		input *ProcessTransactionInput
		want  error
	}{
		"no items":       {&ProcessTransactionInput{OrderID: order.ID, PaidByCash: dec("10")}, apperror.ErrInvalidArgument},
		"duplicate item": {&ProcessTransactionInput{OrderID: order.ID, ItemIDs: []uuid.UUID{item.ID, item.ID}, PaidByCash: dec("20")}, apperror.ErrInvalidArgument},
		"foreign item":   {&ProcessTransactionInput{OrderID: order.ID, ItemIDs: []uuid.UUID{item.ID, foreign.ID}, PaidByCash: dec("20")}, apperror.ErrInvalidArgument},
		"negative cash":  {&ProcessTransactionInput{OrderID: order.ID, ItemIDs: []uuid.UUID{item.ID}, PaidByCash: dec("-1")}, apperror.ErrInvalidArgument},
		"underpaid":      {&ProcessTransactionInput{OrderID: order.ID, ItemIDs: []uuid.UUID{item.ID}, PaidByCash: dec("9.99")}, apperror.ErrInvalidArgument},
		"card overpays": {&ProcessTransactionInput{
			OrderID: order.ID, ItemIDs: []uuid.UUID{item.ID}, PaidByBankcard: dec("11"), ExternalTransactionID: "pi_1",
		}, apperror.ErrInvalidArgument},
		"bankcard without reference": {&ProcessTransactionInput{OrderID: order.ID, ItemIDs: []uuid.UUID{item.ID}, PaidByBankcard: dec("10")}, apperror.ErrInvalidArgument},
		"giftcard without code":      {&ProcessTransactionInput{OrderID: order.ID, ItemIDs: []uuid.UUID{item.ID}, PaidByGiftcard: dec("10")}, apperror.ErrInvalidArgument},
		"unknown giftcard": {&ProcessTransactionInput{
			OrderID: order.ID, ItemIDs: []uuid.UUID{item.ID}, PaidByGiftcard: dec("10"), GiftcardCode: "NOPE",
		}, apperror.ErrNotFound},
		"missing order": {&ProcessTransactionInput{OrderID: uuid.New(), ItemIDs: []uuid.UUID{item.ID}, PaidByCash: dec("10")}, apperror.ErrNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.settlement.ProcessTransaction(f.ctx, tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	items, err := f.orders.GetAllItemsOfOrder(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, items[0].TransactionID)
}

func TestProcessTransactionVerifiesBankcard(t *testing.T) {
	processor := &fakeProcessor{lookups: map[string]payments.Authorization{
		"pi_ok":      {Reference: "pi_ok", Status: payments.StatusSucceeded, Amount: dec("10")},
		"pi_pending": {Reference: "pi_pending", Status: payments.StatusPending, Amount: dec("10")},
		"pi_small":   {Reference: "pi_small", Status: payments.StatusSucceeded, Amount: dec("5")},
	}}
	f := newFixtureWith(t, processor, nil)
	p := f.product(t, "Coffee beans", "10.00", 10)
	order := f.openOrder(t)
	item := f.addProduct(t, order.ID, p.ID, 1)

	pay := func(ref string) error {
		_, err := f.settlement.ProcessTransaction(f.ctx, &ProcessTransactionInput{
			OrderID:               order.ID,
			ItemIDs:               []uuid.UUID{item.ID},
			PaidByBankcard:        dec("10"),
			ExternalTransactionID: ref,
		})
		return err
	}

	assert.ErrorIs(t, pay("pi_unknown"), apperror.ErrInvalidArgument)
	assert.ErrorIs(t, pay("pi_pending"), apperror.ErrInvalidState)
	assert.ErrorIs(t, pay("pi_small"), apperror.ErrInvalidArgument)
	require.NoError(t, pay("pi_ok"))

	txs, err := f.settlement.ListTransactions(f.ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "pi_ok", txs[0].BankcardReference())
}

func settledOrder(t *testing.T, f *fixture, bankcardRef string) (*entity.Order, *entity.Transaction) {
	t.Helper()
	p := f.product(t, "Coffee beans", "10.00", 10)
	order := f.openOrder(t)
	item := f.addProduct(t, order.ID, p.ID, 2)
	input := &ProcessTransactionInput{OrderID: order.ID, ItemIDs: []uuid.UUID{item.ID}, PaidByCash: dec("20")}
	if bankcardRef != "" {
		input.PaidByCash = dec("5")
		input.PaidByBankcard = dec("15")
		input.ExternalTransactionID = bankcardRef
	}
	tx, err := f.settlement.ProcessTransaction(f.ctx, input)
	require.NoError(t, err)
	return order, tx
}

func TestRefundToGiftcardIsAlwaysRejected(t *testing.T) {
	f := newFixture(t)
	order, tx := settledOrder(t, f, "")

	for _, input := range []*RefundInput{
		{OrderID: order.ID, TransactionID: tx.ID, Method: "Giftcard", Amount: dec("5")},
		{OrderID: uuid.New(), TransactionID: uuid.New(), Method: "giftcard", Amount: dec("-1")},
	} {
		_, err := f.settlement.RefundTransaction(f.ctx, input)
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	}
	assert.Equal(t, enum.OrderStatusClosed, f.orderStatus(t, order.ID))
}

func TestRefundWithCash(t *testing.T) {
	f := newFixture(t)
	order, tx := settledOrder(t, f, "")

	refund, err := f.settlement.RefundTransaction(f.ctx, &RefundInput{
		OrderID: order.ID, TransactionID: tx.ID, Method: "cash", Amount: dec("20"),
	})
	require.NoError(t, err)

	assert.Equal(t, enum.TransactionTypeRefund, refund.Type)
	assert.Equal(t, tx.ID, *refund.RefundOfID)
	require.Len(t, refund.Payments, 1)
	assert.Equal(t, enum.PaymentMethodCash, refund.Payments[0].Method)
	assert.Equal(t, enum.OrderStatusRefunded, f.orderStatus(t, order.ID))
	assert.Contains(t, f.publisher.types(), messaging.EventOrderRefunded)

	_, err = f.settlement.RefundTransaction(f.ctx, &RefundInput{
		OrderID: order.ID, TransactionID: tx.ID, Method: "cash", Amount: dec("1"),
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidState)

	_, err = f.settlement.RefundTransaction(f.ctx, &RefundInput{
		OrderID: order.ID, TransactionID: refund.ID, Method: "cash", Amount: dec("1"),
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestRefundValidation(t *testing.T) {
	f := newFixture(t)
	order, tx := settledOrder(t, f, "")

	cases := map[string]struct {
		input *RefundInput
		want  error
	}{
		"method":             {&RefundInput{OrderID: order.ID, TransactionID: tx.ID, Method: "cheque", Amount: dec("1")}, apperror.ErrInvalidArgument},
		"zero amount":        {&RefundInput{OrderID: order.ID, TransactionID: tx.ID, Method: "cash"}, apperror.ErrInvalidArgument},
		"over original":      {&RefundInput{OrderID: order.ID, TransactionID: tx.ID, Method: "cash", Amount: dec("20.01")}, apperror.ErrInvalidArgument},
		"unknown tx":         {&RefundInput{OrderID: order.ID, TransactionID: uuid.New(), Method: "cash", Amount: dec("1")}, apperror.ErrNotFound},
		"tx of other order":  {&RefundInput{OrderID: f.openOrder(t).ID, TransactionID: tx.ID, Method: "cash", Amount: dec("1")}, apperror.ErrNotFound},
		"no bankcard to use": {&RefundInput{OrderID: order.ID, TransactionID: tx.ID, Method: "bankcard", Amount: dec("1")}, apperror.ErrInvalidArgument},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.settlement.RefundTransaction(f.ctx, tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, enum.OrderStatusClosed, f.orderStatus(t, order.ID))
}

func TestRefundToBankcardWithoutProcessorKeepsReference(t *testing.T) {
	f := newFixture(t)
	order, tx := settledOrder(t, f, "pi_123")

	refund, err := f.settlement.RefundTransaction(f.ctx, &RefundInput{
		OrderID: order.ID, TransactionID: tx.ID, Method: "Bankcard", Amount: dec("15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", refund.Payments[0].ExternalReference)
}

func TestRefundToBankcardThroughProcessor(t *testing.T) {
	processor := &fakeProcessor{
		lookups: map[string]payments.Authorization{
			"pi_123": {Reference: "pi_123", Status: payments.StatusSucceeded, Amount: dec("15")},
		},
		refund: payments.Refund{ID: "re_9", Reference: "pi_123", Status: payments.StatusSucceeded, Amount: dec("15")},
	}
	f := newFixtureWith(t, processor, nil)
	order, tx := settledOrder(t, f, "pi_123")

	refund, err := f.settlement.RefundTransaction(f.ctx, &RefundInput{
		OrderID: order.ID, TransactionID: tx.ID, Method: "bankcard", Amount: dec("15"), Reason: "requested_by_customer",
	})
	require.NoError(t, err)

	assert.Equal(t, "re_9", refund.Payments[0].ExternalReference)
	require.Len(t, processor.refunds, 1)
	assert.Equal(t, "pi_123", processor.refunds[0].Reference)
	assert.Equal(t, "refund-"+tx.ID.String()+"-15.00", processor.refunds[0].IdempotencyKey)
}

func TestRefundRollsBackWhenProcessorFails(t *testing.T) {
	processor := &fakeProcessor{lookups: map[string]payments.Authorization{
		"pi_123": {Reference: "pi_123", Status: payments.StatusSucceeded, Amount: dec("15")},
	}}
	f := newFixtureWith(t, processor, nil)
	order, tx := settledOrder(t, f, "pi_123")
	processor.err = errors.New("stripe unavailable")

	_, err := f.settlement.RefundTransaction(f.ctx, &RefundInput{
		OrderID: order.ID, TransactionID: tx.ID, Method: "bankcard", Amount: dec("15"),
	})

	require.Error(t, err)
	assert.Equal(t, enum.OrderStatusClosed, f.orderStatus(t, order.ID))
	txs, err := f.settlement.ListTransactions(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

// refundInsertFails stores purchases but rejects refund transactions
type refundInsertFails struct {
	repository.TransactionRepository
}

func (r refundInsertFails) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.Type == enum.TransactionTypeRefund {
		return errors.New("insert failed")
	}
	return r.TransactionRepository.Create(ctx, transaction)
}

func TestRefundLogsCardRefundWhenRecordFails(t *testing.T) {
	processor := &fakeProcessor{
		lookups: map[string]payments.Authorization{
			"pi_123": {Reference: "pi_123", Status: payments.StatusSucceeded, Amount: dec("15")},
		},
		refund: payments.Refund{ID: "re_9", Reference: "pi_123", Status: payments.StatusSucceeded, Amount: dec("15")},
	}
	f := newFixtureWith(t, processor, func(r *Repositories) {
		r.Transactions = refundInsertFails{r.Transactions}
	})
	order, tx := settledOrder(t, f, "pi_123")

	core, logs := observer.New(zap.ErrorLevel)
	settlement := NewSettlementService(f.repos, processor, NewEventSink(nil, "orders", nil), zap.New(core))

	_, err := settlement.RefundTransaction(f.ctx, &RefundInput{
		OrderID: order.ID, TransactionID: tx.ID, Method: "bankcard", Amount: dec("15"),
	})
	require.Error(t, err)
	assert.Equal(t, enum.OrderStatusClosed, f.orderStatus(t, order.ID))

	entries := logs.FilterMessage("card refunded but refund not recorded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "re_9", entries[0].ContextMap()["processor_refund_id"])
	assert.Equal(t, order.ID.String(), entries[0].ContextMap()["order_id"])
}

func TestRefundFailureWithoutCardRefundLogsNothing(t *testing.T) {
	f := newFixtureWith(t, nil, func(r *Repositories) {
		r.Transactions = refundInsertFails{r.Transactions}
	})
	order, tx := settledOrder(t, f, "")

	core, logs := observer.New(zap.ErrorLevel)
	settlement := NewSettlementService(f.repos, nil, NewEventSink(nil, "orders", nil), zap.New(core))

	_, err := settlement.RefundTransaction(f.ctx, &RefundInput{
		OrderID: order.ID, TransactionID: tx.ID, Method: "cash", Amount: dec("5"),
	})
	require.Error(t, err)
	assert.Zero(t, logs.Len())
}

func TestGetTransaction(t *testing.T) {
	f := newFixture(t)
	order, tx := settledOrder(t, f, "")

	got, err := f.settlement.GetTransaction(f.ctx, order.ID, tx.ID)
	require.NoError(t, err)
	assert.Len(t, got.Payments, 1)

	_, err = f.settlement.GetTransaction(f.ctx, uuid.New(), tx.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	other := f.openOrder(t)
	_, err = f.settlement.GetTransaction(f.ctx, other.ID, tx.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.settlement.GetTransaction(WithBusiness(f.ctx, uuid.New()), order.ID, tx.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	got, err = f.settlement.GetTransaction(WithBusiness(f.ctx, f.business.ID), order.ID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
}

func TestAuthorizeCardPayment(t *testing.T) {
	t.Run("without processor", func(t *testing.T) {
		f := newFixture(t)
		order := f.openOrder(t)
		_, err := f.settlement.AuthorizeCardPayment(f.ctx, &AuthorizeCardInput{OrderID: order.ID, Amount: dec("10"), PaymentMethodID: "pm_card_visa"})
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("succeeded", func(t *testing.T) {
		processor := &fakeProcessor{authorize: payments.Authorization{Reference: "pi_new", Status: payments.StatusSucceeded, Amount: dec("10")}}
		f := newFixtureWith(t, processor, nil)
		order := f.openOrder(t)
		auth, err := f.settlement.AuthorizeCardPayment(f.ctx, &AuthorizeCardInput{OrderID: order.ID, Amount: dec("10"), PaymentMethodID: "pm_card_visa"})
		require.NoError(t, err)
		assert.Equal(t, "pi_new", auth.Reference)
	})

	t.Run("declined", func(t *testing.T) {
		processor := &fakeProcessor{authorize: payments.Authorization{Reference: "pi_new", Status: payments.StatusFailed}}
		f := newFixtureWith(t, processor, nil)
		order := f.openOrder(t)
		_, err := f.settlement.AuthorizeCardPayment(f.ctx, &AuthorizeCardInput{OrderID: order.ID, Amount: dec("10"), PaymentMethodID: "pm_card_visa"})
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("bad input", func(t *testing.T) {
		f := newFixtureWith(t, &fakeProcessor{}, nil)
		order := f.openOrder(t)
		_, err := f.settlement.AuthorizeCardPayment(f.ctx, &AuthorizeCardInput{OrderID: order.ID, PaymentMethodID: "pm"})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
		_, err = f.settlement.AuthorizeCardPayment(f.ctx, &AuthorizeCardInput{OrderID: uuid.New(), Amount: dec("1"), PaymentMethodID: "pm"})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
