package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"
)

type fakeIntents struct {
	created *stripe.PaymentIntentParams
	intent  *stripe.PaymentIntent
	err     error
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.created = params
	return f.intent, f.err
}

func (f *fakeIntents) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

type fakeRefunds struct {
	params *stripe.RefundParams
	refund *stripe.Refund
}

func (f *fakeRefunds) New(params *stripe.RefundParams) (*stripe.Refund, error) {
	f.params = params
	return f.refund, nil
}

func newTestProcessor(t *testing.T, intents *fakeIntents, refunds *fakeRefunds) *StripeProcessor {
	t.Helper()
	p, err := NewStripeProcessor(StripeConfig{Clients: &StripeClients{Intents: intents, Refunds: refunds}})
	require.NoError(t, err)
	return p
}

func TestNewStripeProcessorRequiresKey(t *testing.T) {
	_, err := NewStripeProcessor(StripeConfig{})
	assert.Error(t, err)
}

func TestAuthorizeSendsMinorUnits(t *testing.T) {
	intents := &fakeIntents{intent: &stripe.PaymentIntent{
		ID:       "pi_123",
		Amount:   1550,
		Currency: stripe.CurrencyEUR,
		Status:   stripe.PaymentIntentStatusSucceeded,
	}}
	p := newTestProcessor(t, intents, &fakeRefunds{})

	auth, err := p.Authorize(context.Background(), AuthorizeRequest{
		Amount:          decimal.RequireFromString("15.50"),
		Currency:        "EUR",
		PaymentMethodID: "pm_card_visa",
		OrderID:         "order-1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1550), *intents.created.Amount)
	assert.Equal(t, "eur", *intents.created.Currency)
	assert.True(t, *intents.created.Confirm)
	assert.Equal(t, "order-1", intents.created.Metadata["order_id"])

	assert.Equal(t, "pi_123", auth.Reference)
	assert.True(t, auth.Succeeded())
	assert.True(t, decimal.RequireFromString("15.50").Equal(auth.Amount))
	assert.Equal(t, "EUR", auth.Currency)
}

func TestAuthorizeRejectsMissingPaymentMethod(t *testing.T) {
	p := newTestProcessor(t, &fakeIntents{}, &fakeRefunds{})
	_, err := p.Authorize(context.Background(), AuthorizeRequest{Amount: decimal.NewFromInt(1)})
	assert.Error(t, err)
}

func TestLookupMapsStatus(t *testing.T) {
	cases := []struct {
		intent *stripe.PaymentIntent
		want   Status
	}{
		{&stripe.PaymentIntent{ID: "a", Status: stripe.PaymentIntentStatusProcessing}, StatusPending},
		{&stripe.PaymentIntent{ID: "b", Status: stripe.PaymentIntentStatusCanceled}, StatusFailed},
		{&stripe.PaymentIntent{ID: "c", Status: stripe.PaymentIntentStatusSucceeded}, StatusSucceeded},
		{&stripe.PaymentIntent{ID: "d", Status: stripe.PaymentIntentStatusSucceeded,
			LatestCharge: &stripe.Charge{Amount: 500, AmountRefunded: 500}}, StatusRefunded},
	}
	for _, tc := range cases {
		p := newTestProcessor(t, &fakeIntents{intent: tc.intent}, &fakeRefunds{})
		auth, err := p.Lookup(context.Background(), tc.intent.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, auth.Status, tc.intent.ID)
	}
}

func TestLookupWrapsErrors(t *testing.T) {
	p := newTestProcessor(t, &fakeIntents{err: errors.New("no such intent")}, &fakeRefunds{})
	_, err := p.Lookup(context.Background(), "pi_missing")
	assert.ErrorContains(t, err, "no such intent")
}

func TestRefundPartialAmount(t *testing.T) {
	refunds := &fakeRefunds{refund: &stripe.Refund{ID: "re_1", Amount: 400, Status: stripe.RefundStatusSucceeded}}
	p := newTestProcessor(t, &fakeIntents{}, refunds)

	refund, err := p.Refund(context.Background(), RefundRequest{
		Reference: "pi_123",
		Amount:    decimal.RequireFromString("4.00"),
		Reason:    "Requested_By_Customer",
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", *refunds.params.PaymentIntent)
	assert.Equal(t, int64(400), *refunds.params.Amount)
	assert.Equal(t, "requested_by_customer", *refunds.params.Reason)
	assert.Equal(t, "re_1", refund.ID)
	assert.Equal(t, StatusRefunded, refund.Status)
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	assert.Equal(t, int64(1999), ToMinorUnits(decimal.RequireFromString("19.99")))
	assert.Equal(t, int64(1000), ToMinorUnits(decimal.RequireFromString("9.995")))
	assert.True(t, decimal.RequireFromString("0.05").Equal(FromMinorUnits(5)))
}
