package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"go.uber.org/zap"
)

type stripePaymentIntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeRefundAPI interface {
	New(params *stripe.RefundParams) (*stripe.Refund, error)
}

// StripeClients lets tests replace the Stripe API clients
type StripeClients struct {
	Intents stripePaymentIntentAPI
	Refunds stripeRefundAPI
}

// StripeConfig configures the StripeProcessor.
type StripeConfig struct {
	APIKey    string
	AccountID string
	Backends  *stripe.Backends
	Logger    *zap.Logger
	Clients   *StripeClients
}

// StripeProcessor implements Processor with Stripe Payment Intents.
type StripeProcessor struct {
	intents stripePaymentIntentAPI
	refunds stripeRefundAPI
	account string
	logger  *zap.Logger
}

var _ Processor = (*StripeProcessor)(nil)

// NewStripeProcessor constructs a Stripe processor using the given configuration.
func NewStripeProcessor(cfg StripeConfig) (*StripeProcessor, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" && cfg.Clients == nil {
		return nil, errors.New("stripe: api key is required")
	}

	var clients StripeClients
	if cfg.Clients != nil {
		clients = *cfg.Clients
	} else {
		sc := client.New(apiKey, cfg.Backends)
		clients = StripeClients{
			Intents: sc.PaymentIntents,
			Refunds: sc.Refunds,
		}
	}
	if clients.Intents == nil || clients.Refunds == nil {
		return nil, errors.New("stripe: incomplete client configuration")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &StripeProcessor{
		intents: clients.Intents,
		refunds: clients.Refunds,
		account: strings.TrimSpace(cfg.AccountID),
		logger:  logger,
	}, nil
}

// Authorize creates and confirms a card Payment Intent in one call.
func (p *StripeProcessor) Authorize(ctx context.Context, req AuthorizeRequest) (Authorization, error) {
	if strings.TrimSpace(req.PaymentMethodID) == "" {
		return Authorization{}, errors.New("stripe: payment method is required")
	}
	if !req.Amount.IsPositive() {
		return Authorization{}, errors.New("stripe: amount must be positive")
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(ToMinorUnits(req.Amount)),
		Currency:           stripe.String(strings.ToLower(req.Currency)),
		PaymentMethod:      stripe.String(req.PaymentMethodID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
	}
	params.Context = ctx
	if req.OrderID != "" {
		params.AddMetadata("order_id", req.OrderID)
	}
	if key := strings.TrimSpace(req.IdempotencyKey); key != "" {
		params.SetIdempotencyKey(key)
	}
	if p.account != "" {
		params.SetStripeAccount(p.account)
	}

	intent, err := p.intents.New(params)
	if err != nil {
		return Authorization{}, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	p.logger.Info("payments.stripe.intent.created",
		zap.String("payment_intent", intent.ID),
		zap.String("status", string(intent.Status)),
		zap.String("order_id", req.OrderID),
	)
	return stripeAuthorization(intent), nil
}

// Lookup retrieves a Payment Intent by id.
func (p *StripeProcessor) Lookup(ctx context.Context, reference string) (Authorization, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	if p.account != "" {
		params.SetStripeAccount(p.account)
	}
	intent, err := p.intents.Get(reference, params)
	if err != nil {
		return Authorization{}, fmt.Errorf("stripe: lookup payment intent: %w", err)
	}
	return stripeAuthorization(intent), nil
}

// Refund creates a refund against a Payment Intent.
func (p *StripeProcessor) Refund(ctx context.Context, req RefundRequest) (Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(req.Reference),
	}
	params.Context = ctx
	if req.Amount.IsPositive() {
		params.Amount = stripe.Int64(ToMinorUnits(req.Amount))
	}
	if reason := mapStripeRefundReason(req.Reason); reason != "" {
		params.Reason = stripe.String(reason)
	}
	if key := strings.TrimSpace(req.IdempotencyKey); key != "" {
		params.SetIdempotencyKey(key)
	}
	if p.account != "" {
		params.SetStripeAccount(p.account)
	}

	refund, err := p.refunds.New(params)
	if err != nil {
		return Refund{}, fmt.Errorf("stripe: refund payment intent: %w", err)
	}
	p.logger.Info("payments.stripe.intent.refunded",
		zap.String("payment_intent", req.Reference),
		zap.String("refund", refund.ID),
	)

	status := StatusPending
	switch refund.Status {
	case stripe.RefundStatusSucceeded:
		status = StatusRefunded
	case stripe.RefundStatusFailed, stripe.RefundStatusCanceled:
		status = StatusFailed
	}
	return Refund{
		ID:        refund.ID,
		Reference: req.Reference,
		Status:    status,
		Amount:    FromMinorUnits(refund.Amount),
	}, nil
}

func stripeAuthorization(intent *stripe.PaymentIntent) Authorization {
	if intent == nil {
		return Authorization{}
	}

	status := StatusPending
	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		status = StatusSucceeded
	case stripe.PaymentIntentStatusCanceled:
		status = StatusFailed
	}
	if charge := intent.LatestCharge; charge != nil && charge.Amount > 0 && charge.AmountRefunded >= charge.Amount {
		status = StatusRefunded
	}

	return Authorization{
		Reference: intent.ID,
		Status:    status,
		Amount:    FromMinorUnits(intent.Amount),
		Currency:  strings.ToUpper(string(intent.Currency)),
	}
}

func mapStripeRefundReason(reason string) string {
	switch strings.ToLower(strings.TrimSpace(reason)) {
	case string(stripe.RefundReasonDuplicate):
		return string(stripe.RefundReasonDuplicate)
	case string(stripe.RefundReasonFraudulent):
		return string(stripe.RefundReasonFraudulent)
	case string(stripe.RefundReasonRequestedByCustomer):
		return string(stripe.RefundReasonRequestedByCustomer)
	default:
		return ""
	}
}
