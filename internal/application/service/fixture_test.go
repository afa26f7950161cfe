package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/internal/infrastructure/memory"
	"github.com/sangkips/pos-api/internal/infrastructure/messaging"
	"github.com/sangkips/pos-api/pkg/payments"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.OrderEvent
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.(messaging.OrderEvent))
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeProcessor struct {
	lookups   map[string]payments.Authorization
	authorize payments.Authorization
	refund    payments.Refund
	err       error
	refunds   []payments.RefundRequest
}

func (f *fakeProcessor) Authorize(ctx context.Context, req payments.AuthorizeRequest) (payments.Authorization, error) {
	if f.err != nil {
		return payments.Authorization{}, f.err
	}
	return f.authorize, nil
}

func (f *fakeProcessor) Lookup(ctx context.Context, reference string) (payments.Authorization, error) {
	auth, ok := f.lookups[reference]
	if !ok {
		return payments.Authorization{}, payments.ErrNotConfigured
	}
	return auth, nil
}

func (f *fakeProcessor) Refund(ctx context.Context, req payments.RefundRequest) (payments.Refund, error) {
	if f.err != nil {
		return payments.Refund{}, f.err
	}
	f.refunds = append(f.refunds, req)
	return f.refund, nil
}

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	repos      Repositories
	publisher  *recordingPublisher
	catalog    *CatalogService
	rules      *PricingRuleService
	giftcards  *GiftcardService
	orders     *OrderService
	pricing    *PricingService
	settlement *SettlementService
	business   *entity.Business
}

func storeRepositories(store *memory.Store) Repositories {
	return Repositories{
		Tx:             store,
		Businesses:     store.Businesses(),
		Users:          store.Users(),
		Products:       store.Products(),
		Services:       store.Services(),
		Categories:     store.Categories(),
		Discounts:      store.Discounts(),
		Taxes:          store.Taxes(),
		AppliedPricing: store.AppliedPricing(),
		Giftcards:      store.Giftcards(),
		Orders:         store.Orders(),
		OrderItems:     store.OrderItems(),
		Transactions:   store.Transactions(),
	}
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, nil, nil)
}

// newFixtureWith builds the services over a fresh store. wrap may replace
// repositories before the services are built.
func newFixtureWith(t *testing.T, processor payments.Processor, wrap func(*Repositories)) *fixture {
	t.Helper()

	store := memory.NewStore()
	repos := storeRepositories(store)
	if wrap != nil {
		wrap(&repos)
	}
	publisher := &recordingPublisher{}
	events := NewEventSink(publisher, "orders", nil)

	f := &fixture{
		ctx:        WithActor(context.Background(), uuid.New()),
		store:      store,
		repos:      repos,
		publisher:  publisher,
		catalog:    NewCatalogService(repos),
		rules:      NewPricingRuleService(repos),
		giftcards:  NewGiftcardService(repos),
		orders:     NewOrderService(repos, events, nil),
		pricing:    NewPricingService(repos, events, nil),
		settlement: NewSettlementService(repos, processor, events, nil),
	}

	business, err := f.catalog.CreateBusiness(f.ctx, &CreateBusinessInput{Name: "Corner Shop"})
	require.NoError(t, err)
	f.business = business
	return f
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *entity.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(f.ctx, &CreateProductInput{
		BusinessID:   f.business.ID,
		Name:         name,
		Price:        dec(price),
		InitialStock: stock,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) service(t *testing.T, name, price string) *entity.Service {
	t.Helper()
	s, err := f.catalog.CreateService(f.ctx, &CreateServiceInput{
		BusinessID: f.business.ID,
		Name:       name,
		Price:      dec(price),
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) productGroup(t *testing.T, members ...uuid.UUID) *entity.ProductGroup {
	t.Helper()
	g, err := f.catalog.CreateProductGroup(f.ctx, &CreateGroupInput{
		BusinessID: f.business.ID,
		Name:       "Group",
		MemberIDs:  members,
	})
	require.NoError(t, err)
	return g
}

func (f *fixture) discount(t *testing.T, categoryID uuid.UUID, method, amount, percentage string) *entity.Discount {
	t.Helper()
	d, err := f.rules.CreateDiscount(f.ctx, &CreateDiscountInput{
		BusinessID: f.business.ID,
		Name:       method + " discount",
		Method:     method,
		Active:     true,
		Amount:     dec(amount),
		Percentage: dec(percentage),
		EndDate:    time.Now().Add(24 * time.Hour),
		CategoryID: &categoryID,
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) tax(t *testing.T, categoryID uuid.UUID, percentage string) *entity.Tax {
	t.Helper()
	tx, err := f.rules.CreateTax(f.ctx, &CreateTaxInput{
		BusinessID: f.business.ID,
		Name:       "VAT",
		Active:     true,
		Percentage: dec(percentage),
		CategoryID: &categoryID,
	})
	require.NoError(t, err)
	return tx
}

func (f *fixture) openOrder(t *testing.T) *entity.Order {
	t.Helper()
	o, err := f.orders.AddOrder(f.ctx, &AddOrderInput{BusinessID: f.business.ID})
	require.NoError(t, err)
	return o
}

func (f *fixture) addProduct(t *testing.T, orderID, productID uuid.UUID, qty int) *entity.OrderItem {
	t.Helper()
	item, err := f.pricing.AddItem(f.ctx, &AddItemInput{
		OrderID:   orderID,
		Type:      enum.OrderItemTypeProduct,
		ProductID: &productID,
		Quantity:  qty,
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) stockOf(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	st, err := f.repos.Products.GetStock(f.ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, st)
	return st.Quantity
}

func (f *fixture) orderStatus(t *testing.T, orderID uuid.UUID) enum.OrderStatus {
	t.Helper()
	o, err := f.repos.Orders.GetByID(f.ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o.Status
}
