package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/internal/infrastructure/messaging"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemAppliesCategoryDiscountAndTax(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Coffee beans", "10.00", 10)
	group := f.productGroup(t, p.ID)
	discount := f.discount(t, group.ID, "FIXED", "5.00", "0")
	tax := f.tax(t, group.ID, "10")
	order := f.openOrder(t)

	item := f.addProduct(t, order.ID, p.ID, 2)

	assert.True(t, dec("10.00").Equal(item.Price), "unit price is not changed by automatic discounts")
	require.Len(t, item.AppliedDiscounts, 1)
	assert.Equal(t, discount.ID, item.AppliedDiscounts[0].DiscountID)
	assert.True(t, dec("5.00").Equal(item.AppliedDiscounts[0].Amount))
	require.Len(t, item.AppliedTaxes, 1)
	assert.Equal(t, tax.ID, item.AppliedTaxes[0].TaxID)
	assert.True(t, dec("10").Equal(item.AppliedTaxes[0].Percentage))
	assert.True(t, dec("2.00").Equal(item.AppliedTaxes[0].Amount))
	assert.Equal(t, 8, f.stockOf(t, p.ID))
	assert.Equal(t, []string{messaging.EventOrderItemAdded}, f.publisher.types())
}

func TestAddItemWithoutCategoryGetsNoPricing(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Loose tea", "4.50", 5)
	order := f.openOrder(t)

	item := f.addProduct(t, order.ID, p.ID, 1)

	assert.NotNil(t, item.AppliedDiscounts)
	assert.Empty(t, item.AppliedDiscounts)
	assert.NotNil(t, item.AppliedTaxes)
	assert.Empty(t, item.AppliedTaxes)
}

func TestAddItemPicksLargestDiscount(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Mug", "20.00", 3)
	group := f.productGroup(t, p.ID)
	f.discount(t, group.ID, "FIXED", "2.00", "0")
	best := f.discount(t, group.ID, "FIXED", "6.00", "0")
	order := f.openOrder(t)

	item := f.addProduct(t, order.ID, p.ID, 1)

	require.Len(t, item.AppliedDiscounts, 1)
	assert.Equal(t, best.ID, item.AppliedDiscounts[0].DiscountID)
}

func TestAddItemSkipsExpiredAndInactiveDiscounts(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Mug", "20.00", 3)
	group := f.productGroup(t, p.ID)
	active := f.discount(t, group.ID, "FIXED", "2.00", "0")

	for name, d := range map[string]*CreateDiscountInput{
		"expired":  {Active: true, EndDate: time.Now().Add(-time.Hour)},
		"inactive": {Active: false, EndDate: time.Now().Add(time.Hour)},
	} {
		d.BusinessID = f.business.ID
		d.Name = name
		d.Method = "fixed"
		d.Amount = dec("9.00")
		d.CategoryID = &group.ID
		_, err := f.rules.CreateDiscount(f.ctx, d)
		require.NoError(t, err)
	}

	order := f.openOrder(t)
	item := f.addProduct(t, order.ID, p.ID, 1)

	require.Len(t, item.AppliedDiscounts, 1)
	assert.Equal(t, active.ID, item.AppliedDiscounts[0].DiscountID)
}

func TestAddItemInsufficientStockLeavesStockUnchanged(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Coffee beans", "10.00", 2)
	order := f.openOrder(t)

	_, err := f.pricing.AddItem(f.ctx, &AddItemInput{
		OrderID:   order.ID,
		Type:      enum.OrderItemTypeProduct,
		ProductID: &p.ID,
		Quantity:  3,
	})

	assert.ErrorIs(t, err, apperror.ErrInsufficientResource)
	assert.Equal(t, 2, f.stockOf(t, p.ID))
	items, err := f.orders.GetAllItemsOfOrder(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Coffee beans", "10.00", 2)
	svc := f.service(t, "Grinding", "1.00")
	order := f.openOrder(t)

	cases := map[string]struct {
		input *AddItemInput
		want  error
	}{
		"zero quantity": {
			input: &AddItemInput{OrderID: order.ID, Type: enum.OrderItemTypeProduct, ProductID: &p.ID},
			want:  apperror.ErrInvalidArgument,
		},
		"product item without product": {
			input: &AddItemInput{OrderID: order.ID, Type: enum.OrderItemTypeProduct, ServiceID: &svc.ID, Quantity: 1},
			want:  apperror.ErrInvalidArgument,
		},
		"unknown type": {
			input: &AddItemInput{OrderID: order.ID, Type: enum.OrderItemType(42), ProductID: &p.ID, Quantity: 1},
			want:  apperror.ErrInvalidArgument,
		},
		"missing order": {
			input: &AddItemInput{OrderID: uuid.New(), Type: enum.OrderItemTypeProduct, ProductID: &p.ID, Quantity: 1},
			want:  apperror.ErrNotFound,
		},
		"missing service": {
			input: &AddItemInput{OrderID: order.ID, Type: enum.OrderItemTypeService, ServiceID: &p.ID, Quantity: 1},
			want:  apperror.ErrNotFound,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.pricing.AddItem(f.ctx, tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 2, f.stockOf(t, p.ID))
}

func TestAddItemToClosedOrderFails(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Coffee beans", "10.00", 5)
	order, err := f.orders.AddOrder(f.ctx, &AddOrderInput{BusinessID: f.business.ID, Status: "closed"})
	require.NoError(t, err)

	_, err = f.pricing.AddItem(f.ctx, &AddItemInput{
		OrderID:   order.ID,
		Type:      enum.OrderItemTypeProduct,
		ProductID: &p.ID,
		Quantity:  1,
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidState)
	assert.Equal(t, 5, f.stockOf(t, p.ID))
}

func TestAddServiceItemUsesCatalogPriceUnlessOverridden(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t, "Haircut", "25.00")
	order := f.openOrder(t)

	item, err := f.pricing.AddItem(f.ctx, &AddItemInput{
		OrderID:   order.ID,
		Type:      enum.OrderItemTypeService,
		ServiceID: &svc.ID,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.True(t, dec("25.00").Equal(item.Price))

	override := dec("19.99")
	item, err = f.pricing.AddItem(f.ctx, &AddItemInput{
		OrderID:   order.ID,
		Type:      enum.OrderItemTypeService,
		ServiceID: &svc.ID,
		UnitPrice: &override,
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.True(t, override.Equal(item.Price))
}

type failingTaxes struct {
	repository.AppliedPricingRepository
}

func (failingTaxes) CreateTax(ctx context.Context, applied *entity.AppliedTax) error {
	return errors.New("disk full")
}

func TestAddItemRollsBackStockWhenPricingFails(t *testing.T) {
	f := newFixtureWith(t, nil, func(r *Repositories) {
		r.AppliedPricing = failingTaxes{r.AppliedPricing}
	})
	p := f.product(t, "Coffee beans", "10.00", 10)
	group := f.productGroup(t, p.ID)
	f.discount(t, group.ID, "PERCENTAGE", "0", "10")
	f.tax(t, group.ID, "20")
	order := f.openOrder(t)

	_, err := f.pricing.AddItem(f.ctx, &AddItemInput{
		OrderID:   order.ID,
		Type:      enum.OrderItemTypeProduct,
		ProductID: &p.ID,
		Quantity:  4,
	})

	require.Error(t, err)
	assert.Equal(t, 10, f.stockOf(t, p.ID))
	items, err := f.orders.GetAllItemsOfOrder(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, f.publisher.types())
}

func TestGetAllItemsOfOrderIsStable(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Coffee beans", "10.00", 10)
	group := f.productGroup(t, p.ID)
	f.discount(t, group.ID, "PERCENTAGE", "0", "15")
	order := f.openOrder(t)
	f.addProduct(t, order.ID, p.ID, 2)

	first, err := f.orders.GetAllItemsOfOrder(f.ctx, order.ID)
	require.NoError(t, err)
	second, err := f.orders.GetAllItemsOfOrder(f.ctx, order.ID)
	require.NoError(t, err)

	require.Len(t, first, 1)
	assert.Equal(t, first[0].AppliedDiscounts, second[0].AppliedDiscounts)
	require.Len(t, first[0].AppliedDiscounts, 1)
	assert.True(t, dec("3.00").Equal(first[0].AppliedDiscounts[0].Amount))
}

func TestApplyDiscountToItem(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Coffee beans", "10.00", 10)
	order := f.openOrder(t)
	item := f.addProduct(t, order.ID, p.ID, 3)
	otherGroup := f.productGroup(t)

	t.Run("percentage folds into the unit price", func(t *testing.T) {
		d := f.discount(t, otherGroup.ID, "PERCENTAGE", "0", "10")
		updated, err := f.pricing.ApplyDiscountToItem(f.ctx, order.ID, item.ID, d.ID)
		require.NoError(t, err)
		assert.True(t, dec("9.00").Equal(updated.Price), updated.Price.String())
	})

	t.Run("fixed discount larger than the total floors at zero", func(t *testing.T) {
		d := f.discount(t, otherGroup.ID, "FIXED", "100.00", "0")
		updated, err := f.pricing.ApplyDiscountToItem(f.ctx, order.ID, item.ID, d.ID)
		require.NoError(t, err)
		assert.True(t, updated.Price.IsZero())
	})

	t.Run("inactive discount", func(t *testing.T) {
		d, err := f.rules.CreateDiscount(f.ctx, &CreateDiscountInput{
			BusinessID: f.business.ID,
			Name:       "off",
			Method:     "FIXED",
			Amount:     dec("1"),
			EndDate:    item.CreatedAt.AddDate(1, 0, 0),
		})
		require.NoError(t, err)
		_, err = f.pricing.ApplyDiscountToItem(f.ctx, order.ID, item.ID, d.ID)
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("unknown discount", func(t *testing.T) {
		_, err := f.pricing.ApplyDiscountToItem(f.ctx, order.ID, item.ID, uuid.New())
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("item of another order", func(t *testing.T) {
		other := f.openOrder(t)
		d := f.discount(t, otherGroup.ID, "FIXED", "1.00", "0")
		_, err := f.pricing.ApplyDiscountToItem(f.ctx, other.ID, item.ID, d.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
