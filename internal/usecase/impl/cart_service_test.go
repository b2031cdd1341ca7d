package impl

import (
	"context"
	"testing"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/infra/persistence/localstore"
	"maison/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addInput(productID string, price float64, quantity int) *usecase.AddItemInput {
	return &usecase.AddItemInput{
		ProductID: productID,
		Name:      "Fragrance " + productID,
		Price:     decimal.NewFromFloat(price),
		Quantity:  quantity,
	}
}

func TestCartService_AddItem_MergesSameProduct(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 1))
	require.NoError(t, err)
	_, err = fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 2))
	require.NoError(t, err)
	view, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 3))
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ID)
	assert.Equal(t, 6, view.Items[0].Quantity)
}

func TestCartService_AddItem_LastPriceWins(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 1))
	require.NoError(t, err)
	view, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 75, 1))
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.True(t, view.Items[0].Price.Equal(decimal.NewFromFloat(75)))
}

func TestCartService_AddItem_DefaultsQuantityToOne(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	view, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 0))
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestCartService_UpdateQuantityZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()

	zeroed := newCartFixture()
	_, err := zeroed.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 2))
	require.NoError(t, err)
	_, err = zeroed.service.AddItem(ctx, entity.NamespaceGuest, addInput("p2", 30, 1))
	require.NoError(t, err)
	zeroedView, err := zeroed.service.UpdateQuantity(ctx, entity.NamespaceGuest, "p1", 0)
	require.NoError(t, err)

	removed := newCartFixture()
	_, err = removed.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 2))
	require.NoError(t, err)
	_, err = removed.service.AddItem(ctx, entity.NamespaceGuest, addInput("p2", 30, 1))
	require.NoError(t, err)
	removedView, err := removed.service.RemoveItem(ctx, entity.NamespaceGuest, "p1")
	require.NoError(t, err)

	assert.Equal(t, removedView.Items, zeroedView.Items)
	assert.True(t, removedView.Quote.Total.Equal(zeroedView.Quote.Total))
}

func TestCartService_UpdateQuantity_UnknownProductIsNoop(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 1))
	require.NoError(t, err)

	view, err := fx.service.UpdateQuantity(ctx, entity.NamespaceGuest, "missing", 5)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ID)
}

func TestCartService_TotalsRecomputedFresh(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 40, 2))
	require.NoError(t, err)

	view, err := fx.service.GetCart(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	expected := view.Quote.Subtotal.Sub(view.Quote.Discount).Add(view.Quote.ShippingCost)
	assert.True(t, view.Quote.Total.Equal(expected))

	// Changing the underlying items must change the next read's totals.
	_, err = fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p2", 25, 1))
	require.NoError(t, err)

	after, err := fx.service.GetCart(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.True(t, after.Quote.Subtotal.Equal(decimal.NewFromFloat(105)))
	assert.True(t, after.Quote.Total.Equal(after.Quote.Subtotal.Sub(after.Quote.Discount).Add(after.Quote.ShippingCost)))
}

func TestCartService_ApplyPromo_Save10(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 100, 1))
	require.NoError(t, err)

	result, err := fx.service.ApplyPromoCode(ctx, entity.NamespaceGuest, "save10")
	require.NoError(t, err)
	require.True(t, result.Applied)
	assert.Equal(t, "10% off your order", result.Message)

	view, err := fx.service.GetCart(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.True(t, view.Quote.Discount.Equal(decimal.NewFromFloat(10)))
	assert.True(t, view.Quote.Total.Equal(decimal.NewFromFloat(90).Add(view.Quote.ShippingCost)))
}

func TestCartService_ApplyPromo_UnknownCode(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	result, err := fx.service.ApplyPromoCode(ctx, entity.NamespaceGuest, "NOPE")
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, "Invalid promo code", result.Message)
}

func TestCartService_ApplyPromo_InactiveCodeIsInvalid(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	result, err := fx.service.ApplyPromoCode(ctx, entity.NamespaceGuest, "WELCOME15")
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, "Invalid promo code", result.Message)
}

func TestCartService_ApplyPromo_BelowMinimumLeavesPromoUnchanged(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 80, 1))
	require.NoError(t, err)

	result, err := fx.service.ApplyPromoCode(ctx, entity.NamespaceGuest, "SAVE20")
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, "Minimum purchase of $150 required", result.Message)

	view, err := fx.service.GetCart(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.Nil(t, view.Promo)
}

func TestCartService_ApplyPromo_ReplacesPrevious(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 200, 1))
	require.NoError(t, err)

	_, err = fx.service.ApplyPromoCode(ctx, entity.NamespaceGuest, "SAVE10")
	require.NoError(t, err)
	result, err := fx.service.ApplyPromoCode(ctx, entity.NamespaceGuest, "SAVE20")
	require.NoError(t, err)
	require.True(t, result.Applied)

	view, err := fx.service.GetCart(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	require.NotNil(t, view.Promo)
	assert.Equal(t, "SAVE20", view.Promo.Code)
	assert.True(t, view.Quote.Discount.Equal(decimal.NewFromFloat(40)))
}

func TestCartService_FreeShippingPromoZeroesShipping(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 60, 1))
	require.NoError(t, err)
	_, err = fx.service.SelectShipping(ctx, entity.NamespaceGuest, "express")
	require.NoError(t, err)

	result, err := fx.service.ApplyPromoCode(ctx, entity.NamespaceGuest, "FREESHIP")
	require.NoError(t, err)
	require.True(t, result.Applied)

	view, err := fx.service.GetCart(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.True(t, view.Quote.ShippingCost.IsZero())
	assert.True(t, view.Quote.Total.Equal(decimal.NewFromFloat(60)))
}

func TestCartService_RemovePromoCode(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 100, 1))
	require.NoError(t, err)
	_, err = fx.service.ApplyPromoCode(ctx, entity.NamespaceGuest, "SAVE10")
	require.NoError(t, err)

	view, err := fx.service.RemovePromoCode(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.Nil(t, view.Promo)
	assert.True(t, view.Quote.Discount.IsZero())

	// Removal deletes the storage key instead of writing a null.
	exists, err := fx.store.Exists(ctx, localstore.PromoKey(entity.NamespaceGuest))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCartService_SelectShipping_UnknownOption(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.SelectShipping(ctx, entity.NamespaceGuest, "teleport")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownShippingOption))
}

func TestCartService_FreeThresholdZeroesShippingCost(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 75, 2))
	require.NoError(t, err)
	_, err = fx.service.SelectShipping(ctx, entity.NamespaceGuest, "standard")
	require.NoError(t, err)

	view, err := fx.service.GetCart(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.True(t, view.Quote.Subtotal.Equal(decimal.NewFromFloat(150)))
	assert.True(t, view.Quote.ShippingCost.IsZero())
	assert.True(t, view.Quote.Total.Equal(decimal.NewFromFloat(150)))
}

func TestCartService_DefaultShippingIsFirstConfigured(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	view, err := fx.service.GetCart(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.Equal(t, "standard", view.Shipping.ID)
}

func TestCartService_Clear_KeepsSelections(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 100, 1))
	require.NoError(t, err)
	_, err = fx.service.SelectShipping(ctx, entity.NamespaceGuest, "express")
	require.NoError(t, err)
	_, err = fx.service.ApplyPromoCode(ctx, entity.NamespaceGuest, "SAVE10")
	require.NoError(t, err)

	view, err := fx.service.Clear(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, "express", view.Shipping.ID)
	require.NotNil(t, view.Promo)
	assert.Equal(t, "SAVE10", view.Promo.Code)
}

func TestCartService_ActivateIdentity_MigratesGuestCart(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 2))
	require.NoError(t, err)
	_, err = fx.service.SelectShipping(ctx, entity.NamespaceGuest, "express")
	require.NoError(t, err)

	require.NoError(t, fx.service.ActivateIdentity(ctx, "u1"))

	userNS := entity.NamespaceForUser("u1")
	view, err := fx.service.GetCart(ctx, userNS)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, "express", view.Shipping.ID)

	// Migration is one-way; the guest entries are gone.
	guestHasCart, err := fx.cartRepo.Exists(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.False(t, guestHasCart)

	guestShipping, err := fx.prefRepo.LoadShipping(ctx, entity.NamespaceGuest)
	require.NoError(t, err)
	assert.Nil(t, guestShipping)
}

func TestCartService_ActivateIdentity_Idempotent(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 2))
	require.NoError(t, err)

	require.NoError(t, fx.service.ActivateIdentity(ctx, "u1"))

	// A new guest session fills the guest cart again; re-activating the
	// same user must not absorb or duplicate it.
	_, err = fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p9", 10, 5))
	require.NoError(t, err)

	require.NoError(t, fx.service.ActivateIdentity(ctx, "u1"))

	view, err := fx.service.GetCart(ctx, entity.NamespaceForUser("u1"))
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ID)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestCartService_ActivateIdentity_KeepsExistingUserCart(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()
	userNS := entity.NamespaceForUser("u1")

	_, err := fx.service.AddItem(ctx, userNS, addInput("owned", 120, 1))
	require.NoError(t, err)
	_, err = fx.service.AddItem(ctx, entity.NamespaceGuest, addInput("p1", 50, 2))
	require.NoError(t, err)

	require.NoError(t, fx.service.ActivateIdentity(ctx, "u1"))

	view, err := fx.service.GetCart(ctx, userNS)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "owned", view.Items[0].ID)
}

func TestCartService_ActivateIdentity_NoGuestStateIsNoop(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	require.NoError(t, fx.service.ActivateIdentity(ctx, "u1"))

	exists, err := fx.cartRepo.Exists(ctx, entity.NamespaceForUser("u1"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCartService_NamespacesAreIsolated(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, entity.NamespaceForUser("u1"), addInput("p1", 50, 1))
	require.NoError(t, err)
	_, err = fx.service.ApplyPromoCode(ctx, entity.NamespaceForUser("u1"), "SAVE10")
	require.NoError(t, err)

	view, err := fx.service.GetCart(ctx, entity.NamespaceForUser("u2"))
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Nil(t, view.Promo)
}
