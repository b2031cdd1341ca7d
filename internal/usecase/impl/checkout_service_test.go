package impl

import (
	"context"
	"testing"
	"time"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/infra/persistence/localstore"
	"maison/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	service   usecase.CheckoutUsecase
	carts     usecase.CartUsecase
	catalog   *stubCatalog
	publisher *stubPublisher
	qr        *stubQR
	store     localstore.Store
}

func newCheckoutFixture() *checkoutFixture {
	cartFx := newCartFixture()
	catalog := &stubCatalog{checkoutURL: "https://checkout.example/session/abc"}
	publisher := &stubPublisher{}
	qr := &stubQR{png: []byte{0x89, 'P', 'N', 'G'}}

	service := NewCheckoutService(CheckoutServiceParams{
		Carts:     cartFx.service,
		OrderRepo: localstore.NewOrderRepository(cartFx.store, testLogger()),
		Catalog:   catalog,
		QRService: qr,
		Publisher: publisher,
		Logger:    testLogger(),
	})

	return &checkoutFixture{
		service:   service,
		carts:     cartFx.service,
		catalog:   catalog,
		publisher: publisher,
		qr:        qr,
		store:     cartFx.store,
	}
}

func TestCheckoutService_RequiresAuthentication(t *testing.T) {
	fx := newCheckoutFixture()

	_, err := fx.service.BeginCheckout(context.Background(), entity.NamespaceGuest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationRequired))
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	fx := newCheckoutFixture()

	_, err := fx.service.BeginCheckout(context.Background(), entity.NamespaceForUser("u1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartEmpty))
}

func TestCheckoutService_CreatesSessionAndRecordsOrder(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	_, err := fx.carts.AddItem(ctx, ns, addInput("p1", 100, 2))
	require.NoError(t, err)
	_, err = fx.carts.ApplyPromoCode(ctx, ns, "SAVE10")
	require.NoError(t, err)

	out, err := fx.service.BeginCheckout(ctx, ns)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/session/abc", out.CheckoutURL)
	require.NotNil(t, out.Order)
	assert.Equal(t, entity.OrderStatusPending, out.Order.Status)
	assert.Equal(t, "SAVE10", out.Order.PromoCode)
	assert.True(t, out.Order.Subtotal.Equal(decimal.NewFromFloat(200)))
	assert.True(t, out.Order.Discount.Equal(decimal.NewFromFloat(20)))
	// 200 clears the standard tier's free threshold.
	assert.True(t, out.Order.ShippingCost.IsZero())
	assert.True(t, out.Order.Total.Equal(decimal.NewFromFloat(180)))

	calls := fx.catalog.calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0], 1)
	assert.Equal(t, "p1", calls[0][0].VariantID)
	assert.Equal(t, 2, calls[0][0].Quantity)

	orders, err := localstore.NewOrderRepository(fx.store, testLogger()).Load(ctx, ns)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, out.Order.ID, orders[0].ID)
}

func TestCheckoutService_UsesVariantPlatformID(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	input := addInput("p1", 150, 1)
	input.Variant = &entity.VariantRef{
		ID:         "41",
		PlatformID: "gid://shopify/ProductVariant/41",
		Size:       "50ml",
		Price:      decimal.NewFromFloat(150),
	}
	_, err := fx.carts.AddItem(ctx, ns, input)
	require.NoError(t, err)

	_, err = fx.service.BeginCheckout(ctx, ns)
	require.NoError(t, err)

	calls := fx.catalog.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gid://shopify/ProductVariant/41", calls[0][0].VariantID)
}

func TestCheckoutService_PublishesCheckoutEvent(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	_, err := fx.carts.AddItem(ctx, ns, addInput("p1", 100, 2))
	require.NoError(t, err)

	out, err := fx.service.BeginCheckout(ctx, ns)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(fx.publisher.published()) == 1
	}, time.Second, 10*time.Millisecond)

	event := fx.publisher.published()[0]
	assert.Equal(t, out.Order.ID.String(), event.OrderID)
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, 2, event.ItemCount)
	assert.Equal(t, out.Order.Total.String(), event.Total)
}

func TestCheckoutService_PlatformFailure(t *testing.T) {
	fx := newCheckoutFixture()
	fx.catalog.checkoutErr = errors.New("storefront api down")
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	_, err := fx.carts.AddItem(ctx, ns, addInput("p1", 100, 1))
	require.NoError(t, err)

	_, err = fx.service.BeginCheckout(ctx, ns)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutFailed))

	// No order record and no event for a failed session.
	orders, loadErr := localstore.NewOrderRepository(fx.store, testLogger()).Load(ctx, ns)
	require.NoError(t, loadErr)
	assert.Empty(t, orders)
	assert.Empty(t, fx.publisher.published())
}

func TestCheckoutService_SingleCheckoutInFlight(t *testing.T) {
	fx := newCheckoutFixture()
	fx.catalog.block = make(chan struct{})
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	_, err := fx.carts.AddItem(ctx, ns, addInput("p1", 100, 1))
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		_, err := fx.service.BeginCheckout(ctx, ns)
		firstDone <- err
	}()

	// Wait until the first checkout is inside the platform call.
	require.Eventually(t, func() bool {
		return len(fx.catalog.calls()) == 1
	}, time.Second, 10*time.Millisecond)

	_, err = fx.service.BeginCheckout(ctx, ns)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutInProgress))

	close(fx.catalog.block)
	require.NoError(t, <-firstDone)

	// The guard releases once the first checkout finishes.
	_, err = fx.service.BeginCheckout(ctx, ns)
	require.NoError(t, err)
}

func TestCheckoutService_SessionQR(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	_, err := fx.service.SessionQR(ctx, ns)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNoCheckoutSession))

	_, err = fx.carts.AddItem(ctx, ns, addInput("p1", 100, 1))
	require.NoError(t, err)
	_, err = fx.service.BeginCheckout(ctx, ns)
	require.NoError(t, err)

	png, err := fx.service.SessionQR(ctx, ns)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)
}
