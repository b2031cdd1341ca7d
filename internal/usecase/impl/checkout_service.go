package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "maison/internal/delivery/context"
	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/domain/repository"
	"maison/internal/domain/service"
	"maison/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	carts     usecase.CartUsecase
	orderRepo repository.OrderRepository
	catalog   service.CatalogService
	qrService service.QRCodeService
	publisher service.EventPublisher
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight map[entity.Namespace]struct{}
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Carts     usecase.CartUsecase
	OrderRepo repository.OrderRepository
	Catalog   service.CatalogService
	QRService service.QRCodeService
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		carts:     params.Carts,
		orderRepo: params.OrderRepo,
		catalog:   params.Catalog,
		qrService: params.QRService,
		publisher: params.Publisher,
		logger:    params.Logger,
		inFlight:  make(map[entity.Namespace]struct{}),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// acquire marks a checkout in flight for the namespace.
func (srv *checkoutService) acquire(ns entity.Namespace) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if _, busy := srv.inFlight[ns]; busy {
		return false
	}
	srv.inFlight[ns] = struct{}{}

	return true
}

// release clears the namespace's in-flight mark.
func (srv *checkoutService) release(ns entity.Namespace) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	delete(srv.inFlight, ns)
}

// BeginCheckout creates a platform checkout session from the current cart,
// records a pending order and emits a checkout event. Failures are never
// retried here; the customer re-initiates.
func (srv *checkoutService) BeginCheckout(ctx context.Context, ns entity.Namespace) (*usecase.CheckoutOutput, error) {
	if ns.IsGuest() {
		return nil, errors.Wrap(domainerrors.ErrAuthenticationRequired, "checkout requires authentication")
	}

	if !srv.acquire(ns) {
		srv.log(ctx).Warn("Rejected concurrent checkout", slog.String("namespace", ns.String()))

		return nil, errors.Wrap(domainerrors.ErrCheckoutInProgress, "checkout already in flight")
	}
	defer srv.release(ns)

	view, err := srv.carts.GetCart(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart for checkout")
	}
	if len(view.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrCartEmpty, "cannot check out an empty cart")
	}

	checkoutURL, err := srv.catalog.CreateCheckoutSession(ctx, checkoutLines(view.Items))
	if err != nil {
		srv.log(ctx).Error("Failed to create checkout session",
			slog.String("namespace", ns.String()),
			slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrCheckoutFailed, "failed to create checkout session")
	}

	order := buildOrder(view, checkoutURL)

	if err := srv.recordOrder(ctx, ns, order); err != nil {
		return nil, err
	}

	srv.publishCheckoutEvent(ctx, ns, order)

	srv.log(ctx).Info("Created checkout session",
		slog.String("namespace", ns.String()),
		slog.String("orderID", order.ID.String()),
		slog.String("total", order.Total.String()))

	return &usecase.CheckoutOutput{CheckoutURL: checkoutURL, Order: order}, nil
}

// SessionQR renders the most recent checkout session's URL as a PNG QR code.
func (srv *checkoutService) SessionQR(ctx context.Context, ns entity.Namespace) ([]byte, error) {
	if ns.IsGuest() {
		return nil, errors.Wrap(domainerrors.ErrAuthenticationRequired, "checkout requires authentication")
	}

	orders, err := srv.orderRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load orders")
	}
	if len(orders) == 0 {
		return nil, errors.Wrap(domainerrors.ErrNoCheckoutSession, "no checkout session recorded")
	}

	png, err := srv.qrService.GenerateCheckoutQR(orders[0].CheckoutURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render checkout QR code")
	}

	return png, nil
}

// recordOrder prepends the order so the most recent session stays first.
func (srv *checkoutService) recordOrder(ctx context.Context, ns entity.Namespace, order *entity.Order) error {
	orders, err := srv.orderRepo.Load(ctx, ns)
	if err != nil {
		return errors.Wrap(err, "failed to load orders")
	}

	orders = append([]entity.Order{*order}, orders...)

	if err := srv.orderRepo.Save(ctx, ns, orders); err != nil {
		return errors.Wrap(err, "failed to record order")
	}

	return nil
}

// publishCheckoutEvent emits the event without blocking the checkout; a
// publish failure is logged and dropped.
func (srv *checkoutService) publishCheckoutEvent(ctx context.Context, ns entity.Namespace, order *entity.Order) {
	event := &service.CheckoutEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:   order.ID.String(),
		UserID:    ns.UserID(),
		ItemCount: orderItemCount(order),
		Total:     order.Total.String(),
		PromoCode: order.PromoCode,
	}

	go func() {
		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := srv.publisher.PublishCheckoutEvent(publishCtx, event); err != nil {
			srv.logger.Error("Failed to publish checkout event",
				slog.String("orderID", event.OrderID),
				slog.Any("error", err))
		}
	}()
}

// checkoutLines translates cart lines into platform checkout lines. The
// variant's platform ID wins when a variant is selected.
func checkoutLines(items entity.CartItems) []service.CheckoutLineItem {
	lines := make([]service.CheckoutLineItem, 0, len(items))
	for _, item := range items {
		variantID := item.ID
		if item.SelectedVariant != nil {
			variantID = item.SelectedVariant.PlatformID
		}
		lines = append(lines, service.CheckoutLineItem{
			VariantID: variantID,
			Quantity:  item.Quantity,
		})
	}

	return lines
}

// buildOrder snapshots the cart view into a pending local order record.
func buildOrder(view *usecase.CartView, checkoutURL string) *entity.Order {
	items := make([]entity.OrderItem, 0, len(view.Items))
	for _, item := range view.Items {
		orderItem := entity.OrderItem{
			ProductID: item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		if item.SelectedVariant != nil {
			orderItem.VariantID = item.SelectedVariant.ID
		}
		items = append(items, orderItem)
	}

	promoCode := ""
	if view.Promo != nil {
		promoCode = view.Promo.Code
	}

	return &entity.Order{
		ID:               uuid.New(),
		Items:            items,
		Subtotal:         view.Quote.Subtotal,
		Discount:         view.Quote.Discount,
		ShippingCost:     view.Quote.ShippingCost,
		Total:            view.Quote.Total,
		PromoCode:        promoCode,
		ShippingOptionID: view.Shipping.ID,
		CheckoutURL:      checkoutURL,
		Status:           entity.OrderStatusPending,
		CreatedAt:        time.Now().UTC(),
	}
}

func orderItemCount(order *entity.Order) int {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}

	return count
}
