package impl

import (
	"io"
	"log/slog"

	"maison/config"
	"maison/internal/domain/repository"
	"maison/internal/infra/persistence/localstore"
)

// testLogger discards output so assertions stay readable.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestConfig mirrors the shipped defaults closely enough for pricing and
// promo assertions.
func newTestConfig() *config.Config {
	return &config.Config{
		Shipping: []config.ShippingOptionConfig{
			{ID: "standard", Name: "Standard Shipping", Price: 5.95, FreeThreshold: 150},
			{ID: "express", Name: "Express Shipping", Price: 14.95},
			{ID: "overnight", Name: "Overnight Shipping", Price: 29.95},
		},
		Promos: []config.PromoCodeConfig{
			{Code: "SAVE10", Description: "10% off your order", Type: "percentage", Value: 10, Active: true},
			{Code: "SAVE20", Description: "20% off orders over $150", Type: "percentage", Value: 20, MinPurchase: 150, Active: true},
			{Code: "FREESHIP", Description: "Free shipping on orders over $50", Type: "free_shipping", MinPurchase: 50, Active: true},
			{Code: "WELCOME15", Description: "15% off your first order", Type: "percentage", Value: 15, Active: false},
		},
	}
}

// cartFixture wires a cart service to a real in-memory state store so tests
// observe the actual persisted key layout.
type cartFixture struct {
	service  *cartService
	store    localstore.Store
	cartRepo repository.CartRepository
	prefRepo repository.PreferenceRepository
}

func newCartFixture() *cartFixture {
	store := localstore.NewMemory()
	logger := testLogger()
	cartRepo := localstore.NewCartRepository(store, logger)
	prefRepo := localstore.NewPreferenceRepository(store, logger)

	service := NewCartService(CartServiceParams{
		CartRepo:       cartRepo,
		PreferenceRepo: prefRepo,
		Config:         newTestConfig(),
		Logger:         logger,
	}).(*cartService)

	return &cartFixture{
		service:  service,
		store:    store,
		cartRepo: cartRepo,
		prefRepo: prefRepo,
	}
}
