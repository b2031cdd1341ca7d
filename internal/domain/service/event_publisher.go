package service

import (
	"context"
)

// CheckoutEvent is emitted after a checkout session is created, for
// downstream analytics and back-office consumers.
type CheckoutEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"` // Decimal string, e.g. "104.95"
	PromoCode string `json:"promo_code,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishCheckoutEvent publishes a checkout event for async processing
	PublishCheckoutEvent(ctx context.Context, event *CheckoutEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
