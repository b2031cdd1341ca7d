package impl

import (
	"context"
	"sync"

	"maison/internal/domain/entity"
	"maison/internal/domain/service"
)

// stubCatalog is a hand-rolled CatalogService double. Block can be set to a
// channel to hold CreateCheckoutSession open for concurrency tests.
type stubCatalog struct {
	products    []entity.Product
	fetchErr    error
	checkoutURL string
	checkoutErr error
	block       chan struct{}

	mu            sync.Mutex
	checkoutCalls [][]service.CheckoutLineItem
}

func (s *stubCatalog) FetchAllProducts(_ context.Context) ([]entity.Product, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}

	return s.products, nil
}

func (s *stubCatalog) FetchProduct(_ context.Context, id string) (*entity.Product, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}

	return nil, nil
}

func (s *stubCatalog) CreateCheckoutSession(_ context.Context, lines []service.CheckoutLineItem) (string, error) {
	s.mu.Lock()
	s.checkoutCalls = append(s.checkoutCalls, lines)
	s.mu.Unlock()

	if s.block != nil {
		<-s.block
	}
	if s.checkoutErr != nil {
		return "", s.checkoutErr
	}

	return s.checkoutURL, nil
}

func (s *stubCatalog) calls() [][]service.CheckoutLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([][]service.CheckoutLineItem(nil), s.checkoutCalls...)
}

// stubPublisher records published checkout events.
type stubPublisher struct {
	mu     sync.Mutex
	events []service.CheckoutEvent
	err    error
}

func (s *stubPublisher) PublishCheckoutEvent(_ context.Context, event *service.CheckoutEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, *event)

	return nil
}

func (s *stubPublisher) Close() error { return nil }

func (s *stubPublisher) published() []service.CheckoutEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]service.CheckoutEvent(nil), s.events...)
}

// stubQR returns fixed bytes for any URL.
type stubQR struct {
	png []byte
	err error

	mu   sync.Mutex
	urls []string
}

func (s *stubQR) GenerateCheckoutQR(checkoutURL string) ([]byte, error) {
	s.mu.Lock()
	s.urls = append(s.urls, checkoutURL)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	return s.png, nil
}

// stubIdentity is a hand-rolled IdentityService double.
type stubIdentity struct {
	user       *entity.User
	idToken    string
	signUpErr  error
	signInErr  error
	verifyErr  error
	updateErr  error
	lastUpdate service.ProfileUpdate
}

func (s *stubIdentity) VerifyIDToken(_ context.Context, _ string) (*entity.User, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}

	return s.user, nil
}

func (s *stubIdentity) SignUp(_ context.Context, _, _ string) (*entity.User, error) {
	if s.signUpErr != nil {
		return nil, s.signUpErr
	}

	return s.user, nil
}

func (s *stubIdentity) SignInWithPassword(_ context.Context, _, _ string) (*entity.User, string, error) {
	if s.signInErr != nil {
		return nil, "", s.signInErr
	}

	return s.user, s.idToken, nil
}

func (s *stubIdentity) UpdateProfile(_ context.Context, _ string, update service.ProfileUpdate) (*entity.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.lastUpdate = update
	updated := *s.user
	if update.DisplayName != nil {
		updated.DisplayName = *update.DisplayName
	}
	if update.PhotoURL != nil {
		updated.PhotoURL = *update.PhotoURL
	}

	return &updated, nil
}

func (s *stubIdentity) GetUser(_ context.Context, _ string) (*entity.User, error) {
	return s.user, nil
}

// stubProviderVerifier asserts a fixed identity for any provider token.
type stubProviderVerifier struct {
	user *entity.User
	err  error
}

func (s *stubProviderVerifier) VerifyProviderToken(_ context.Context, _ string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.user, nil
}
