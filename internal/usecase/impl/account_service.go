package impl

import (
	"context"
	"log/slog"
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

// accountService implements the AccountUsecase interface.
type accountService struct {
	addressRepo repository.AddressRepository
	orderRepo   repository.OrderRepository
	identity    service.IdentityService
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AddressRepo repository.AddressRepository
	OrderRepo   repository.OrderRepository
	Identity    service.IdentityService
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		addressRepo: params.AddressRepo,
		orderRepo:   params.OrderRepo,
		identity:    params.Identity,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func requireUser(ns entity.Namespace) error {
	if ns.IsGuest() {
		return errors.Wrap(domainerrors.ErrAuthenticationRequired, "account pages require authentication")
	}

	return nil
}

// ListAddresses returns the user's address book with the default first.
func (srv *accountService) ListAddresses(ctx context.Context, ns entity.Namespace) ([]entity.Address, error) {
	if err := requireUser(ns); err != nil {
		return nil, err
	}

	addresses, err := srv.addressRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load addresses")
	}

	ordered := make([]entity.Address, 0, len(addresses))
	for _, addr := range addresses {
		if addr.IsDefault {
			ordered = append(ordered, addr)
		}
	}
	for _, addr := range addresses {
		if !addr.IsDefault {
			ordered = append(ordered, addr)
		}
	}

	return ordered, nil
}

// AddAddress appends a new address. The first saved address always becomes
// the default; marking a later one default clears the previous flag.
func (srv *accountService) AddAddress(ctx context.Context, ns entity.Namespace, input *usecase.SaveAddressInput) (*entity.Address, error) {
	if err := requireUser(ns); err != nil {
		return nil, err
	}

	addresses, err := srv.addressRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load addresses")
	}

	now := time.Now().UTC()
	address := entity.Address{
		ID:        uuid.New(),
		Name:      input.Name,
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
		Country:   input.Country,
		IsDefault: input.IsDefault || len(addresses) == 0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if address.IsDefault {
		clearDefault(addresses)
	}
	addresses = append(addresses, address)

	if err := srv.addressRepo.Save(ctx, ns, addresses); err != nil {
		return nil, errors.Wrap(err, "failed to save addresses")
	}

	srv.log(ctx).Debug("Added address",
		slog.String("namespace", ns.String()),
		slog.String("addressID", address.ID.String()))

	return &address, nil
}

// UpdateAddress replaces an existing address's fields.
func (srv *accountService) UpdateAddress(ctx context.Context, ns entity.Namespace, id uuid.UUID, input *usecase.SaveAddressInput) (*entity.Address, error) {
	if err := requireUser(ns); err != nil {
		return nil, err
	}

	addresses, err := srv.addressRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load addresses")
	}

	idx := findAddress(addresses, id)
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrAddressNotFound, "failed to update address")
	}

	if input.IsDefault {
		clearDefault(addresses)
	}

	addresses[idx].Name = input.Name
	addresses[idx].Street = input.Street
	addresses[idx].City = input.City
	addresses[idx].State = input.State
	addresses[idx].ZipCode = input.ZipCode
	addresses[idx].Country = input.Country
	addresses[idx].IsDefault = input.IsDefault
	addresses[idx].UpdatedAt = time.Now().UTC()

	ensureDefault(addresses)

	if err := srv.addressRepo.Save(ctx, ns, addresses); err != nil {
		return nil, errors.Wrap(err, "failed to save addresses")
	}

	updated := addresses[findAddress(addresses, id)]

	return &updated, nil
}

// DeleteAddress removes an address. Deleting the default promotes the first
// remaining address.
func (srv *accountService) DeleteAddress(ctx context.Context, ns entity.Namespace, id uuid.UUID) error {
	if err := requireUser(ns); err != nil {
		return err
	}

	addresses, err := srv.addressRepo.Load(ctx, ns)
	if err != nil {
		return errors.Wrap(err, "failed to load addresses")
	}

	idx := findAddress(addresses, id)
	if idx < 0 {
		return errors.Wrap(domainerrors.ErrAddressNotFound, "failed to delete address")
	}

	addresses = append(addresses[:idx], addresses[idx+1:]...)
	ensureDefault(addresses)

	if err := srv.addressRepo.Save(ctx, ns, addresses); err != nil {
		return errors.Wrap(err, "failed to save addresses")
	}

	srv.log(ctx).Debug("Deleted address",
		slog.String("namespace", ns.String()),
		slog.String("addressID", id.String()))

	return nil
}

// ListOrders returns the user's local order records, most recent first.
func (srv *accountService) ListOrders(ctx context.Context, ns entity.Namespace) ([]entity.Order, error) {
	if err := requireUser(ns); err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.Load(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load orders")
	}

	return orders, nil
}

// UpdateProfile applies profile changes through the identity provider.
func (srv *accountService) UpdateProfile(ctx context.Context, ns entity.Namespace, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if err := requireUser(ns); err != nil {
		return nil, err
	}

	user, err := srv.identity.UpdateProfile(ctx, ns.UserID(), service.ProfileUpdate{
		DisplayName: input.DisplayName,
		PhotoURL:    input.PhotoURL,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update profile",
			slog.String("namespace", ns.String()),
			slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	return user, nil
}

func findAddress(addresses []entity.Address, id uuid.UUID) int {
	for i := range addresses {
		if addresses[i].ID == id {
			return i
		}
	}

	return -1
}

func clearDefault(addresses []entity.Address) {
	for i := range addresses {
		addresses[i].IsDefault = false
	}
}

// ensureDefault promotes the first address when none carries the flag.
func ensureDefault(addresses []entity.Address) {
	if len(addresses) == 0 {
		return
	}
	for i := range addresses {
		if addresses[i].IsDefault {
			return
		}
	}
	addresses[0].IsDefault = true
}
