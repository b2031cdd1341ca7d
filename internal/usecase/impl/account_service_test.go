package impl

import (
	"context"
	"testing"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/infra/persistence/localstore"
	"maison/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountFixture(identity *stubIdentity) usecase.AccountUsecase {
	store := localstore.NewMemory()
	logger := testLogger()

	return NewAccountService(AccountServiceParams{
		AddressRepo: localstore.NewAddressRepository(store, logger),
		OrderRepo:   localstore.NewOrderRepository(store, logger),
		Identity:    identity,
		Logger:      logger,
	})
}

func sampleAddress(name string, isDefault bool) *usecase.SaveAddressInput {
	return &usecase.SaveAddressInput{
		Name:      name,
		Street:    "31 Rue Cambon",
		City:      "Paris",
		State:     "IDF",
		ZipCode:   "75001",
		Country:   "FR",
		IsDefault: isDefault,
	}
}

func TestAccountService_RequiresAuthentication(t *testing.T) {
	service := newAccountFixture(&stubIdentity{})
	ctx := context.Background()

	_, err := service.ListAddresses(ctx, entity.NamespaceGuest)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationRequired))

	_, err = service.AddAddress(ctx, entity.NamespaceGuest, sampleAddress("Home", false))
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationRequired))

	_, err = service.ListOrders(ctx, entity.NamespaceGuest)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationRequired))
}

func TestAccountService_FirstAddressBecomesDefault(t *testing.T) {
	service := newAccountFixture(&stubIdentity{})
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	first, err := service.AddAddress(ctx, ns, sampleAddress("Home", false))
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := service.AddAddress(ctx, ns, sampleAddress("Office", false))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestAccountService_NewDefaultClearsPrevious(t *testing.T) {
	service := newAccountFixture(&stubIdentity{})
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	_, err := service.AddAddress(ctx, ns, sampleAddress("Home", false))
	require.NoError(t, err)
	office, err := service.AddAddress(ctx, ns, sampleAddress("Office", true))
	require.NoError(t, err)

	addresses, err := service.ListAddresses(ctx, ns)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	// Default first.
	assert.Equal(t, office.ID, addresses[0].ID)
	assert.True(t, addresses[0].IsDefault)
	assert.False(t, addresses[1].IsDefault)
}

func TestAccountService_UpdateAddress(t *testing.T) {
	service := newAccountFixture(&stubIdentity{})
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	created, err := service.AddAddress(ctx, ns, sampleAddress("Home", false))
	require.NoError(t, err)

	input := sampleAddress("Home", true)
	input.City = "Lyon"
	updated, err := service.UpdateAddress(ctx, ns, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Lyon", updated.City)
	assert.True(t, updated.IsDefault)
}

func TestAccountService_UpdateUnknownAddress(t *testing.T) {
	service := newAccountFixture(&stubIdentity{})
	ctx := context.Background()

	_, err := service.UpdateAddress(ctx, entity.NamespaceForUser("u1"), uuid.New(), sampleAddress("Home", false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestAccountService_DeleteDefaultPromotesNext(t *testing.T) {
	service := newAccountFixture(&stubIdentity{})
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	home, err := service.AddAddress(ctx, ns, sampleAddress("Home", false))
	require.NoError(t, err)
	_, err = service.AddAddress(ctx, ns, sampleAddress("Office", false))
	require.NoError(t, err)

	require.NoError(t, service.DeleteAddress(ctx, ns, home.ID))

	addresses, err := service.ListAddresses(ctx, ns)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, "Office", addresses[0].Name)
	assert.True(t, addresses[0].IsDefault)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	identity := &stubIdentity{user: &entity.User{UID: "u1", Email: "a@b.c"}}
	service := newAccountFixture(identity)
	ctx := context.Background()

	name := "Camille"
	user, err := service.UpdateProfile(ctx, entity.NamespaceForUser("u1"), &usecase.UpdateProfileInput{
		DisplayName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Camille", user.DisplayName)
	require.NotNil(t, identity.lastUpdate.DisplayName)
	assert.Equal(t, "Camille", *identity.lastUpdate.DisplayName)
	assert.Nil(t, identity.lastUpdate.PhotoURL)
}

func TestAccountService_ListOrdersEmpty(t *testing.T) {
	service := newAccountFixture(&stubIdentity{})

	orders, err := service.ListOrders(context.Background(), entity.NamespaceForUser("u1"))
	require.NoError(t, err)
	assert.Empty(t, orders)
}
