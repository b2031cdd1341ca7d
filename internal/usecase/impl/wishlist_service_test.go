package impl

import (
	"context"
	"testing"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"
	"maison/internal/infra/persistence/localstore"
	"maison/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWishlistService(store localstore.Store) usecase.WishlistUsecase {
	logger := testLogger()

	return NewWishlistService(WishlistServiceParams{
		WishlistRepo: localstore.NewWishlistRepository(store, logger),
		Logger:       logger,
	})
}

func TestWishlistService_ToggleAddsAndRemoves(t *testing.T) {
	store := localstore.NewMemory()
	defer store.Close()
	service := newWishlistService(store)
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	out, err := service.Toggle(ctx, ns, "p1")
	require.NoError(t, err)
	assert.True(t, out.Saved)
	assert.Equal(t, entity.Wishlist{"p1"}, out.Wishlist)

	out, err = service.Toggle(ctx, ns, "p1")
	require.NoError(t, err)
	assert.False(t, out.Saved)
	assert.Empty(t, out.Wishlist)
}

func TestWishlistService_DoubleToggleRestoresMembership(t *testing.T) {
	store := localstore.NewMemory()
	defer store.Close()
	service := newWishlistService(store)
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	_, err := service.Toggle(ctx, ns, "p1")
	require.NoError(t, err)
	before, err := service.GetWishlist(ctx, ns)
	require.NoError(t, err)

	_, err = service.Toggle(ctx, ns, "p2")
	require.NoError(t, err)
	_, err = service.Toggle(ctx, ns, "p2")
	require.NoError(t, err)

	after, err := service.GetWishlist(ctx, ns)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWishlistService_GuestToggleRequiresSignIn(t *testing.T) {
	store := localstore.NewMemory()
	defer store.Close()
	service := newWishlistService(store)
	ctx := context.Background()

	_, err := service.Toggle(ctx, entity.NamespaceGuest, "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrWishlistSignInRequired))

	// Nothing was written under any guest key.
	exists, err := store.Exists(ctx, localstore.WishlistKey(entity.NamespaceGuest))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWishlistService_GuestWishlistIsEmpty(t *testing.T) {
	store := localstore.NewMemory()
	defer store.Close()
	service := newWishlistService(store)

	wishlist, err := service.GetWishlist(context.Background(), entity.NamespaceGuest)
	require.NoError(t, err)
	assert.Empty(t, wishlist)
}

func TestWishlistService_Contains(t *testing.T) {
	store := localstore.NewMemory()
	defer store.Close()
	service := newWishlistService(store)
	ctx := context.Background()
	ns := entity.NamespaceForUser("u1")

	_, err := service.Toggle(ctx, ns, "p1")
	require.NoError(t, err)

	saved, err := service.Contains(ctx, ns, "p1")
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = service.Contains(ctx, ns, "p2")
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestWishlistService_UsersAreIsolated(t *testing.T) {
	store := localstore.NewMemory()
	defer store.Close()
	service := newWishlistService(store)
	ctx := context.Background()

	_, err := service.Toggle(ctx, entity.NamespaceForUser("u1"), "p1")
	require.NoError(t, err)

	other, err := service.GetWishlist(ctx, entity.NamespaceForUser("u2"))
	require.NoError(t, err)
	assert.Empty(t, other)
}
