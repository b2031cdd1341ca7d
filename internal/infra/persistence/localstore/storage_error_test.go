package localstore

import (
	"context"
	"net/http"
	"testing"

	"maison/internal/domain/entity"
	domainerrors "maison/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore simulates a backend outage on every operation.
type failingStore struct {
	err error
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, s.err }

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error { return s.err }

func (s *failingStore) Delete(ctx context.Context, key string) error { return s.err }

func (s *failingStore) Exists(ctx context.Context, key string) (bool, error) { return false, s.err }

func (s *failingStore) Close() error { return nil }

func requireStorageError(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "STORAGE_FAILED", appErr.ErrorCode())
}

func TestCartRepository_StoreFailureSurfacesAsStorageError(t *testing.T) {
	store := &failingStore{err: errors.New("backend unavailable")}
	repo := NewCartRepository(store, newDiscardLogger())
	ctx := context.Background()

	_, err := repo.Load(ctx, entity.NamespaceGuest)
	requireStorageError(t, err)

	requireStorageError(t, repo.Save(ctx, entity.NamespaceGuest, entity.CartItems{}))
	requireStorageError(t, repo.Delete(ctx, entity.NamespaceGuest))

	_, err = repo.Exists(ctx, entity.NamespaceGuest)
	requireStorageError(t, err)
}

func TestPreferenceRepository_StoreFailureSurfacesAsStorageError(t *testing.T) {
	store := &failingStore{err: errors.New("backend unavailable")}
	repo := NewPreferenceRepository(store, newDiscardLogger())
	ctx := context.Background()

	_, err := repo.LoadShipping(ctx, entity.NamespaceGuest)
	requireStorageError(t, err)

	requireStorageError(t, repo.SavePromo(ctx, entity.NamespaceGuest, entity.PromoCode{Code: "SAVE10"}))
	requireStorageError(t, repo.DeletePromo(ctx, entity.NamespaceGuest))
	requireStorageError(t, repo.DeleteShipping(ctx, entity.NamespaceGuest))
}

func TestWishlistRepository_StoreFailureSurfacesAsStorageError(t *testing.T) {
	store := &failingStore{err: errors.New("backend unavailable")}
	repo := NewWishlistRepository(store, newDiscardLogger())
	ctx := context.Background()

	_, err := repo.Load(ctx, entity.NamespaceForUser("user-1"))
	requireStorageError(t, err)

	requireStorageError(t, repo.Save(ctx, entity.NamespaceForUser("user-1"), entity.Wishlist{"p1"}))
}

func TestAbsentKeyIsNotAStorageError(t *testing.T) {
	store := NewMemory()
	t.Cleanup(func() { store.Close() })

	repo := NewCartRepository(store, newDiscardLogger())

	items, err := repo.Load(context.Background(), entity.NamespaceGuest)
	require.NoError(t, err)
	assert.Empty(t, items)
}
