package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora/pkg/errors"
)

func newWishlistFixture() (*WishlistUseCase, *fakeWishlistRepo, *fakeProductRepo) {
	wishlistRepo := newFakeWishlistRepo()
	productRepo := newFakeProductRepo()
	return NewWishlistUseCase(wishlistRepo, productRepo), wishlistRepo, productRepo
}

func TestAddToWishlist(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown product is rejected before the write", func(t *testing.T) {
		uc, wishlistRepo, _ := newWishlistFixture()

		_, err := uc.AddToWishlist(ctx, "user-1", "missing")

		assert.True(t, errors.Is(err, "PRODUCT_NOT_FOUND"))
		assert.Equal(t, 0, wishlistRepo.addCalls)
	})

	t.Run("adds with product detail", func(t *testing.T) {
		uc, _, productRepo := newWishlistFixture()
		product := seedProduct(t, productRepo, "cotton-tee")

		item, err := uc.AddToWishlist(ctx, "user-1", product.ID)

		require.NoError(t, err)
		assert.Equal(t, "user-1", item.UserID)
		assert.Equal(t, product.ID, item.ProductID)
		require.NotNil(t, item.Product)
		assert.Equal(t, "cotton-tee", item.Product.Slug)
	})

	t.Run("second add is a duplicate", func(t *testing.T) {
		uc, _, productRepo := newWishlistFixture()
		product := seedProduct(t, productRepo, "cotton-tee")

		_, err := uc.AddToWishlist(ctx, "user-1", product.ID)
		require.NoError(t, err)

		_, err = uc.AddToWishlist(ctx, "user-1", product.ID)
		assert.True(t, errors.Is(err, "DUPLICATE_ITEM"))

		count, err := uc.GetWishlistCount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestRemoveFromWishlist(t *testing.T) {
	ctx := context.Background()
	uc, _, productRepo := newWishlistFixture()
	product := seedProduct(t, productRepo, "cotton-tee")

	_, err := uc.AddToWishlist(ctx, "user-1", product.ID)
	require.NoError(t, err)

	require.NoError(t, uc.RemoveFromWishlist(ctx, "user-1", product.ID))

	in, err := uc.IsInWishlist(ctx, "user-1", product.ID)
	require.NoError(t, err)
	assert.False(t, in)

	// removing again is still a success
	assert.NoError(t, uc.RemoveFromWishlist(ctx, "user-1", product.ID))
}

func TestGetUserWishlist(t *testing.T) {
	ctx := context.Background()
	uc, _, productRepo := newWishlistFixture()

	for _, slug := range []string{"item-one", "item-two"} {
		product := seedProduct(t, productRepo, slug)
		_, err := uc.AddToWishlist(ctx, "user-1", product.ID)
		require.NoError(t, err)
	}
	other := seedProduct(t, productRepo, "item-three")
	_, err := uc.AddToWishlist(ctx, "user-2", other.ID)
	require.NoError(t, err)

	items, total, err := uc.GetUserWishlist(ctx, "user-1", 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "user-1", item.UserID)
	}
}
