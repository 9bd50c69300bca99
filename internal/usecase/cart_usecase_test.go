package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora/internal/domain/entity"
	"velora/pkg/errors"
)

func newCartFixture() (*CartUseCase, *fakeCartRepo, *fakeCache) {
	repo := newFakeCartRepo()
	cache := newFakeCache()
	return NewCartUseCase(repo, cache, time.Minute), repo, cache
}

func seedCart(t *testing.T, repo *fakeCartRepo, userID, sessionID string) *entity.Cart {
	t.Helper()
	cart, err := entity.NewCart(userID, sessionID)
	require.NoError(t, err)
	cart, err = repo.Create(context.Background(), cart)
	require.NoError(t, err)
	return cart
}

func TestGetOrCreateCart(t *testing.T) {
	ctx := context.Background()

	t.Run("identifier required", func(t *testing.T) {
		uc, repo, _ := newCartFixture()

		_, err := uc.GetOrCreateCart(ctx, CartIdentity{})

		assert.True(t, errors.Is(err, "CART_IDENTIFIER_REQUIRED"))
		assert.Equal(t, 0, repo.createCalls)
	})

	t.Run("creates once and caches the resolution", func(t *testing.T) {
		uc, repo, cache := newCartFixture()
		identity := CartIdentity{UserID: "user-1"}

		first, err := uc.GetOrCreateCart(ctx, identity)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.createCalls)
		assert.Contains(t, cache.setCalls, "cart:user-1")

		second, err := uc.GetOrCreateCart(ctx, identity)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, repo.createCalls)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		uc, repo, _ := newCartFixture()
		identity := CartIdentity{SessionID: "sess-1"}

		_, err := uc.GetOrCreateCart(ctx, identity)
		require.NoError(t, err)

		lookups := repo.findCalls
		_, err = uc.GetOrCreateCart(ctx, identity)
		require.NoError(t, err)
		assert.Equal(t, lookups, repo.findCalls)
	})

	t.Run("finds the existing cart after cache expiry", func(t *testing.T) {
		uc, repo, cache := newCartFixture()
		identity := CartIdentity{UserID: "user-1"}
		seedCart(t, repo, "user-1", "")

		cache.store = map[string][]byte{}
		cart, err := uc.GetOrCreateCart(ctx, identity)

		require.NoError(t, err)
		assert.Equal(t, 1, repo.createCalls)
		require.NotNil(t, cart.UserID)
		assert.Equal(t, "user-1", *cart.UserID)
	})
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newCartFixture()

	cart := seedCart(t, repo, "user-1", "")
	repo.variants["v-1"] = &entity.VariantSnapshot{
		VariantID:     "v-1",
		Price:         10.0,
		StockQuantity: 1,
		ProductStatus: entity.ProductStatusPublished,
	}
	item, err := entity.NewCartItem(cart.ID, "v-1", 3, 10.0)
	require.NoError(t, err)
	_, err = repo.AddOrUpdateItem(ctx, item)
	require.NoError(t, err)

	detail, err := uc.GetCart(ctx, CartIdentity{UserID: "user-1"})
	require.NoError(t, err)

	require.Len(t, detail.Items, 1)
	require.NotNil(t, detail.Items[0].Variant)
	assert.Equal(t, 30.0, detail.Subtotal)

	require.Len(t, detail.Issues, 1)
	assert.Equal(t, entity.CartIssueStock, detail.Issues[0].Kind)
	assert.Equal(t, entity.CartIssueSeverityError, detail.Issues[0].Severity)

	// read-time validation never mutates the stored cart
	stored, err := repo.GetWithItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 3, stored.Items[0].Quantity)
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	salePrice := 7.5

	t.Run("unknown variant", func(t *testing.T) {
		uc, _, _ := newCartFixture()

		_, err := uc.AddItem(ctx, CartIdentity{UserID: "user-1"}, AddCartItemInput{VariantID: "missing", Quantity: 1})

		assert.True(t, errors.Is(err, "VARIANT_NOT_FOUND"))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		uc, repo, _ := newCartFixture()
		repo.variants["v-1"] = &entity.VariantSnapshot{VariantID: "v-1", Price: 10, StockQuantity: 2, ProductStatus: entity.ProductStatusPublished}

		_, err := uc.AddItem(ctx, CartIdentity{UserID: "user-1"}, AddCartItemInput{VariantID: "v-1", Quantity: 3})

		assert.True(t, errors.Is(err, "INSUFFICIENT_STOCK"))
	})

	t.Run("snapshots the effective price", func(t *testing.T) {
		uc, repo, cache := newCartFixture()
		repo.variants["v-1"] = &entity.VariantSnapshot{VariantID: "v-1", Price: 10, SalePrice: &salePrice, StockQuantity: 5, ProductStatus: entity.ProductStatusPublished}

		item, err := uc.AddItem(ctx, CartIdentity{UserID: "user-1"}, AddCartItemInput{VariantID: "v-1", Quantity: 2})

		require.NoError(t, err)
		assert.Equal(t, 7.5, item.PriceAtAdd)
		assert.True(t, cache.deleted("cart:"+item.CartID))
	})

	t.Run("repeated add coalesces quantities", func(t *testing.T) {
		uc, repo, _ := newCartFixture()
		repo.variants["v-1"] = &entity.VariantSnapshot{VariantID: "v-1", Price: 10, StockQuantity: 10, ProductStatus: entity.ProductStatusPublished}
		identity := CartIdentity{SessionID: "sess-1"}

		first, err := uc.AddItem(ctx, identity, AddCartItemInput{VariantID: "v-1", Quantity: 2})
		require.NoError(t, err)
		second, err := uc.AddItem(ctx, identity, AddCartItemInput{VariantID: "v-1", Quantity: 3})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 5, second.Quantity)
	})
}

func TestUpdateItemQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("missing item", func(t *testing.T) {
		uc, _, _ := newCartFixture()

		err := uc.UpdateItemQuantity(ctx, "missing", 2)

		assert.True(t, errors.Is(err, "CART_ITEM_NOT_FOUND"))
	})

	t.Run("negative quantity", func(t *testing.T) {
		uc, _, _ := newCartFixture()

		err := uc.UpdateItemQuantity(ctx, "item-1", -1)

		assert.True(t, errors.Is(err, "CART_QUANTITY_INVALID"))
	})

	t.Run("zero quantity removes the item", func(t *testing.T) {
		uc, repo, cache := newCartFixture()
		cart := seedCart(t, repo, "user-1", "")
		item, err := entity.NewCartItem(cart.ID, "v-1", 2, 10)
		require.NoError(t, err)
		saved, err := repo.AddOrUpdateItem(ctx, item)
		require.NoError(t, err)

		err = uc.UpdateItemQuantity(ctx, saved.ID, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, repo.removeCalls)
		gone, err := repo.GetItem(ctx, saved.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
		assert.True(t, cache.deleted("cart:"+cart.ID))
	})

	t.Run("positive quantity overwrites", func(t *testing.T) {
		uc, repo, _ := newCartFixture()
		cart := seedCart(t, repo, "user-1", "")
		item, err := entity.NewCartItem(cart.ID, "v-1", 2, 10)
		require.NoError(t, err)
		saved, err := repo.AddOrUpdateItem(ctx, item)
		require.NoError(t, err)

		err = uc.UpdateItemQuantity(ctx, saved.ID, 7)

		require.NoError(t, err)
		updated, err := repo.GetItem(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 7, updated.Quantity)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("missing item fails without deleting", func(t *testing.T) {
		uc, repo, cache := newCartFixture()

		err := uc.RemoveItem(ctx, "missing")

		assert.True(t, errors.Is(err, "CART_ITEM_NOT_FOUND"))
		assert.Equal(t, 0, repo.removeCalls)
		assert.Empty(t, cache.delCalls)
	})

	t.Run("removes and invalidates", func(t *testing.T) {
		uc, repo, cache := newCartFixture()
		cart := seedCart(t, repo, "", "sess-1")
		item, err := entity.NewCartItem(cart.ID, "v-1", 1, 5)
		require.NoError(t, err)
		saved, err := repo.AddOrUpdateItem(ctx, item)
		require.NoError(t, err)

		err = uc.RemoveItem(ctx, saved.ID)

		require.NoError(t, err)
		assert.Equal(t, 1, repo.removeCalls)
		assert.True(t, cache.deleted("cart:"+cart.ID))
	})
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()

	t.Run("missing cart", func(t *testing.T) {
		uc, repo, _ := newCartFixture()

		err := uc.ClearCart(ctx, "missing")

		assert.True(t, errors.Is(err, "CART_NOT_FOUND"))
		assert.Equal(t, 0, repo.clearCalls)
	})

	t.Run("clears items and both cache keys", func(t *testing.T) {
		uc, repo, cache := newCartFixture()
		cart := seedCart(t, repo, "user-1", "")
		item, err := entity.NewCartItem(cart.ID, "v-1", 1, 5)
		require.NoError(t, err)
		_, err = repo.AddOrUpdateItem(ctx, item)
		require.NoError(t, err)

		err = uc.ClearCart(ctx, cart.ID)

		require.NoError(t, err)
		assert.Equal(t, 1, repo.clearCalls)
		withItems, err := repo.GetWithItems(ctx, cart.ID)
		require.NoError(t, err)
		assert.Empty(t, withItems.Items)
		assert.True(t, cache.deleted("cart:"+cart.ID))
		assert.True(t, cache.deleted("cart:user-1"))
	})
}

func TestClearAfterOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("identifier required", func(t *testing.T) {
		uc, _, _ := newCartFixture()

		err := uc.ClearAfterOrder(ctx, CartIdentity{})

		assert.True(t, errors.Is(err, "CART_IDENTIFIER_REQUIRED"))
	})

	t.Run("missing cart is a no-op", func(t *testing.T) {
		uc, repo, _ := newCartFixture()

		err := uc.ClearAfterOrder(ctx, CartIdentity{UserID: "user-1"})

		require.NoError(t, err)
		assert.Equal(t, 0, repo.clearCalls)
	})

	t.Run("clears the resolved cart", func(t *testing.T) {
		uc, repo, cache := newCartFixture()
		cart := seedCart(t, repo, "user-1", "")

		err := uc.ClearAfterOrder(ctx, CartIdentity{UserID: "user-1"})

		require.NoError(t, err)
		assert.Equal(t, 1, repo.clearCalls)
		assert.True(t, cache.deleted("cart:"+cart.ID))
		assert.True(t, cache.deleted("cart:user-1"))
	})
}

func TestMergeGuestCart(t *testing.T) {
	ctx := context.Background()

	t.Run("both identifiers required", func(t *testing.T) {
		uc, _, _ := newCartFixture()

		_, err := uc.MergeGuestCart(ctx, "user-1", "")
		assert.True(t, errors.Is(err, "CART_IDENTIFIER_REQUIRED"))

		_, err = uc.MergeGuestCart(ctx, "", "sess-1")
		assert.True(t, errors.Is(err, "CART_IDENTIFIER_REQUIRED"))
	})

	t.Run("coalesces overlapping items and invalidates", func(t *testing.T) {
		uc, repo, cache := newCartFixture()
		guest := seedCart(t, repo, "", "sess-1")
		target := seedCart(t, repo, "user-1", "")

		guestItem, err := entity.NewCartItem(guest.ID, "v-1", 2, 10)
		require.NoError(t, err)
		_, err = repo.AddOrUpdateItem(ctx, guestItem)
		require.NoError(t, err)
		targetItem, err := entity.NewCartItem(target.ID, "v-1", 3, 10)
		require.NoError(t, err)
		_, err = repo.AddOrUpdateItem(ctx, targetItem)
		require.NoError(t, err)

		merged, err := uc.MergeGuestCart(ctx, "user-1", "sess-1")

		require.NoError(t, err)
		assert.Equal(t, target.ID, merged.ID)

		withItems, err := repo.GetWithItems(ctx, target.ID)
		require.NoError(t, err)
		require.Len(t, withItems.Items, 1)
		assert.Equal(t, 5, withItems.Items[0].Quantity)

		gone, err := repo.FindBySessionID(ctx, "sess-1")
		require.NoError(t, err)
		assert.Nil(t, gone)

		assert.True(t, cache.deleted("cart:user-1"))
		assert.True(t, cache.deleted("cart:sess-1"))
		assert.True(t, cache.deleted("cart:"+target.ID))
	})

	t.Run("guest cart adopted when user has none", func(t *testing.T) {
		uc, repo, _ := newCartFixture()
		guest := seedCart(t, repo, "", "sess-1")

		merged, err := uc.MergeGuestCart(ctx, "user-1", "sess-1")

		require.NoError(t, err)
		assert.Equal(t, guest.ID, merged.ID)
		require.NotNil(t, merged.UserID)
		assert.Equal(t, "user-1", *merged.UserID)
		assert.Nil(t, merged.SessionID)
	})
}
