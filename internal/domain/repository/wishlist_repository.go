package repository

import (
	"context"

	"velora/internal/domain/entity"
)

type WishlistRepository interface {
	// AddItem fails with DUPLICATE_ITEM when the (userID, productID) pair
	// already exists; uniqueness is enforced by the storage layer.
	AddItem(ctx context.Context, userID, productID string) (*entity.WishlistItem, error)

	// RemoveItem is a no-op success when the pair does not exist.
	RemoveItem(ctx context.Context, userID, productID string) error

	Contains(ctx context.Context, userID, productID string) (bool, error)
	List(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithProduct, int64, error)
	Count(ctx context.Context, userID string) (int64, error)
}
