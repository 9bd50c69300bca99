package repository

import (
	"context"

	"velora/internal/domain/entity"
)

// CartRepository hides cart persistence. FindBy* methods are existence
// probes and return (nil, nil) when no row matches; callers decide whether
// absence is an error.
type CartRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Cart, error)
	FindByUserID(ctx context.Context, userID string) (*entity.Cart, error)
	FindBySessionID(ctx context.Context, sessionID string) (*entity.Cart, error)

	// Create persists a new cart. When a concurrent request already created
	// a cart for the same identifier, the unique index wins and the
	// surviving row is returned instead.
	Create(ctx context.Context, cart *entity.Cart) (*entity.Cart, error)

	Delete(ctx context.Context, cartID string) error

	GetWithItems(ctx context.Context, cartID string) (*entity.CartWithItems, error)

	// AddOrUpdateItem is idempotent by variant: an existing
	// (cartID, variantID) row has its quantity incremented rather than a
	// duplicate row inserted.
	AddOrUpdateItem(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error)

	GetItem(ctx context.Context, itemID string) (*entity.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	RemoveItem(ctx context.Context, itemID string) error
	ClearItems(ctx context.Context, cartID string) error

	// MergeGuestCart atomically moves the guest cart's items into the
	// user's cart, coalescing quantities for shared variants, and deletes
	// the guest cart. The surviving user cart is returned.
	MergeGuestCart(ctx context.Context, userID, sessionID string) (*entity.Cart, error)

	GetVariantInfo(ctx context.Context, variantID string) (*entity.VariantSnapshot, error)
	GetVariantInfoBatch(ctx context.Context, variantIDs []string) (map[string]*entity.VariantSnapshot, error)
}
