package usecase

import (
	"context"
	"time"

	"velora/internal/domain/entity"
	"velora/internal/domain/repository"
	"velora/internal/domain/service"
	"velora/pkg/errors"
	"velora/pkg/logger"
)

// Cache key layout: "cart:{identifier}" caches the identifier-to-cart
// resolution written by GetOrCreateCart; "cart:{cartId}" caches the
// hydrated cart detail written by GetCart. Item mutations invalidate the
// detail key, ownership changes invalidate both.
const cartKeyPrefix = "cart:"

type CartUseCase struct {
	cartRepo repository.CartRepository
	cache    service.Cache
	cacheTTL time.Duration
}

func NewCartUseCase(cartRepo repository.CartRepository, cache service.Cache, cacheTTL time.Duration) *CartUseCase {
	return &CartUseCase{
		cartRepo: cartRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// CartIdentity carries the caller's identifiers. UserID wins when both are
// present (an authenticated request may still carry a stale guest header).
type CartIdentity struct {
	UserID    string
	SessionID string
}

func (id CartIdentity) empty() bool {
	return id.UserID == "" && id.SessionID == ""
}

func (id CartIdentity) key() string {
	if id.UserID != "" {
		return cartKeyPrefix + id.UserID
	}
	return cartKeyPrefix + id.SessionID
}

type CartItemDetail struct {
	entity.CartItem
	Variant *entity.VariantSnapshot `json:"variant"`
}

type CartDetail struct {
	Cart     entity.Cart        `json:"cart"`
	Items    []CartItemDetail   `json:"items"`
	Issues   []entity.CartIssue `json:"issues"`
	Subtotal float64            `json:"subtotal"`
}

type AddCartItemInput struct {
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func errCartIdentifierRequired() error {
	return errors.BadRequest("CART_IDENTIFIER_REQUIRED", "A user or session identifier is required", nil)
}

// GetOrCreateCart resolves the caller's cart, creating one on first use.
// At most one cart per identifier is visible to callers; concurrent
// creation is resolved by the storage layer's uniqueness constraints.
func (uc *CartUseCase) GetOrCreateCart(ctx context.Context, identity CartIdentity) (*entity.Cart, error) {
	if identity.empty() {
		return nil, errCartIdentifierRequired()
	}

	var cached entity.Cart
	hit, err := uc.cache.Get(ctx, identity.key(), &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	cart, err := uc.findByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	if cart == nil {
		newCart, err := entity.NewCart(identity.UserID, identity.SessionID)
		if err != nil {
			return nil, err
		}
		cart, err = uc.cartRepo.Create(ctx, newCart)
		if err != nil {
			return nil, err
		}
		logger.Info("Created cart %s for %s", cart.ID, cart.OwnerKey())
	}

	if err := uc.cache.Set(ctx, identity.key(), cart, uc.cacheTTL); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns the cart with items, live variant snapshots and
// validation issues. Discrepancies are surfaced, never repaired.
func (uc *CartUseCase) GetCart(ctx context.Context, identity CartIdentity) (*CartDetail, error) {
	cart, err := uc.GetOrCreateCart(ctx, identity)
	if err != nil {
		return nil, err
	}

	withItems, err := uc.cartRepo.GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	variantIDs := make([]string, 0, len(withItems.Items))
	for _, item := range withItems.Items {
		variantIDs = append(variantIDs, item.VariantID)
	}

	snapshots, err := uc.cartRepo.GetVariantInfoBatch(ctx, variantIDs)
	if err != nil {
		return nil, err
	}

	detail := &CartDetail{
		Cart:   withItems.Cart,
		Items:  make([]CartItemDetail, 0, len(withItems.Items)),
		Issues: withItems.Validate(snapshots),
	}
	for _, item := range withItems.Items {
		detail.Items = append(detail.Items, CartItemDetail{
			CartItem: item,
			Variant:  snapshots[item.VariantID],
		})
		detail.Subtotal += item.PriceAtAdd * float64(item.Quantity)
	}
	return detail, nil
}

// AddItem validates the variant, snapshots its current effective price and
// upserts the line item.
func (uc *CartUseCase) AddItem(ctx context.Context, identity CartIdentity, input AddCartItemInput) (*entity.CartItem, error) {
	cart, err := uc.GetOrCreateCart(ctx, identity)
	if err != nil {
		return nil, err
	}

	snap, err := uc.cartRepo.GetVariantInfo(ctx, input.VariantID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, errors.NotFound("VARIANT_NOT_FOUND", "Variant not found", nil)
	}
	if input.Quantity > snap.StockQuantity {
		return nil, errors.BadRequest("INSUFFICIENT_STOCK", "Requested quantity exceeds available stock", nil)
	}

	item, err := entity.NewCartItem(cart.ID, input.VariantID, input.Quantity, snap.EffectivePrice())
	if err != nil {
		return nil, err
	}

	saved, err := uc.cartRepo.AddOrUpdateItem(ctx, item)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, cartKeyPrefix+cart.ID); err != nil {
		return nil, err
	}
	return saved, nil
}

// UpdateItemQuantity updates a line item. A quantity of zero removes the
// item; zero-quantity rows are never stored.
func (uc *CartUseCase) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 0 {
		return errors.BadRequest("CART_QUANTITY_INVALID", "Quantity must not be negative", nil)
	}

	item, err := uc.cartRepo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return errors.NotFound("CART_ITEM_NOT_FOUND", "Cart item not found", nil)
	}

	if quantity == 0 {
		if err := uc.cartRepo.RemoveItem(ctx, itemID); err != nil {
			return err
		}
	} else if err := uc.cartRepo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return err
	}

	return uc.cache.Delete(ctx, cartKeyPrefix+item.CartID)
}

// RemoveItem fetches the item first so the cart id is known for cache
// invalidation; a missing item fails without issuing a delete.
func (uc *CartUseCase) RemoveItem(ctx context.Context, itemID string) error {
	item, err := uc.cartRepo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return errors.NotFound("CART_ITEM_NOT_FOUND", "Cart item not found", nil)
	}

	if err := uc.cartRepo.RemoveItem(ctx, itemID); err != nil {
		return err
	}
	return uc.cache.Delete(ctx, cartKeyPrefix+item.CartID)
}

func (uc *CartUseCase) ClearCart(ctx context.Context, cartID string) error {
	cart, err := uc.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return errors.NotFound("CART_NOT_FOUND", "Cart not found", nil)
	}

	if err := uc.cartRepo.ClearItems(ctx, cartID); err != nil {
		return err
	}
	return uc.cache.Delete(ctx, cartKeyPrefix+cartID, cartKeyPrefix+cart.OwnerKey())
}

// ClearAfterOrder empties the caller's cart after checkout. A missing cart
// is a silent success so the post-checkout cleanup stays idempotent.
func (uc *CartUseCase) ClearAfterOrder(ctx context.Context, identity CartIdentity) error {
	if identity.empty() {
		return errCartIdentifierRequired()
	}

	cart, err := uc.findByIdentity(ctx, identity)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}

	if err := uc.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		return err
	}
	return uc.cache.Delete(ctx, cartKeyPrefix+cart.ID, identity.key())
}

// MergeGuestCart folds the guest cart into the user's cart on login.
func (uc *CartUseCase) MergeGuestCart(ctx context.Context, userID, sessionID string) (*entity.Cart, error) {
	if userID == "" || sessionID == "" {
		return nil, errCartIdentifierRequired()
	}

	cart, err := uc.cartRepo.MergeGuestCart(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	keys := []string{
		cartKeyPrefix + userID,
		cartKeyPrefix + sessionID,
		cartKeyPrefix + cart.ID,
	}
	if err := uc.cache.Delete(ctx, keys...); err != nil {
		return nil, err
	}

	logger.Info("Merged guest cart for session %s into cart %s", sessionID, cart.ID)
	return cart, nil
}

func (uc *CartUseCase) findByIdentity(ctx context.Context, identity CartIdentity) (*entity.Cart, error) {
	if identity.UserID != "" {
		cart, err := uc.cartRepo.FindByUserID(ctx, identity.UserID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
	}
	if identity.SessionID != "" {
		return uc.cartRepo.FindBySessionID(ctx, identity.SessionID)
	}
	return nil, nil
}
