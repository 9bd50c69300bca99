package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"velora/internal/domain/entity"
	"velora/internal/domain/repository"
	"velora/pkg/errors"
)

type fakeCache struct {
	store    map[string][]byte
	setCalls []string
	delCalls []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = payload
	c.setCalls = append(c.setCalls, key)
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.store, key)
		c.delCalls = append(c.delCalls, key)
	}
	return nil
}

func (c *fakeCache) deleted(key string) bool {
	for _, k := range c.delCalls {
		if k == key {
			return true
		}
	}
	return false
}

type fakeCartRepo struct {
	carts    map[string]*entity.Cart
	items    map[string]*entity.CartItem
	variants map[string]*entity.VariantSnapshot

	nextID      int
	createCalls int
	removeCalls int
	clearCalls  int
	findCalls   int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts:    map[string]*entity.Cart{},
		items:    map[string]*entity.CartItem{},
		variants: map[string]*entity.VariantSnapshot{},
	}
}

func (r *fakeCartRepo) id(prefix string) string {
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func (r *fakeCartRepo) FindByID(ctx context.Context, id string) (*entity.Cart, error) {
	r.findCalls++
	return r.carts[id], nil
}

func (r *fakeCartRepo) FindByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	r.findCalls++
	for _, cart := range r.carts {
		if cart.UserID != nil && *cart.UserID == userID {
			return cart, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) FindBySessionID(ctx context.Context, sessionID string) (*entity.Cart, error) {
	r.findCalls++
	for _, cart := range r.carts {
		if cart.SessionID != nil && *cart.SessionID == sessionID {
			return cart, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) Create(ctx context.Context, cart *entity.Cart) (*entity.Cart, error) {
	r.createCalls++
	cart.ID = r.id("cart")
	r.carts[cart.ID] = cart
	return cart, nil
}

func (r *fakeCartRepo) Delete(ctx context.Context, cartID string) error {
	delete(r.carts, cartID)
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakeCartRepo) GetWithItems(ctx context.Context, cartID string) (*entity.CartWithItems, error) {
	cart, ok := r.carts[cartID]
	if !ok {
		return nil, fmt.Errorf("cart %s does not exist", cartID)
	}
	result := &entity.CartWithItems{Cart: *cart}
	for _, item := range r.items {
		if item.CartID == cartID {
			result.Items = append(result.Items, *item)
		}
	}
	return result, nil
}

func (r *fakeCartRepo) AddOrUpdateItem(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	for _, existing := range r.items {
		if existing.CartID == item.CartID && existing.VariantID == item.VariantID {
			existing.Quantity += item.Quantity
			saved := *existing
			return &saved, nil
		}
	}
	stored := *item
	stored.ID = r.id("item")
	r.items[stored.ID] = &stored
	saved := stored
	return &saved, nil
}

func (r *fakeCartRepo) GetItem(ctx context.Context, itemID string) (*entity.CartItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (r *fakeCartRepo) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	if item, ok := r.items[itemID]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, itemID string) error {
	r.removeCalls++
	delete(r.items, itemID)
	return nil
}

func (r *fakeCartRepo) ClearItems(ctx context.Context, cartID string) error {
	r.clearCalls++
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakeCartRepo) MergeGuestCart(ctx context.Context, userID, sessionID string) (*entity.Cart, error) {
	guest, _ := r.FindBySessionID(ctx, sessionID)
	target, _ := r.FindByUserID(ctx, userID)

	if guest == nil {
		if target == nil {
			cart, err := entity.NewCart(userID, "")
			if err != nil {
				return nil, err
			}
			return r.Create(ctx, cart)
		}
		return target, nil
	}

	if target == nil {
		guest.UserID = &userID
		guest.SessionID = nil
		return guest, nil
	}

	for id, item := range r.items {
		if item.CartID != guest.ID {
			continue
		}
		moved := *item
		moved.CartID = target.ID
		delete(r.items, id)
		if _, err := r.AddOrUpdateItem(ctx, &moved); err != nil {
			return nil, err
		}
	}
	delete(r.carts, guest.ID)
	return target, nil
}

func (r *fakeCartRepo) GetVariantInfo(ctx context.Context, variantID string) (*entity.VariantSnapshot, error) {
	return r.variants[variantID], nil
}

func (r *fakeCartRepo) GetVariantInfoBatch(ctx context.Context, variantIDs []string) (map[string]*entity.VariantSnapshot, error) {
	result := map[string]*entity.VariantSnapshot{}
	for _, id := range variantIDs {
		if snap, ok := r.variants[id]; ok {
			result[id] = snap
		}
	}
	return result, nil
}

var _ repository.CartRepository = (*fakeCartRepo)(nil)

type fakeProductRepo struct {
	products    map[string]*entity.Product
	listCalls   int
	deleteCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	product.ID = fmt.Sprintf("prod-%d", len(r.products)+1)
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	return product, nil
}

func (r *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	for _, product := range r.products {
		if product.Slug == slug {
			return product, nil
		}
	}
	return nil, errors.NotFound("PRODUCT_NOT_FOUND", "Product not found", nil)
}

func (r *fakeProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	r.listCalls++
	var products []*entity.Product
	for _, product := range r.products {
		products = append(products, product)
	}
	return products, int64(len(products)), nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	r.deleteCalls++
	delete(r.products, id)
	return nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

type fakeWishlistRepo struct {
	items    map[string]*entity.WishlistItem
	addCalls int
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{items: map[string]*entity.WishlistItem{}}
}

func pairKey(userID, productID string) string {
	return userID + "|" + productID
}

func (r *fakeWishlistRepo) AddItem(ctx context.Context, userID, productID string) (*entity.WishlistItem, error) {
	r.addCalls++
	key := pairKey(userID, productID)
	if _, exists := r.items[key]; exists {
		return nil, errors.BadRequest("DUPLICATE_ITEM", "Product already in wishlist", nil)
	}
	item := &entity.WishlistItem{
		ID:        key,
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	r.items[key] = item
	return item, nil
}

func (r *fakeWishlistRepo) RemoveItem(ctx context.Context, userID, productID string) error {
	delete(r.items, pairKey(userID, productID))
	return nil
}

func (r *fakeWishlistRepo) Contains(ctx context.Context, userID, productID string) (bool, error) {
	_, ok := r.items[pairKey(userID, productID)]
	return ok, nil
}

func (r *fakeWishlistRepo) List(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithProduct, int64, error) {
	var items []entity.WishlistItemWithProduct
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, entity.WishlistItemWithProduct{
				ID:        item.ID,
				UserID:    item.UserID,
				ProductID: item.ProductID,
				CreatedAt: item.CreatedAt,
			})
		}
	}
	return items, int64(len(items)), nil
}

func (r *fakeWishlistRepo) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, item := range r.items {
		if item.UserID == userID {
			count++
		}
	}
	return count, nil
}

var _ repository.WishlistRepository = (*fakeWishlistRepo)(nil)
