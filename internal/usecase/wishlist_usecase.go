package usecase

import (
	"context"
	"time"

	"velora/internal/domain/repository"
	"velora/pkg/errors"
	"velora/pkg/logger"
)

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistUseCase(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

type WishlistItemResponse struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	ProductID string      `json:"product_id"`
	Product   *ProductDTO `json:"product,omitempty"`
	CreatedAt string      `json:"created_at"`
}

func (uc *WishlistUseCase) AddToWishlist(ctx context.Context, userID, productID string) (*WishlistItemResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.NotFound("PRODUCT_NOT_FOUND", "Product not found", err)
	}

	item, err := uc.wishlistRepo.AddItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	logger.Info("Added product %s to wishlist for user %s", productID, userID)

	productDTO := toProductDTO(product)
	return &WishlistItemResponse{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Product:   &productDTO,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}, nil
}

// RemoveFromWishlist is idempotent; removing an absent item succeeds.
func (uc *WishlistUseCase) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return uc.wishlistRepo.RemoveItem(ctx, userID, productID)
}

func (uc *WishlistUseCase) GetUserWishlist(ctx context.Context, userID string, page, pageSize int) ([]WishlistItemResponse, int64, error) {
	offset := (page - 1) * pageSize

	items, total, err := uc.wishlistRepo.List(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	response := make([]WishlistItemResponse, 0, len(items))
	for _, item := range items {
		entry := WishlistItemResponse{
			ID:        item.ID,
			UserID:    item.UserID,
			ProductID: item.ProductID,
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		}
		if item.Product != nil {
			productDTO := toProductDTO(item.Product)
			entry.Product = &productDTO
		}
		response = append(response, entry)
	}

	return response, total, nil
}

func (uc *WishlistUseCase) IsInWishlist(ctx context.Context, userID, productID string) (bool, error) {
	return uc.wishlistRepo.Contains(ctx, userID, productID)
}

func (uc *WishlistUseCase) GetWishlistCount(ctx context.Context, userID string) (int64, error) {
	return uc.wishlistRepo.Count(ctx, userID)
}
