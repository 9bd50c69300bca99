package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"velora/internal/domain/entity"
	"velora/internal/domain/repository"
	"velora/pkg/errors"
)

type postgresWishlistRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresWishlistRepository(pool *pgxpool.Pool) repository.WishlistRepository {
	return &postgresWishlistRepository{pool: pool}
}

func (r *postgresWishlistRepository) AddItem(ctx context.Context, userID, productID string) (*entity.WishlistItem, error) {
	item := &entity.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist_items (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		item.ID, item.UserID, item.ProductID, item.CreatedAt,
	)
	if err != nil {
		// (user_id, product_id) is unique; a second add is a business error.
		if isUniqueViolation(err) {
			return nil, errors.BadRequest("DUPLICATE_ITEM", "Product already in wishlist", err)
		}
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return item, nil
}

func (r *postgresWishlistRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

func (r *postgresWishlistRepository) Contains(ctx context.Context, userID, productID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return exists, nil
}

func (r *postgresWishlistRepository) List(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithProduct, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
		       p.id, p.slug, p.name, p.description, p.brand_id, p.category_id, p.status, p.created_at, p.updated_at
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	defer rows.Close()

	var items []entity.WishlistItemWithProduct
	for rows.Next() {
		var item entity.WishlistItemWithProduct
		var p entity.Product
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt,
			&p.ID, &p.Slug, &p.Name, &p.Description, &p.BrandID, &p.CategoryID,
			&p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		item.Product = &p
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating wishlist items: %w", err)
	}
	return items, total, nil
}

func (r *postgresWishlistRepository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}
	return count, nil
}
