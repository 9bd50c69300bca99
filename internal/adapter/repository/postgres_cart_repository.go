package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"velora/internal/domain/entity"
	"velora/internal/domain/repository"
)

type postgresCartRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCartRepository(pool *pgxpool.Pool) repository.CartRepository {
	return &postgresCartRepository{pool: pool}
}

const cartColumns = `id, user_id, session_id, created_at, updated_at`

func scanCart(row pgx.Row) (*entity.Cart, error) {
	var cart entity.Cart
	err := row.Scan(&cart.ID, &cart.UserID, &cart.SessionID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan cart: %w", err)
	}
	return &cart, nil
}

func (r *postgresCartRepository) FindByID(ctx context.Context, id string) (*entity.Cart, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
	return scanCart(row)
}

func (r *postgresCartRepository) FindByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1`, userID)
	return scanCart(row)
}

func (r *postgresCartRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.Cart, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE session_id = $1`, sessionID)
	return scanCart(row)
}

func (r *postgresCartRepository) Create(ctx context.Context, cart *entity.Cart) (*entity.Cart, error) {
	cart.ID = uuid.NewString()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO carts (id, user_id, session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		cart.ID, cart.UserID, cart.SessionID, cart.CreatedAt, cart.UpdatedAt,
	)
	if err != nil {
		// A concurrent request won the creation race; the unique index on
		// the identifier guarantees a single surviving cart.
		if isUniqueViolation(err) {
			if cart.UserID != nil {
				return r.FindByUserID(ctx, *cart.UserID)
			}
			return r.FindBySessionID(ctx, *cart.SessionID)
		}
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

func (r *postgresCartRepository) Delete(ctx context.Context, cartID string) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
}

func (r *postgresCartRepository) GetWithItems(ctx context.Context, cartID string) (*entity.CartWithItems, error) {
	cart, err := r.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("cart %s does not exist", cartID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, cart_id, variant_id, quantity, price_at_add, created_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at`,
		cartID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	result := &entity.CartWithItems{Cart: *cart}
	for rows.Next() {
		var item entity.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.VariantID, &item.Quantity, &item.PriceAtAdd, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		result.Items = append(result.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}
	return result, nil
}

func (r *postgresCartRepository) AddOrUpdateItem(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	item.ID = uuid.NewString()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO cart_items (id, cart_id, variant_id, quantity, price_at_add, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cart_id, variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, cart_id, variant_id, quantity, price_at_add, created_at`,
		item.ID, item.CartID, item.VariantID, item.Quantity, item.PriceAtAdd, item.CreatedAt,
	)

	var saved entity.CartItem
	if err := row.Scan(&saved.ID, &saved.CartID, &saved.VariantID, &saved.Quantity, &saved.PriceAtAdd, &saved.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, item.CartID); err != nil {
		return nil, fmt.Errorf("failed to touch cart: %w", err)
	}
	return &saved, nil
}

func (r *postgresCartRepository) GetItem(ctx context.Context, itemID string) (*entity.CartItem, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, cart_id, variant_id, quantity, price_at_add, created_at
		FROM cart_items
		WHERE id = $1`,
		itemID,
	)

	var item entity.CartItem
	err := row.Scan(&item.ID, &item.CartID, &item.VariantID, &item.Quantity, &item.PriceAtAdd, &item.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan cart item: %w", err)
	}
	return &item, nil
}

func (r *postgresCartRepository) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	_, err := r.pool.Exec(ctx, `UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, itemID)
	if err != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}
	return nil
}

func (r *postgresCartRepository) RemoveItem(ctx context.Context, itemID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (r *postgresCartRepository) ClearItems(ctx context.Context, cartID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	return nil
}

// MergeGuestCart moves the guest cart's items into the user's cart inside
// one transaction. Quantities coalesce when the same variant exists in
// both carts; the guest cart row is removed afterwards.
func (r *postgresCartRepository) MergeGuestCart(ctx context.Context, userID, sessionID string) (*entity.Cart, error) {
	var merged *entity.Cart

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		guest, err := scanCart(tx.QueryRow(ctx,
			`SELECT `+cartColumns+` FROM carts WHERE session_id = $1 FOR UPDATE`, sessionID))
		if err != nil {
			return err
		}

		target, err := scanCart(tx.QueryRow(ctx,
			`SELECT `+cartColumns+` FROM carts WHERE user_id = $1 FOR UPDATE`, userID))
		if err != nil {
			return err
		}

		if guest == nil {
			// Nothing to merge; surface the user's cart, creating it if
			// this is the first interaction after login.
			if target == nil {
				newCart, err := entity.NewCart(userID, "")
				if err != nil {
					return err
				}
				newCart.ID = uuid.NewString()
				if _, err := tx.Exec(ctx, `
					INSERT INTO carts (id, user_id, session_id, created_at, updated_at)
					VALUES ($1, $2, $3, $4, $5)`,
					newCart.ID, newCart.UserID, newCart.SessionID, newCart.CreatedAt, newCart.UpdatedAt,
				); err != nil {
					return fmt.Errorf("failed to create user cart: %w", err)
				}
				target = newCart
			}
			merged = target
			return nil
		}

		if target == nil {
			// No user cart yet: adopt the guest cart wholesale.
			if _, err := tx.Exec(ctx, `
				UPDATE carts SET user_id = $1, session_id = NULL, updated_at = NOW()
				WHERE id = $2`,
				userID, guest.ID,
			); err != nil {
				return fmt.Errorf("failed to adopt guest cart: %w", err)
			}
			merged, err = scanCart(tx.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, guest.ID))
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO cart_items (id, cart_id, variant_id, quantity, price_at_add, created_at)
			SELECT gen_random_uuid(), $1, variant_id, quantity, price_at_add, created_at
			FROM cart_items
			WHERE cart_id = $2
			ON CONFLICT (cart_id, variant_id)
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
			target.ID, guest.ID,
		); err != nil {
			return fmt.Errorf("failed to merge cart items: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, guest.ID); err != nil {
			return fmt.Errorf("failed to remove guest cart items: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, guest.ID); err != nil {
			return fmt.Errorf("failed to remove guest cart: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, target.ID); err != nil {
			return fmt.Errorf("failed to touch user cart: %w", err)
		}

		merged = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (r *postgresCartRepository) GetVariantInfo(ctx context.Context, variantID string) (*entity.VariantSnapshot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT v.id, v.product_id, p.name, p.status, v.sku, v.price, v.sale_price, v.stock_quantity
		FROM variants v
		JOIN products p ON p.id = v.product_id
		WHERE v.id = $1`,
		variantID,
	)

	var snap entity.VariantSnapshot
	err := row.Scan(&snap.VariantID, &snap.ProductID, &snap.ProductName, &snap.ProductStatus,
		&snap.SKU, &snap.Price, &snap.SalePrice, &snap.StockQuantity)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan variant snapshot: %w", err)
	}
	return &snap, nil
}

func (r *postgresCartRepository) GetVariantInfoBatch(ctx context.Context, variantIDs []string) (map[string]*entity.VariantSnapshot, error) {
	snapshots := make(map[string]*entity.VariantSnapshot, len(variantIDs))
	if len(variantIDs) == 0 {
		return snapshots, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.product_id, p.name, p.status, v.sku, v.price, v.sale_price, v.stock_quantity
		FROM variants v
		JOIN products p ON p.id = v.product_id
		WHERE v.id = ANY($1)`,
		variantIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query variant snapshots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var snap entity.VariantSnapshot
		if err := rows.Scan(&snap.VariantID, &snap.ProductID, &snap.ProductName, &snap.ProductStatus,
			&snap.SKU, &snap.Price, &snap.SalePrice, &snap.StockQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan variant snapshot: %w", err)
		}
		snapshots[snap.VariantID] = &snap
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variant snapshots: %w", err)
	}
	return snapshots, nil
}
