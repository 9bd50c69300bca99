package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"velora/internal/domain/entity"
	"velora/internal/domain/repository"
	"velora/pkg/errors"
)

type postgresProductRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProductRepository(pool *pgxpool.Pool) repository.ProductRepository {
	return &postgresProductRepository{pool: pool}
}

const productColumns = `id, slug, name, description, brand_id, category_id, status, created_at, updated_at`

var productSortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.BrandID, &p.CategoryID,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) Create(ctx context.Context, product *entity.Product) error {
	product.ID = uuid.NewString()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, slug, name, description, brand_id, category_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		product.ID, product.Slug, product.Name, product.Description,
		product.BrandID, product.CategoryID, product.Status, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("DUPLICATE_SLUG", "A product with this slug already exists")
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("PRODUCT_NOT_FOUND", "Product not found", err)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if err := r.loadVariants(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *postgresProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("PRODUCT_NOT_FOUND", "Product not found", err)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if err := r.loadVariants(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *postgresProductRepository) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	addCond := func(cond string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.CategoryID != "" {
		addCond("category_id = $%d", filter.CategoryID)
	}
	if filter.BrandID != "" {
		addCond("brand_id = $%d", filter.BrandID)
	}
	if filter.Status != "" {
		addCond("status = $%d", filter.Status)
	}
	if filter.Search != "" {
		addCond("name ILIKE $%d", "%"+filter.Search+"%")
	}

	where := strings.Join(conds, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	sortBy, ok := productSortColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, sortBy, sortOrder, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	for _, product := range products {
		if err := r.loadVariants(ctx, product); err != nil {
			return nil, 0, err
		}
	}
	return products, total, nil
}

func (r *postgresProductRepository) Update(ctx context.Context, product *entity.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, brand_id = $3, category_id = $4, status = $5, updated_at = $6
		WHERE id = $7`,
		product.Name, product.Description, product.BrandID, product.CategoryID,
		product.Status, product.UpdatedAt, product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM variants WHERE product_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete product variants: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return errors.NotFound("PRODUCT_NOT_FOUND", "Product not found", nil)
		}
		return nil
	})
}

func (r *postgresProductRepository) loadVariants(ctx context.Context, product *entity.Product) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, sku, price, sale_price, stock_quantity
		FROM variants
		WHERE product_id = $1
		ORDER BY sku`,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Price, &v.SalePrice, &v.StockQuantity); err != nil {
			return fmt.Errorf("failed to scan variant: %w", err)
		}
		product.Variants = append(product.Variants, v)
	}
	return rows.Err()
}
