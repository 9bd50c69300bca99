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

type postgresBrandRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBrandRepository(pool *pgxpool.Pool) repository.BrandRepository {
	return &postgresBrandRepository{pool: pool}
}

const brandColumns = `id, slug, name, active, created_at, updated_at`

func scanBrand(row pgx.Row) (*entity.Brand, error) {
	var b entity.Brand
	err := row.Scan(&b.ID, &b.Slug, &b.Name, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresBrandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	brand.ID = uuid.NewString()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO brands (id, slug, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		brand.ID, brand.Slug, brand.Name, brand.Active, brand.CreatedAt, brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("DUPLICATE_SLUG", "A brand with this slug already exists")
		}
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

func (r *postgresBrandRepository) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	brand, err := scanBrand(r.pool.QueryRow(ctx, `SELECT `+brandColumns+` FROM brands WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("BRAND_NOT_FOUND", "Brand not found", err)
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

func (r *postgresBrandRepository) GetBySlug(ctx context.Context, slug string) (*entity.Brand, error) {
	brand, err := scanBrand(r.pool.QueryRow(ctx, `SELECT `+brandColumns+` FROM brands WHERE slug = $1`, slug))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("BRAND_NOT_FOUND", "Brand not found", err)
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

func (r *postgresBrandRepository) List(ctx context.Context, filter repository.BrandFilter, limit, offset int) ([]*entity.Brand, int64, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if filter.ActiveOnly {
		conds = append(conds, "active = TRUE")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	where := strings.Join(conds, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM brands WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	sortBy := "name"
	if filter.SortBy == "created_at" {
		sortBy = "created_at"
	}
	sortOrder := "ASC"
	if filter.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM brands WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		brandColumns, where, sortBy, sortOrder, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	var brands []*entity.Brand
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating brands: %w", err)
	}
	return brands, total, nil
}

func (r *postgresBrandRepository) Update(ctx context.Context, brand *entity.Brand) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE brands
		SET name = $1, active = $2, updated_at = $3
		WHERE id = $4`,
		brand.Name, brand.Active, brand.UpdatedAt, brand.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("BRAND_NOT_FOUND", "Brand not found", nil)
	}
	return nil
}

func (r *postgresBrandRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("BRAND_NOT_FOUND", "Brand not found", nil)
	}
	return nil
}
