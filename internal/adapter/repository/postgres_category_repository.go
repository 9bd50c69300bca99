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

type postgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryRepository(pool *pgxpool.Pool) repository.CategoryRepository {
	return &postgresCategoryRepository{pool: pool}
}

const categoryColumns = `id, slug, name, parent_id, active, created_at, updated_at`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.ParentID, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	category.ID = uuid.NewString()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, slug, name, parent_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ID, category.Slug, category.Name, category.ParentID,
		category.Active, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("DUPLICATE_SLUG", "A category with this slug already exists")
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	category, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("CATEGORY_NOT_FOUND", "Category not found", err)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.NotFound("CATEGORY_NOT_FOUND", "Category not found", err)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) List(ctx context.Context, filter repository.CategoryFilter, limit, offset int) ([]*entity.Category, int64, error) {
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
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
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
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		categoryColumns, where, sortBy, sortOrder, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, total, nil
}

func (r *postgresCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET name = $1, active = $2, updated_at = $3
		WHERE id = $4`,
		category.Name, category.Active, category.UpdatedAt, category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("CATEGORY_NOT_FOUND", "Category not found", nil)
	}
	return nil
}

func (r *postgresCategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("CATEGORY_NOT_FOUND", "Category not found", nil)
	}
	return nil
}
