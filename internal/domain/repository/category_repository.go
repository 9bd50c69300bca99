package repository

import (
	"context"

	"velora/internal/domain/entity"
)

type CategoryFilter struct {
	ActiveOnly bool
	Search     string
	SortBy     string
	SortOrder  string
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context, filter CategoryFilter, limit, offset int) ([]*entity.Category, int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
