package repository

import (
	"context"

	"velora/internal/domain/entity"
)

type BrandFilter struct {
	ActiveOnly bool
	Search     string
	SortBy     string
	SortOrder  string
}

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Brand, error)
	List(ctx context.Context, filter BrandFilter, limit, offset int) ([]*entity.Brand, int64, error)
	Update(ctx context.Context, brand *entity.Brand) error
	Delete(ctx context.Context, id string) error
}
