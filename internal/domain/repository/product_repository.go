package repository

import (
	"context"

	"velora/internal/domain/entity"
)

type ProductFilter struct {
	CategoryID string
	BrandID    string
	Status     string
	Search     string
	SortBy     string
	SortOrder  string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
