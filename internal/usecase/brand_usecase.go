package usecase

import (
	"context"
	"strconv"
	"time"

	"velora/internal/domain/entity"
	"velora/internal/domain/repository"
	"velora/internal/domain/service"
	"velora/pkg/utils"
)

// Brand data changes rarely, so the brand list carries a longer TTL than
// the other catalog caches.
type BrandUseCase struct {
	brandRepo repository.BrandRepository
	cache     service.Cache
	cacheTTL  time.Duration
}

func NewBrandUseCase(brandRepo repository.BrandRepository, cache service.Cache, cacheTTL time.Duration) *BrandUseCase {
	return &BrandUseCase{
		brandRepo: brandRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

type BrandQuery struct {
	Page       int
	PageSize   int
	ActiveOnly bool
	Search     string
	SortBy     string
	SortOrder  string
}

func (q *BrandQuery) normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.SortBy == "" {
		q.SortBy = "name"
	}
	if q.SortOrder != "desc" {
		q.SortOrder = "asc"
	}
}

func (q *BrandQuery) cacheKey() string {
	active := ""
	if q.ActiveOnly {
		active = "true"
	}
	return utils.CacheKey("brands", map[string]string{
		"page":      strconv.Itoa(q.Page),
		"limit":     strconv.Itoa(q.PageSize),
		"active":    active,
		"search":    q.Search,
		"sortBy":    q.SortBy,
		"sortOrder": q.SortOrder,
	})
}

type BrandDTO struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type BrandListResult struct {
	Items      []BrandDTO `json:"items"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}

func toBrandDTO(b *entity.Brand) BrandDTO {
	return BrandDTO{
		ID:        b.ID,
		Slug:      b.GetSlug(),
		Name:      b.Name,
		Active:    b.IsActive(),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func (uc *BrandUseCase) ListBrands(ctx context.Context, query BrandQuery) (*BrandListResult, error) {
	query.normalize()
	key := query.cacheKey()

	var cached BrandListResult
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	brands, total, err := uc.brandRepo.List(ctx, repository.BrandFilter{
		ActiveOnly: query.ActiveOnly,
		Search:     query.Search,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}, query.PageSize, (query.Page-1)*query.PageSize)
	if err != nil {
		return nil, err
	}

	result := &BrandListResult{
		Items:      make([]BrandDTO, 0, len(brands)),
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages(total, query.PageSize),
	}
	for _, b := range brands {
		result.Items = append(result.Items, toBrandDTO(b))
	}

	if err := uc.cache.Set(ctx, key, result, uc.cacheTTL); err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *BrandUseCase) GetBrandBySlug(ctx context.Context, slug string) (*BrandDTO, error) {
	key := "brand:slug:" + slug

	var cached BrandDTO
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	brand, err := uc.brandRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	dto := toBrandDTO(brand)
	if err := uc.cache.Set(ctx, key, dto, uc.cacheTTL); err != nil {
		return nil, err
	}
	return &dto, nil
}
