package usecase

import (
	"context"
	"strconv"
	"time"

	"velora/internal/domain/entity"
	"velora/internal/domain/repository"
	"velora/internal/domain/service"
	"velora/pkg/logger"
	"velora/pkg/utils"
)

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	cache        service.Cache
	listTTL      time.Duration
	detailTTL    time.Duration
}

func NewCategoryUseCase(categoryRepo repository.CategoryRepository, cache service.Cache, listTTL, detailTTL time.Duration) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
		listTTL:      listTTL,
		detailTTL:    detailTTL,
	}
}

type CategoryQuery struct {
	Page       int
	PageSize   int
	ActiveOnly bool
	Search     string
	SortBy     string
	SortOrder  string
}

func (q *CategoryQuery) normalize() {
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

func (q *CategoryQuery) cacheKey() string {
	active := ""
	if q.ActiveOnly {
		active = "true"
	}
	return utils.CacheKey("categories", map[string]string{
		"page":      strconv.Itoa(q.Page),
		"limit":     strconv.Itoa(q.PageSize),
		"active":    active,
		"search":    q.Search,
		"sortBy":    q.SortBy,
		"sortOrder": q.SortOrder,
	})
}

type CategoryDTO struct {
	ID        string  `json:"id"`
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_id,omitempty"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type CategoryListResult struct {
	Items      []CategoryDTO `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

func toCategoryDTO(c *entity.Category) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Slug:      c.GetSlug(),
		Name:      c.Name,
		ParentID:  c.ParentID,
		Active:    c.IsActive(),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func (uc *CategoryUseCase) ListCategories(ctx context.Context, query CategoryQuery) (*CategoryListResult, error) {
	query.normalize()
	key := query.cacheKey()

	var cached CategoryListResult
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	categories, total, err := uc.categoryRepo.List(ctx, repository.CategoryFilter{
		ActiveOnly: query.ActiveOnly,
		Search:     query.Search,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}, query.PageSize, (query.Page-1)*query.PageSize)
	if err != nil {
		return nil, err
	}

	result := &CategoryListResult{
		Items:      make([]CategoryDTO, 0, len(categories)),
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages(total, query.PageSize),
	}
	for _, c := range categories {
		result.Items = append(result.Items, toCategoryDTO(c))
	}

	if err := uc.cache.Set(ctx, key, result, uc.listTTL); err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *CategoryUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*CategoryDTO, error) {
	key := "category:slug:" + slug

	var cached CategoryDTO
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	category, err := uc.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	dto := toCategoryDTO(category)
	if err := uc.cache.Set(ctx, key, dto, uc.detailTTL); err != nil {
		return nil, err
	}
	return &dto, nil
}

type CreateCategoryInput struct {
	Slug     string  `json:"slug" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	ParentID *string `json:"parent_id"`
}

type UpdateCategoryInput struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	category, err := entity.NewCategory(input.Slug, input.Name, input.ParentID)
	if err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	logger.Info("Created category %s (%s)", category.ID, category.Slug)
	dto := toCategoryDTO(category)
	return &dto, nil
}

func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Active != nil {
		category.Active = *input.Active
	}
	category.UpdatedAt = time.Now()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	if err := uc.invalidateDetail(ctx, category); err != nil {
		return nil, err
	}

	dto := toCategoryDTO(category)
	return &dto, nil
}

func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.invalidateDetail(ctx, category)
}

// Detail keys only; list keys expire via TTL.
func (uc *CategoryUseCase) invalidateDetail(ctx context.Context, category *entity.Category) error {
	return uc.cache.Delete(ctx,
		"category:id:"+category.ID,
		"category:slug:"+category.Slug,
	)
}
