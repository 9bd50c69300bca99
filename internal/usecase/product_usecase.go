package usecase

import (
	"context"
	"strconv"
	"time"

	"velora/internal/domain/entity"
	"velora/internal/domain/repository"
	"velora/internal/domain/service"
	"velora/pkg/errors"
	"velora/pkg/logger"
	"velora/pkg/utils"
)

type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	cache        service.Cache
	listTTL      time.Duration
	detailTTL    time.Duration
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	cache service.Cache,
	listTTL, detailTTL time.Duration,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		cache:        cache,
		listTTL:      listTTL,
		detailTTL:    detailTTL,
	}
}

type ProductQuery struct {
	Page       int
	PageSize   int
	CategoryID string
	BrandID    string
	Status     string
	Search     string
	SortBy     string
	SortOrder  string
}

// normalize applies defaults before cache key construction so equivalent
// requests collide on the same key.
func (q *ProductQuery) normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.SortBy == "" {
		q.SortBy = "created_at"
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
}

func (q *ProductQuery) cacheKey() string {
	return utils.CacheKey("products", map[string]string{
		"page":      strconv.Itoa(q.Page),
		"limit":     strconv.Itoa(q.PageSize),
		"category":  q.CategoryID,
		"brand":     q.BrandID,
		"status":    q.Status,
		"search":    q.Search,
		"sortBy":    q.SortBy,
		"sortOrder": q.SortOrder,
	})
}

type VariantDTO struct {
	ID             string   `json:"id"`
	SKU            string   `json:"sku"`
	Price          float64  `json:"price"`
	SalePrice      *float64 `json:"sale_price,omitempty"`
	EffectivePrice float64  `json:"effective_price"`
	StockQuantity  int      `json:"stock_quantity"`
	InStock        bool     `json:"in_stock"`
}

type ProductDTO struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	BrandID     *string      `json:"brand_id,omitempty"`
	CategoryID  *string      `json:"category_id,omitempty"`
	Status      string       `json:"status"`
	Published   bool         `json:"published"`
	Variants    []VariantDTO `json:"variants"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

type ProductListResult struct {
	Items      []ProductDTO `json:"items"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

func toProductDTO(p *entity.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Slug:        p.GetSlug(),
		Name:        p.Name,
		Description: p.Description,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
		Status:      p.GetStatus(),
		Published:   p.IsPublished(),
		Variants:    make([]VariantDTO, 0, len(p.Variants)),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	for _, v := range p.Variants {
		dto.Variants = append(dto.Variants, VariantDTO{
			ID:             v.ID,
			SKU:            v.SKU,
			Price:          v.Price,
			SalePrice:      v.SalePrice,
			EffectivePrice: v.EffectivePrice(),
			StockQuantity:  v.StockQuantity,
			InStock:        v.InStock(),
		})
	}
	return dto
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, query ProductQuery) (*ProductListResult, error) {
	query.normalize()
	key := query.cacheKey()

	var cached ProductListResult
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	products, total, err := uc.productRepo.List(ctx, repository.ProductFilter{
		CategoryID: query.CategoryID,
		BrandID:    query.BrandID,
		Status:     query.Status,
		Search:     query.Search,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}, query.PageSize, (query.Page-1)*query.PageSize)
	if err != nil {
		return nil, err
	}

	result := &ProductListResult{
		Items:      make([]ProductDTO, 0, len(products)),
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages(total, query.PageSize),
	}
	for _, p := range products {
		result.Items = append(result.Items, toProductDTO(p))
	}

	if err := uc.cache.Set(ctx, key, result, uc.listTTL); err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *ProductUseCase) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	key := "product:slug:" + slug

	var cached ProductDTO
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	product, err := uc.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	dto := toProductDTO(product)
	if err := uc.cache.Set(ctx, key, dto, uc.detailTTL); err != nil {
		return nil, err
	}
	return &dto, nil
}

type CreateProductInput struct {
	Slug        string   `json:"slug" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	BrandID     *string  `json:"brand_id"`
	CategoryID  *string  `json:"category_id"`
	Status      string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

type UpdateProductInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	BrandID     *string `json:"brand_id"`
	CategoryID  *string `json:"category_id"`
	Status      *string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, errors.BadRequest("CATEGORY_NOT_FOUND", "Invalid category", err)
		}
	}
	if input.BrandID != nil {
		if _, err := uc.brandRepo.GetByID(ctx, *input.BrandID); err != nil {
			return nil, errors.BadRequest("BRAND_NOT_FOUND", "Invalid brand", err)
		}
	}

	product, err := entity.NewProduct(input.Slug, input.Name, input.Description, input.BrandID, input.CategoryID, input.Status)
	if err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Created product %s (%s)", product.ID, product.Slug)
	dto := toProductDTO(product)
	return &dto, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*ProductDTO, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.BrandID != nil {
		product.BrandID = input.BrandID
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err := uc.invalidateDetail(ctx, product); err != nil {
		return nil, err
	}

	dto := toProductDTO(product)
	return &dto, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Deleted product %s (%s)", product.ID, product.Slug)
	return uc.invalidateDetail(ctx, product)
}

// invalidateDetail clears the detail keys only. List keys are left to
// expire via TTL; a pattern-scan deletion would be required to clear them
// eagerly.
func (uc *ProductUseCase) invalidateDetail(ctx context.Context, product *entity.Product) error {
	return uc.cache.Delete(ctx,
		"product:id:"+product.ID,
		"product:slug:"+product.Slug,
	)
}

func totalPages(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
