package entity

import (
	"time"
)

const (
	ProductStatusDraft     = "DRAFT"
	ProductStatusPublished = "PUBLISHED"
	ProductStatusArchived  = "ARCHIVED"
)

type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BrandID     *string   `json:"brand_id"`
	CategoryID  *string   `json:"category_id"`
	Status      string    `json:"status"`
	Variants    []Variant `json:"variants"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Variant struct {
	ID            string   `json:"id"`
	ProductID     string   `json:"product_id"`
	SKU           string   `json:"sku"`
	Price         float64  `json:"price"`
	SalePrice     *float64 `json:"sale_price"`
	StockQuantity int      `json:"stock_quantity"`
}

func NewProduct(slug, name, description string, brandID, categoryID *string, status string) (*Product, error) {
	normalized, err := NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = ProductStatusDraft
	}

	now := time.Now()
	return &Product{
		Slug:        normalized,
		Name:        name,
		Description: description,
		BrandID:     brandID,
		CategoryID:  categoryID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (p *Product) IsPublished() bool {
	return p.Status == ProductStatusPublished
}

func (p *Product) GetSlug() string {
	return p.Slug
}

func (p *Product) GetStatus() string {
	return p.Status
}

func (v *Variant) EffectivePrice() float64 {
	if v.SalePrice != nil {
		return *v.SalePrice
	}
	return v.Price
}

func (v *Variant) InStock() bool {
	return v.StockQuantity > 0
}
