package entity

import (
	"time"
)

type Brand struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBrand(slug, name string) (*Brand, error) {
	normalized, err := NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Brand{
		Slug:      normalized,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (b *Brand) GetSlug() string {
	return b.Slug
}

func (b *Brand) IsActive() bool {
	return b.Active
}
