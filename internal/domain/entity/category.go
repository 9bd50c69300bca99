package entity

import (
	"time"
)

type Category struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCategory(slug, name string, parentID *string) (*Category, error) {
	normalized, err := NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Category{
		Slug:      normalized,
		Name:      name,
		ParentID:  parentID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Category) GetSlug() string {
	return c.Slug
}

func (c *Category) IsActive() bool {
	return c.Active
}
