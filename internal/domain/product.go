package domain

import (
	"context"
	"time"
)

type Specifications struct {
	Material    string `json:"material,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Dimensions  string `json:"dimensions,omitempty"`
	Gemstone    string `json:"gemstone,omitempty"`
	MetalPurity string `json:"metalPurity,omitempty"`
}

type Availability struct {
	InStock  bool `json:"inStock"`
	Quantity int  `json:"quantity"`
}

type Ratings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Category       string         `json:"category"`
	Subcategory    string         `json:"subcategory,omitempty"`
	Price          float64        `json:"price"`
	OriginalPrice  float64        `json:"originalPrice,omitempty"`
	Discount       float64        `json:"discount,omitempty"`
	Images         []string       `json:"images"`
	Specifications Specifications `json:"specifications"`
	Availability   Availability   `json:"availability"`
	Tags           []string       `json:"tags"`
	Ratings        Ratings        `json:"ratings"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// PrimaryImage returns the first image reference or "".
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type ProductRepository interface {
	Find(ctx context.Context, q ProductQuery) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	// FindByIDs silently skips ids that do not resolve.
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
