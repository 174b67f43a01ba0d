// Package catalog serves product reads to shoppers and product writes to
// admins. Reads go through the optional Redis cache.
package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"glimmr/internal/core/cache"
	"glimmr/internal/domain"
)

const cacheNS = "products"

// ErrBadQuery marks an unparsable catalog filter.
var ErrBadQuery = errors.New("invalid catalog query")

type Service struct {
	products domain.ProductRepository
	cache    *cache.Cache
	ttl      time.Duration
	log      *zap.Logger
}

// NewService accepts a nil cache.
func NewService(products domain.ProductRepository, c *cache.Cache, ttl time.Duration, l *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{products: products, cache: c, ttl: ttl, log: l.Named("catalog")}
}

// ListInput is the raw query string of GET /products.
type ListInput struct {
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
	Search      string `form:"search"`
	MinPrice    string `form:"minPrice"`
	MaxPrice    string `form:"maxPrice"`
	SortBy      string `form:"sortBy"`
	SortOrder   string `form:"sortOrder"`
}

// Query converts the request form into a ProductQuery. sortOrder "desc" is
// the default; any other value sorts ascending.
func (in ListInput) Query() (domain.ProductQuery, error) {
	q := domain.ProductQuery{
		Category:    strings.TrimSpace(in.Category),
		Subcategory: strings.TrimSpace(in.Subcategory),
		Search:      strings.TrimSpace(in.Search),
		SortBy:      domain.NormalizeSort(in.SortBy),
		Desc:        in.SortOrder == "" || strings.EqualFold(in.SortOrder, "desc"),
	}
	var err error
	if q.MinPrice, err = parsePrice("minPrice", in.MinPrice); err != nil {
		return q, err
	}
	if q.MaxPrice, err = parsePrice("maxPrice", in.MaxPrice); err != nil {
		return q, err
	}
	return q, nil
}

func parsePrice(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &QueryError{Field: name, Value: raw}
	}
	return &v, nil
}

type QueryError struct {
	Field string
	Value string
}

func (e *QueryError) Error() string { return "invalid " + e.Field + ": " + strconv.Quote(e.Value) }

func (e *QueryError) Unwrap() error { return ErrBadQuery }

// List runs q through the cache. The cache key embeds the namespace
// generation so writes invalidate every cached listing at once.
func (s *Service) List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	digest, err := queryDigest(q)
	if err != nil {
		return nil, err
	}
	key := s.cache.GenKey(ctx, cacheNS, "list:"+digest)
	out, err := cache.GetOrLoadJSON(s.cache, ctx, key, s.ttl, func(ctx context.Context) (*[]domain.Product, error) {
		ps, err := s.products.Find(ctx, q)
		if err != nil {
			return nil, err
		}
		return &ps, nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []domain.Product{}, nil
	}
	return *out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	key := s.cache.GenKey(ctx, cacheNS, "id:"+id)
	return cache.GetOrLoadJSON(s.cache, ctx, key, s.ttl, func(ctx context.Context) (*domain.Product, error) {
		return s.products.FindByID(ctx, id)
	})
}

// ProductInput is the admin create payload.
type ProductInput struct {
	Name           string                `json:"name"          binding:"required,max=255"`
	Description    string                `json:"description"`
	Category       string                `json:"category"      binding:"required"`
	Subcategory    string                `json:"subcategory"`
	Price          float64               `json:"price"         binding:"gte=0"`
	OriginalPrice  float64               `json:"originalPrice" binding:"gte=0"`
	Discount       float64               `json:"discount"      binding:"gte=0,lte=100"`
	Images         []string              `json:"images"`
	Specifications domain.Specifications `json:"specifications"`
	Availability   domain.Availability   `json:"availability"`
	Tags           []string              `json:"tags"`
}

func (in ProductInput) Product() *domain.Product {
	p := &domain.Product{
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Category:       strings.TrimSpace(in.Category),
		Subcategory:    strings.TrimSpace(in.Subcategory),
		Price:          in.Price,
		OriginalPrice:  in.OriginalPrice,
		Discount:       in.Discount,
		Images:         in.Images,
		Specifications: in.Specifications,
		Availability:   in.Availability,
		Tags:           in.Tags,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// ProductPatch updates only the fields that are present.
type ProductPatch struct {
	Name           *string                `json:"name"`
	Description    *string                `json:"description"`
	Category       *string                `json:"category"`
	Subcategory    *string                `json:"subcategory"`
	Price          *float64               `json:"price"         binding:"omitempty,gte=0"`
	OriginalPrice  *float64               `json:"originalPrice" binding:"omitempty,gte=0"`
	Discount       *float64               `json:"discount"      binding:"omitempty,gte=0,lte=100"`
	Images         []string               `json:"images"`
	Specifications *domain.Specifications `json:"specifications"`
	Availability   *domain.Availability   `json:"availability"`
	Tags           []string               `json:"tags"`
}

func (pt ProductPatch) apply(p *domain.Product) {
	if pt.Name != nil {
		p.Name = strings.TrimSpace(*pt.Name)
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Category != nil {
		p.Category = strings.TrimSpace(*pt.Category)
	}
	if pt.Subcategory != nil {
		p.Subcategory = strings.TrimSpace(*pt.Subcategory)
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.OriginalPrice != nil {
		p.OriginalPrice = *pt.OriginalPrice
	}
	if pt.Discount != nil {
		p.Discount = *pt.Discount
	}
	if pt.Images != nil {
		p.Images = pt.Images
	}
	if pt.Specifications != nil {
		p.Specifications = *pt.Specifications
	}
	if pt.Availability != nil {
		p.Availability = *pt.Availability
	}
	if pt.Tags != nil {
		p.Tags = pt.Tags
	}
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p := in.Product()
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(p)
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info("product deleted", zap.String("product_id", id))
	return nil
}

// Invalidate drops every cached catalog read. The seeder calls it after a
// bulk load.
func (s *Service) Invalidate(ctx context.Context) { s.invalidate(ctx) }

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx, cacheNS); err != nil {
		s.log.Warn("catalog cache bump failed", zap.Error(err))
	}
}

func queryDigest(q domain.ProductQuery) (string, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("catalog query key: %w", err)
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:]), nil
}
