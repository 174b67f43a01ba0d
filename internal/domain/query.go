package domain

import (
	"sort"
	"strings"
)

// CatalogPageSize caps every catalog read. There is no cursor.
const CatalogPageSize = 50

const (
	SortCreatedAt = "createdAt"
	SortPrice     = "price"
	SortName      = "name"
	SortDiscount  = "discount"
	SortRating    = "rating"
)

// ProductQuery is the storage-neutral catalog filter. Each store backend
// translates it into its own query language.
type ProductQuery struct {
	Category    string
	Subcategory string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	SortBy      string
	Desc        bool

	InStockOnly   bool
	Subcategories []string // match any
	AnyTags       []string // match any
	Limit         int
}

// NormalizeSort maps request sort names onto the supported set. Unknown
// fields fall back to creation time.
func NormalizeSort(field string) string {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "price":
		return SortPrice
	case "name":
		return SortName
	case "discount":
		return SortDiscount
	case "rating", "ratings", "ratings.average":
		return SortRating
	default:
		return SortCreatedAt
	}
}

func (q ProductQuery) EffectiveLimit() int {
	if q.Limit <= 0 || q.Limit > CatalogPageSize {
		return CatalogPageSize
	}
	return q.Limit
}

// Matches reports whether p satisfies every filter of q.
func (q ProductQuery) Matches(p *Product) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Subcategory != "" && p.Subcategory != q.Subcategory {
		return false
	}
	if len(q.Subcategories) > 0 && !contains(q.Subcategories, p.Subcategory) {
		return false
	}
	if q.InStockOnly && !p.Availability.InStock {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if len(q.AnyTags) > 0 && !anyOf(q.AnyTags, p.Tags) {
		return false
	}
	if q.Search != "" && !matchesSearch(p, q.Search) {
		return false
	}
	return true
}

// Less orders a before b according to q's sort settings.
func (q ProductQuery) Less(a, b *Product) bool {
	var less, equal bool
	switch NormalizeSort(q.SortBy) {
	case SortPrice:
		less, equal = a.Price < b.Price, a.Price == b.Price
	case SortName:
		less, equal = a.Name < b.Name, a.Name == b.Name
	case SortDiscount:
		less, equal = a.Discount < b.Discount, a.Discount == b.Discount
	case SortRating:
		less, equal = a.Ratings.Average < b.Ratings.Average, a.Ratings.Average == b.Ratings.Average
	default:
		less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
	}
	if equal {
		return false
	}
	if q.Desc {
		return !less
	}
	return less
}

// Apply filters, sorts and caps an in-memory product list.
func (q ProductQuery) Apply(all []Product) []Product {
	out := make([]Product, 0, len(all))
	for i := range all {
		if q.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return q.Less(&out[i], &out[j]) })
	if n := q.EffectiveLimit(); len(out) > n {
		out = out[:n]
	}
	return out
}

func matchesSearch(p *Product, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func anyOf(want, have []string) bool {
	for _, h := range have {
		if contains(want, h) {
			return true
		}
	}
	return false
}
