package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func catalogFixture() []Product {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := Availability{InStock: true}
	return []Product{
		{ID: "1", Name: "Classic Diamond Studs", Category: "earrings", Subcategory: "studs", Price: 2500, Availability: in, Tags: []string{"classic"}, CreatedAt: base},
		{ID: "2", Name: "Rose Gold Hoops", Category: "earrings", Subcategory: "hoops", Price: 1800, Availability: in, Tags: []string{"glamorous"}, CreatedAt: base.Add(time.Hour)},
		{ID: "3", Name: "Ethnic Jhumka", Category: "earrings", Subcategory: "jhumkas", Price: 3200, Description: "Traditional pearls", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", Name: "Kundan Necklace", Category: "necklaces", Price: 8000, Availability: in, Ratings: Ratings{Average: 4.9}, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestNormalizeSort(t *testing.T) {
	assert.Equal(t, SortPrice, NormalizeSort(" Price "))
	assert.Equal(t, SortRating, NormalizeSort("ratings.average"))
	assert.Equal(t, SortCreatedAt, NormalizeSort("popularity"))
	assert.Equal(t, SortCreatedAt, NormalizeSort(""))
}

func TestEffectiveLimit(t *testing.T) {
	assert.Equal(t, CatalogPageSize, ProductQuery{}.EffectiveLimit())
	assert.Equal(t, CatalogPageSize, ProductQuery{Limit: 500}.EffectiveLimit())
	assert.Equal(t, 3, ProductQuery{Limit: 3}.EffectiveLimit())
}

func TestApply(t *testing.T) {
	all := catalogFixture()
	cases := []struct {
		name string
		q    ProductQuery
		want []string
	}{
		{"default newest first", ProductQuery{Desc: true}, []string{"4", "3", "2", "1"}},
		{"category", ProductQuery{Category: "earrings", Desc: true}, []string{"3", "2", "1"}},
		{"price range ascending", ProductQuery{MinPrice: f(1800), MaxPrice: f(3200), SortBy: SortPrice}, []string{"2", "1", "3"}},
		{"search hits description", ProductQuery{Search: "PEARL"}, []string{"3"}},
		{"search hits tags", ProductQuery{Search: "glam"}, []string{"2"}},
		{"in stock only", ProductQuery{Category: "earrings", InStockOnly: true, SortBy: SortName}, []string{"1", "2"}},
		{"subcategory set", ProductQuery{Subcategories: []string{"hoops", "jhumkas"}, SortBy: SortPrice}, []string{"2", "3"}},
		{"any tag", ProductQuery{AnyTags: []string{"classic", "bold"}}, []string{"1"}},
		{"rating desc", ProductQuery{SortBy: SortRating, Desc: true, Limit: 1}, []string{"4"}},
		{"no match", ProductQuery{Category: "rings"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(tc.q.Apply(all)))
		})
	}
}

func TestApply_CapsAtPageSize(t *testing.T) {
	many := make([]Product, CatalogPageSize+10)
	assert.Len(t, ProductQuery{}.Apply(many), CatalogPageSize)
}
