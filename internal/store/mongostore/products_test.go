package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"glimmr/internal/domain"
)

func ptr(f float64) *float64 { return &f }

func TestBuildFilter_Empty(t *testing.T) {
	assert.Empty(t, buildFilter(domain.ProductQuery{}))
}

func TestBuildFilter_AllFields(t *testing.T) {
	f := buildFilter(domain.ProductQuery{
		Category:    "earrings",
		Subcategory: "studs",
		Search:      "rose.gold",
		MinPrice:    ptr(1000),
		MaxPrice:    ptr(3000),
		InStockOnly: true,
	})

	assert.Equal(t, "earrings", f["category"])
	assert.Equal(t, "studs", f["subcategory"])
	assert.Equal(t, true, f["availability.inStock"])
	assert.Equal(t, bson.M{"$gte": 1000.0, "$lte": 3000.0}, f["price"])

	or, ok := f["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	rx := primitive.Regex{Pattern: `rose\.gold`, Options: "i"}
	assert.Equal(t, bson.M{"name": rx}, or[0])
	assert.Equal(t, bson.M{"description": rx}, or[1])
	assert.Equal(t, bson.M{"tags": rx}, or[2])
}

func TestBuildFilter_OnlyMaxPrice(t *testing.T) {
	f := buildFilter(domain.ProductQuery{MaxPrice: ptr(5000)})
	assert.Equal(t, bson.M{"price": bson.M{"$lte": 5000.0}}, f)
}

func TestBuildFilter_SubcategorySets(t *testing.T) {
	f := buildFilter(domain.ProductQuery{Subcategories: []string{"studs", "hoops"}, AnyTags: []string{"modern"}})
	assert.Equal(t, bson.M{"$in": []string{"studs", "hoops"}}, f["subcategory"])
	assert.Equal(t, bson.M{"$in": []string{"modern"}}, f["tags"])
	assert.NotContains(t, f, "$and")

	f = buildFilter(domain.ProductQuery{Subcategory: "studs", Subcategories: []string{"hoops"}})
	assert.Equal(t, "studs", f["subcategory"])
	assert.Equal(t, []bson.M{{"subcategory": bson.M{"$in": []string{"hoops"}}}}, f["$and"])
}

func TestBuildSort(t *testing.T) {
	cases := []struct {
		q    domain.ProductQuery
		want bson.D
	}{
		{domain.ProductQuery{}, bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
		{domain.ProductQuery{SortBy: "price", Desc: true}, bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: -1}}},
		{domain.ProductQuery{SortBy: "rating"}, bson.D{{Key: "ratings.average", Value: 1}, {Key: "_id", Value: 1}}},
		{domain.ProductQuery{SortBy: "bogus", Desc: true}, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, buildSort(c.q), "sortBy=%q", c.q.SortBy)
	}
}

func TestProductDocRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &domain.Product{
		Name:          "Classic Diamond Studs",
		Category:      "earrings",
		Subcategory:   "studs",
		Price:         2500,
		OriginalPrice: 3000,
		Discount:      17,
		Specifications: domain.Specifications{
			Material:    "18K White Gold",
			MetalPurity: "18K",
		},
		Availability: domain.Availability{InStock: true, Quantity: 25},
		Ratings:      domain.Ratings{Average: 4.8, Count: 124},
		CreatedAt:    created,
	}
	d := productToDoc(p)
	assert.Equal(t, []string{}, d.Images)
	assert.Equal(t, []string{}, d.Tags)

	d.ID = primitive.NewObjectID()
	back := d.toDomain()
	assert.Equal(t, d.ID.Hex(), back.ID)
	assert.Equal(t, p.Specifications, back.Specifications)
	assert.Equal(t, p.Availability, back.Availability)
	assert.Equal(t, created, back.CreatedAt)
}

func TestToOID(t *testing.T) {
	_, err := toOID("not-hex", domain.ErrProductNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id := primitive.NewObjectID()
	got, err := toOID(id.Hex(), domain.ErrProductNotFound)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	assert.Len(t, toOIDs([]string{id.Hex(), "zz", ""}), 1)
	assert.Equal(t, "", hexOf(primitive.NilObjectID))
}

func TestCartDocConversion(t *testing.T) {
	pid := primitive.NewObjectID()
	d := cartDoc{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Items:  []cartItemDoc{{Product: pid, Quantity: 2}},
	}
	c := d.toDomain()
	assert.Equal(t, []domain.CartItem{{ProductID: pid.Hex(), Quantity: 2}}, c.Items)

	_, err := cartItemsToDocs([]domain.CartItem{{ProductID: "nope", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
