package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"glimmr/internal/domain"
	"glimmr/internal/store/memstore"
)

func TestDefaultCatalog(t *testing.T) {
	ps, err := Default()
	require.NoError(t, err)
	require.Len(t, ps, 10)

	first := ps[0]
	assert.Equal(t, "Classic Diamond Studs", first.Name)
	assert.Equal(t, "studs", first.Subcategory)
	assert.Equal(t, 2500.0, first.Price)
	assert.Equal(t, "925 Silver", first.Specifications.MetalPurity)
	assert.True(t, first.Availability.InStock)
	assert.Equal(t, 25, first.Availability.Quantity)
	assert.InDelta(t, 4.5, first.Ratings.Average, 1e-9)
	assert.Len(t, first.Images, 2)

	for _, p := range ps {
		assert.Equal(t, "earrings", p.Category, p.Name)
	}
}

func TestParse(t *testing.T) {
	ps, err := Parse(strings.NewReader(`
products:
  - name: Test Hoop
    category: earrings
    price: 10
    availability: {quantity: 0}
`))
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.True(t, ps[0].Availability.InStock)

	ps, err = Parse(strings.NewReader(`
products:
  - name: Gone
    category: earrings
    price: 10
    availability: {inStock: false}
`))
	require.NoError(t, err)
	assert.False(t, ps[0].Availability.InStock)

	_, err = Parse(strings.NewReader("products:\n  - name: x\n    price: 1\n"))
	assert.ErrorContains(t, err, "required")

	_, err = Parse(strings.NewReader("products:\n  - name: x\n    category: y\n    colour: red\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(""))
	assert.ErrorContains(t, err, "empty")
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New().Products()
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "old", Category: "rings"}))

	ps, err := Default()
	require.NoError(t, err)

	res, err := Run(ctx, repo, ps, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
	assert.Equal(t, 10, res.Inserted)

	all, err := repo.Find(ctx, domain.ProductQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 10)

	res, err = Run(ctx, repo, ps[:2], false, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, res.Deleted)

	all, err = repo.Find(ctx, domain.ProductQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 12)
}
