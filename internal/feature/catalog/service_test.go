package catalog

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"glimmr/internal/domain"
	"glimmr/internal/store/memstore"
)

func seedProducts(t *testing.T, repo domain.ProductRepository) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []domain.Product{
		{Name: "Classic Diamond Studs", Category: "earrings", Subcategory: "studs", Price: 2500, Tags: []string{"oval", "modern"}},
		{Name: "Rose Gold Hoops", Category: "earrings", Subcategory: "hoops", Price: 1800, Tags: []string{"round"}},
		{Name: "Temple Jhumkas", Category: "earrings", Subcategory: "jhumkas", Price: 3200, Description: "Traditional gold jhumkas"},
		{Name: "Pearl Drops", Category: "earrings", Subcategory: "drops", Price: 3000},
		{Name: "Kundan Choker", Category: "necklaces", Price: 8000},
	} {
		p := p
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(context.Background(), &p))
	}
}

func newService(t *testing.T) *Service {
	t.Helper()
	repo := memstore.New().Products()
	seedProducts(t, repo)
	return NewService(repo, nil, 0, zap.NewNop())
}

func names(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i := range ps {
		out[i] = ps[i].Name
	}
	return out
}

func TestListInput_Query(t *testing.T) {
	q, err := ListInput{}.Query()
	require.NoError(t, err)
	assert.Equal(t, domain.SortCreatedAt, q.SortBy)
	assert.True(t, q.Desc)

	q, err = ListInput{SortBy: "price", SortOrder: "asc", MinPrice: "10", MaxPrice: "20.5"}.Query()
	require.NoError(t, err)
	assert.False(t, q.Desc)
	assert.Equal(t, 10.0, *q.MinPrice)
	assert.Equal(t, 20.5, *q.MaxPrice)

	_, err = ListInput{MinPrice: "cheap"}.Query()
	assert.ErrorIs(t, err, ErrBadQuery)
	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "minPrice", qe.Field)

	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity"} {
		_, err = ListInput{MaxPrice: raw, Category: "rings"}.Query()
		assert.ErrorIs(t, err, ErrBadQuery, raw)
	}
}

func TestQueryDigest(t *testing.T) {
	rings, err := queryDigest(domain.ProductQuery{Category: "rings"})
	require.NoError(t, err)
	earrings, err := queryDigest(domain.ProductQuery{Category: "earrings"})
	require.NoError(t, err)
	assert.NotEqual(t, rings, earrings)

	nan := math.NaN()
	_, err = queryDigest(domain.ProductQuery{Category: "rings", MinPrice: &nan})
	assert.Error(t, err)
}

func TestList_PriceRangeIsInclusive(t *testing.T) {
	svc := newService(t)
	q, err := ListInput{MinPrice: "2000", MaxPrice: "3000"}.Query()
	require.NoError(t, err)

	got, err := svc.List(context.Background(), q)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, p := range got {
		assert.GreaterOrEqual(t, p.Price, 2000.0)
		assert.LessOrEqual(t, p.Price, 3000.0)
	}
	assert.ElementsMatch(t, []string{"Classic Diamond Studs", "Pearl Drops"}, names(got))
}

func TestList_DefaultSortNewestFirst(t *testing.T) {
	svc := newService(t)
	q, _ := ListInput{Category: "earrings"}.Query()
	got, err := svc.List(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pearl Drops", "Temple Jhumkas", "Rose Gold Hoops", "Classic Diamond Studs"}, names(got))
}

func TestList_SearchMatchesNameDescriptionAndTags(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	q, _ := ListInput{Search: "TRADITIONAL"}.Query()
	got, err := svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Temple Jhumkas"}, names(got))

	q, _ = ListInput{Search: "round"}.Query()
	got, err = svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rose Gold Hoops"}, names(got))

	q, _ = ListInput{Search: "gold", SortBy: "price", SortOrder: "asc"}.Query()
	got, err = svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rose Gold Hoops", "Temple Jhumkas"}, names(got))
}

func TestList_CapsAtPageSize(t *testing.T) {
	repo := memstore.New().Products()
	for i := 0; i < domain.CatalogPageSize+5; i++ {
		require.NoError(t, repo.Create(context.Background(), &domain.Product{Name: "p", Category: "rings"}))
	}
	svc := NewService(repo, nil, 0, zap.NewNop())
	got, err := svc.List(context.Background(), domain.ProductQuery{})
	require.NoError(t, err)
	assert.Len(t, got, domain.CatalogPageSize)
}

func TestAdminWrites(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	p, err := svc.Create(ctx, ProductInput{Name: " Silver Cuff ", Category: "bracelets", Price: 1200})
	require.NoError(t, err)
	assert.Equal(t, "Silver Cuff", p.Name)
	assert.Equal(t, []string{}, p.Tags)

	price := 999.0
	up, err := svc.Update(ctx, p.ID, ProductPatch{Price: &price, Tags: []string{"minimal"}})
	require.NoError(t, err)
	assert.Equal(t, 999.0, up.Price)
	assert.Equal(t, "Silver Cuff", up.Name)
	assert.Equal(t, []string{"minimal"}, up.Tags)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), domain.ErrNotFound)
}
