package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glimmr/internal/domain"
	"glimmr/internal/store/memstore"
)

type fixture struct {
	svc   *Service
	carts domain.CartRepository
	studs *domain.Product
	hoops *domain.Product
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()
	studs := &domain.Product{Name: "Studs", Category: "earrings", Price: 2500}
	hoops := &domain.Product{Name: "Hoops", Category: "earrings", Price: 1800}
	require.NoError(t, st.Products().Create(ctx, studs))
	require.NoError(t, st.Products().Create(ctx, hoops))
	return fixture{svc: NewService(st.Carts(), st.Products()), carts: st.Carts(), studs: studs, hoops: hoops}
}

func TestGet_NoCartIsEmpty(t *testing.T) {
	f := newFixture(t)
	v, err := f.svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, v.Items)
	assert.Zero(t, v.Subtotal)
}

func TestAdd_SameProductAccumulates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Add(ctx, "u1", f.studs.ID, 2)
	require.NoError(t, err)
	v, err := f.svc.Add(ctx, "u1", f.studs.ID, 0)
	require.NoError(t, err)

	require.Len(t, v.Items, 1)
	assert.Equal(t, 3, v.Items[0].Quantity)
	require.NotNil(t, v.Items[0].Product)
	assert.Equal(t, "Studs", v.Items[0].Product.Name)
	assert.Equal(t, 7500.0, v.Subtotal)
}

func TestAdd_Rejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Add(ctx, "u1", "missing", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.svc.Add(ctx, "u1", f.studs.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Update(ctx, "u1", f.studs.ID, 3)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)

	_, err = f.svc.Add(ctx, "u1", f.studs.ID, 1)
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, "u1", f.hoops.ID, 1)
	require.NoError(t, err)

	v, err := f.svc.Update(ctx, "u1", f.studs.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, v.Items[0].Quantity)

	_, err = f.svc.Update(ctx, "u1", "other", 1)
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)

	for _, q := range []int{0, -2} {
		_, err = f.svc.Add(ctx, "u1", f.studs.ID, 1)
		require.NoError(t, err)
		v, err = f.svc.Update(ctx, "u1", f.studs.ID, q)
		require.NoError(t, err)
		require.Len(t, v.Items, 1, "quantity %d", q)
		assert.Equal(t, f.hoops.ID, v.Items[0].ProductID)
	}
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Remove(ctx, "u1", f.studs.ID)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
	_, err = f.svc.Clear(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)

	_, err = f.svc.Add(ctx, "u1", f.studs.ID, 1)
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, "u1", f.hoops.ID, 1)
	require.NoError(t, err)

	v, err := f.svc.Remove(ctx, "u1", f.studs.ID)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)

	v, err = f.svc.Remove(ctx, "u1", "not-in-cart")
	require.NoError(t, err)
	assert.Len(t, v.Items, 1)

	v, err = f.svc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, v.Items)

	stored, err := f.carts.FindByUser(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
}

func TestView_DeletedProductKeepsLine(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	p := &domain.Product{Name: "Gone", Price: 100}
	require.NoError(t, st.Products().Create(ctx, p))
	svc := NewService(st.Carts(), st.Products())

	_, err := svc.Add(ctx, "u1", p.ID, 2)
	require.NoError(t, err)
	require.NoError(t, st.Products().Delete(ctx, p.ID))

	v, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Nil(t, v.Items[0].Product)
	assert.Zero(t, v.Subtotal)
}
