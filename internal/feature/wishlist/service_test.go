package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glimmr/internal/domain"
	"glimmr/internal/store/memstore"
)

func TestWishlist(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	a := &domain.Product{Name: "Studs"}
	b := &domain.Product{Name: "Hoops"}
	require.NoError(t, st.Products().Create(ctx, a))
	require.NoError(t, st.Products().Create(ctx, b))
	svc := NewService(st.Wishlists(), st.Products())

	v, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, v.Items)

	_, err = svc.Remove(ctx, "u1", a.ID)
	assert.ErrorIs(t, err, domain.ErrWishlistNotFound)

	_, err = svc.Add(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.Add(ctx, "u1", a.ID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", b.ID)
	require.NoError(t, err)
	v, err = svc.Add(ctx, "u1", a.ID)
	require.NoError(t, err)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "Studs", v.Items[0].Name)
	assert.Equal(t, "Hoops", v.Items[1].Name)
	assert.NotEmpty(t, v.ID)

	v, err = svc.Remove(ctx, "u1", a.ID)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, b.ID, v.Items[0].ID)

	stored, err := st.Wishlists().FindByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, stored.Items)
}
