package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddMergesLines(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.Add("p1", 1))
	require.NoError(t, c.Add("p2", 3))
	require.NoError(t, c.Add("p1", 2))

	assert.Equal(t, []CartItem{{ProductID: "p1", Quantity: 3}, {ProductID: "p2", Quantity: 3}}, c.Items)
	assert.ErrorIs(t, c.Add("p3", 0), ErrInvalidQuantity)
	assert.Len(t, c.Items, 2)
}

func TestCart_SetQuantity(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.Add("p1", 1))
	require.NoError(t, c.Add("p2", 1))

	require.NoError(t, c.SetQuantity("p1", 5))
	assert.Equal(t, 5, c.Items[0].Quantity)

	require.NoError(t, c.SetQuantity("p1", 0))
	assert.Equal(t, []CartItem{{ProductID: "p2", Quantity: 1}}, c.Items)

	err := c.SetQuantity("nope", 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCart_RemoveClearSnapshot(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.Add("p1", 1))
	require.NoError(t, c.Add("p2", 2))

	snap := c.Snapshot()
	assert.True(t, c.Remove("p1"))
	assert.False(t, c.Remove("p1"))
	assert.Len(t, snap, 2, "snapshot must not alias the cart")

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.Items)
}

func TestWishlist_NoDuplicates(t *testing.T) {
	w := NewWishlist("u1")
	assert.True(t, w.Add("p1"))
	assert.False(t, w.Add("p1"))
	assert.True(t, w.Add("p2"))
	assert.Equal(t, []string{"p1", "p2"}, w.Items)

	assert.True(t, w.Remove("p1"))
	assert.False(t, w.Remove("p1"))
	assert.Equal(t, []string{"p2"}, w.Items)
}
