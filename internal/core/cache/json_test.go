package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
}

func TestNilCacheLoadsThrough(t *testing.T) {
	var c *Cache
	calls := 0
	got, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (*item, error) {
		calls++
		return &item{Name: "ring"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ring", got.Name)
	assert.Equal(t, 1, calls)

	_, err = GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (*item, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")

	assert.NoError(t, c.Delete(context.Background(), "k"))
	assert.NoError(t, c.Bump(context.Background(), "catalog"))
	assert.Equal(t, "catalog:0:x", c.GenKey(context.Background(), "catalog", "x"))
}
