package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"glimmr/internal/domain"
	"glimmr/internal/store"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.Memory()
	return NewService(st.Users, st.Products, zap.NewNop()), st
}

func addUser(t *testing.T, st *store.Store, email string, prefs *domain.Preferences) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Meera", Email: email, PasswordHash: "x", Role: domain.RoleUser, Preferences: prefs}
	require.NoError(t, st.Users.Create(context.Background(), u))
	return u
}

func ptr(s string) *string { return &s }

func TestUpdate_OnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	u := addUser(t, st, "meera@example.com", nil)
	u.Phone = "111"
	require.NoError(t, st.Users.Update(ctx, u))

	got, err := svc.Update(ctx, u.ID, Patch{
		Name:    ptr(" Meera K "),
		Address: &domain.Address{City: "Pune"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Meera K", got.Name)
	assert.Equal(t, "111", got.Phone)
	require.NotNil(t, got.Address)
	assert.Equal(t, "Pune", got.Address.City)

	again, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meera K", again.Name)

	_, err = svc.Update(ctx, "missing", Patch{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecommendationQuery(t *testing.T) {
	q := RecommendationQuery(nil)
	assert.Equal(t, "earrings", q.Category)
	assert.True(t, q.InStockOnly)
	assert.Nil(t, q.MaxPrice)
	assert.Equal(t, 5, q.Limit)

	q = RecommendationQuery(&domain.Preferences{FaceShape: "oval", PriceRange: "1000-3000"})
	assert.Equal(t, []string{"oval"}, q.AnyTags)
	require.NotNil(t, q.MaxPrice)
	assert.Equal(t, 3000.0, *q.MaxPrice)

	q = RecommendationQuery(&domain.Preferences{PriceRange: "premium"})
	require.NotNil(t, q.MaxPrice)
	assert.Equal(t, 5000.0, *q.MaxPrice)
}

func TestRecommendations(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	in := domain.Availability{InStock: true, Quantity: 3}
	for _, p := range []domain.Product{
		{Name: "Oval Drops", Category: "earrings", Price: 2000, Availability: in, Tags: []string{"oval"}},
		{Name: "Oval Chandeliers", Category: "earrings", Price: 9000, Availability: in, Tags: []string{"oval"}},
		{Name: "Round Studs", Category: "earrings", Price: 1500, Availability: in, Tags: []string{"round"}},
		{Name: "Oval Pendant", Category: "necklaces", Price: 1000, Availability: in, Tags: []string{"oval"}},
	} {
		p := p
		require.NoError(t, st.Products.Create(ctx, &p))
	}
	u := addUser(t, st, "oval@example.com", &domain.Preferences{FaceShape: "oval", PriceRange: "0-3000"})

	got, err := svc.Recommendations(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Oval Drops", got[0].Name)

	// unknown users get the unfiltered earring list
	got, err = svc.Recommendations(ctx, "gone")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	addUser(t, st, "a@example.com", nil)
	addUser(t, st, "b@example.com", nil)

	page, err := svc.ListUsers(ctx, -1, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, 20, page.Limit)
	assert.Len(t, page.Items, 2)

	page, err = svc.ListUsers(ctx, 0, 10, "b@")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestRoles(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	u := addUser(t, st, "ops@example.com", nil)

	_, err := svc.SetRole(ctx, u.ID, "root")
	assert.ErrorIs(t, err, ErrBadRole)

	got, err := svc.Promote(ctx, " OPS@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	got, err = svc.SetRole(ctx, u.ID, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, got.Role)

	stored, err := st.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role)

	_, err = svc.Promote(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
