package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"glimmr/internal/core/auth"
	"glimmr/internal/domain"
	"glimmr/internal/store"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.Memory()
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "glimmr", TTL: time.Hour}
	return NewService(st.Users, st.Carts, st.Wishlists, j, zap.NewNop()), st
}

func TestRegister_ProvisionsCartAndWishlist(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	sess, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: " Asha@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "asha@example.com", sess.User.Email)
	assert.Equal(t, domain.RoleUser, sess.User.Role)
	assert.NotEqual(t, "secret1", sess.User.PasswordHash)

	cart, err := st.Carts.FindByUser(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	wl, err := st.Wishlists.FindByUser(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.Empty(t, wl.Items)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.io", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "A@x.io", Password: "secret2"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	reg, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.io", Password: "secret1"})
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "A@X.IO", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sess.User.ID)

	claims, err := svc.jwt.Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "a@x.io", claims.Email)

	_, err = svc.Login(ctx, "a@x.io", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@x.io", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
