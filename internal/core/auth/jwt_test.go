package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "glimmr", TTL: ttl}
}

func TestIssueAndParse(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("64f000000000000000000001", "a@b.co", "user")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", c.UserID)
	assert.Equal(t, "a@b.co", c.Email)
	assert.Equal(t, "user", c.Role)
}

func TestParseRejectsExpired(t *testing.T) {
	j := newJWTer(-2 * time.Minute) // beyond the 60s leeway
	tok, err := j.Issue("u1", "a@b.co", "user")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	tok, err := newJWTer(time.Hour).Issue("u1", "a@b.co", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: "glimmr", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := newJWTer(time.Hour).Parse("not.a.token")
	assert.Error(t, err)
}
