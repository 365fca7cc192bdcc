package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestAccessRoundTrip(t *testing.T) {
	tok, err := SignAccess(secret, "user-1", "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestAccessClaimsFromToken_Rejects(t *testing.T) {
	expired, err := SignAccess(secret, "u", "customer", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(expired, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	good, err := SignAccess(secret, "u", "customer", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(good, []byte("other"))
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	none := jwt.NewWithClaims(jwt.SigningMethodHS512, AccessClaims{Role: "admin"})
	s, err := none.SignedString(secret)
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(s, secret)
	assert.Error(t, err)
}

func TestRefreshRoundTrip(t *testing.T) {
	tok, err := SignRefresh(secret, "user-1", "customer", "jti-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "jti-1", claims.ID)
	assert.Equal(t, "customer", claims.Role)
}
