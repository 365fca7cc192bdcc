package jwt

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCookies(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	c := CreateCookie(AccessCookie, "tok", "/", exp)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	d := DeleteCookie(AccessCookie, "/")
	assert.Empty(t, d.Value)
	assert.Equal(t, -1, d.MaxAge)
}

func TestSha256HexAndJTI(t *testing.T) {
	assert.Equal(t, "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae", Sha256Hex("foo"))
	_, err := uuid.Parse(NewJTI())
	assert.NoError(t, err)
	assert.NotEqual(t, NewJTI(), NewJTI())
}
