package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwthelp "github.com/Skotchmaster/shoe_store/pkg/jwt"
	"github.com/Skotchmaster/shoe_store/pkg/tokens"
)

var secret = []byte("mw-secret")

type stubRefresher struct {
	pair *tokens.Pair
	err  error
	got  string
}

func (s *stubRefresher) RefreshTokens(_ context.Context, refreshToken string) (*tokens.Pair, error) {
	s.got = refreshToken
	return s.pair, s.err
}

func sign(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	tok, err := tokens.SignAccess(secret, "u-1", role, exp)
	require.NoError(t, err)
	return tok
}

func run(mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c)
	return rec, c, err
}

func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}

func TestRequireAdmin_Bearer(t *testing.T) {
	m := NewAutoRefreshMiddleware(secret, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+sign(t, RoleAdmin, time.Now().Add(time.Hour)))
	rec, c, err := run(m.RequireAdmin, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u-1", UserID(c))
	assert.Equal(t, RoleAdmin, Role(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+sign(t, "customer", time.Now().Add(time.Hour)))
	_, _, err = run(m.RequireAdmin, req)
	assert.Equal(t, http.StatusForbidden, statusOf(err))
}

func TestRequireAuth_Missing(t *testing.T) {
	m := NewAutoRefreshMiddleware(secret, nil)
	_, _, err := run(m.RequireAuth, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}

func TestRequireAuth_ExpiredBearerIsNotRefreshed(t *testing.T) {
	ref := &stubRefresher{}
	m := NewAutoRefreshMiddleware(secret, ref)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+sign(t, RoleAdmin, time.Now().Add(-time.Minute)))
	_, _, err := run(m.RequireAuth, req)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	assert.Empty(t, ref.got)
}

func TestRequireAuth_CookieAutoRefresh(t *testing.T) {
	fresh := sign(t, RoleAdmin, time.Now().Add(time.Hour))
	ref := &stubRefresher{pair: &tokens.Pair{
		AccessToken:  fresh,
		RefreshToken: "new-refresh",
		AccessExp:    time.Now().Add(time.Hour),
		RefreshExp:   time.Now().Add(24 * time.Hour),
	}}
	m := NewAutoRefreshMiddleware(secret, ref)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: jwthelp.AccessCookie, Value: sign(t, RoleAdmin, time.Now().Add(-time.Minute))})
	req.AddCookie(&http.Cookie{Name: jwthelp.RefreshCookie, Value: "old-refresh"})

	rec, c, err := run(m.RequireAdmin, req)
	require.NoError(t, err)
	assert.Equal(t, "old-refresh", ref.got)
	assert.Equal(t, "u-1", UserID(c))

	cookies := rec.Result().Cookies()
	names := map[string]string{}
	for _, ck := range cookies {
		names[ck.Name] = ck.Value
	}
	assert.Equal(t, fresh, names[jwthelp.AccessCookie])
	assert.Equal(t, "new-refresh", names[jwthelp.RefreshCookie])
}

func TestRequireAuth_CookieRefreshFails(t *testing.T) {
	m := NewAutoRefreshMiddleware(secret, &stubRefresher{err: errors.New("revoked")})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: jwthelp.AccessCookie, Value: sign(t, "customer", time.Now().Add(-time.Minute))})
	req.AddCookie(&http.Cookie{Name: jwthelp.RefreshCookie, Value: "r"})

	_, _, err := run(m.RequireAuth, req)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}
