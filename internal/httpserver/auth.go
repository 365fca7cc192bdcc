package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_store/internal/service"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	jwthelp "github.com/Skotchmaster/shoe_store/pkg/jwt"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
	"github.com/Skotchmaster/shoe_store/pkg/tokens"
)

type AuthHTTP struct {
	Svc *service.AuthService
	// AllowAdminBootstrap enables POST /api/auth/create-admin.
	AllowAdminBootstrap bool
}

func setAuthCookies(c echo.Context, p tokens.Pair) {
	c.SetCookie(jwthelp.CreateCookie(jwthelp.AccessCookie, p.AccessToken, "/", p.AccessExp))
	c.SetCookie(jwthelp.CreateCookie(jwthelp.RefreshCookie, p.RefreshToken, "/", p.RefreshExp))
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.AccessCookie, "/"))
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.RefreshCookie, "/"))
}

// refreshTokenFrom prefers the JSON body and falls back to the cookie.
func refreshTokenFrom(c echo.Context) (string, error) {
	var req transport.RefreshRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return "", err
		}
	}
	if req.RefreshToken == "" {
		if ck, err := c.Cookie(jwthelp.RefreshCookie); err == nil {
			req.RefreshToken = ck.Value
		}
	}
	return req.RefreshToken, nil
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "register", err)
	}
	u, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register", err)
	}
	l.Info("register_success", "user_id", u.ID)
	return c.JSON(http.StatusCreated, u)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "login", err)
	}
	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(l, "login", err)
	}

	setAuthCookies(c, res.Pair)
	l.Info("login_successful", "user_id", res.User.ID, "role", res.User.Role)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         res.User,
	})
}

func (h *AuthHTTP) Exists(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.exists")

	ok, err := h.Svc.Exists(ctx, c.QueryParam("email"))
	if err != nil {
		return fail(l, "exists", err)
	}
	return c.JSON(http.StatusOK, transport.ExistsResponse{Exists: ok})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	raw, err := refreshTokenFrom(c)
	if err != nil {
		return badBody(l, "refresh", err)
	}
	pair, err := h.Svc.RefreshTokens(ctx, raw)
	if err != nil {
		clearAuthCookies(c)
		return fail(l, "refresh", err)
	}
	setAuthCookies(c, *pair)
	return c.JSON(http.StatusOK, transport.TokenResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	raw, err := refreshTokenFrom(c)
	if err != nil {
		return badBody(l, "logout", err)
	}
	clearAuthCookies(c)
	if raw != "" {
		if err := h.Svc.Logout(ctx, raw); err != nil {
			return fail(l, "logout", err)
		}
	}
	l.Info("successful_logout")
	return c.JSON(http.StatusOK, transport.OKResponse{OK: true})
}

func (h *AuthHTTP) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.create_admin")

	if !h.AllowAdminBootstrap {
		l.Warn("create_admin_error", "status", http.StatusNotFound, "reason", "bootstrap disabled")
		return echo.ErrNotFound
	}
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_admin", err)
	}
	u, err := h.Svc.CreateAdmin(ctx, req)
	if err != nil {
		return fail(l, "create_admin", err)
	}
	l.Info("create_admin_success", "admin_id", u.ID)
	return c.JSON(http.StatusCreated, u)
}
