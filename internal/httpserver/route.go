package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/shoe_store/pkg/metrics"
	middleware "github.com/Skotchmaster/shoe_store/pkg/middleware/auth"
	"github.com/Skotchmaster/shoe_store/pkg/middleware/csrf"
)

type Deps struct {
	Catalog  *CatalogHTTP
	Cart     *CartHTTP
	Wishlist *WishlistHTTP
	Orders   *OrderHTTP
	Checkout *CheckoutHTTP
	Auth     *AuthHTTP
	Admin    *AdminHTTP
	Health   *HealthHTTP

	JWTSecret []byte
	Refresher middleware.Refresher
	Metrics   *metrics.Metrics

	UploadDir string
	// AuthRateLimit is requests per second per client on /api/auth; 0 disables it.
	AuthRateLimit float64
	CSRF          bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.Health.Live)
	e.GET("/health/ready", d.Health.Ready)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}
	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.Refresher)

	api := e.Group("/api")
	if d.CSRF {
		cfg := csrf.DefaultConfig()
		cfg.Skipper = csrf.SkipBearer
		api.Use(csrf.Middleware(cfg))
	}
	api.GET("/health", d.Health.Status)

	products := api.Group("/products")
	products.GET("", d.Catalog.GetProducts)
	products.GET("/search", d.Catalog.SearchProducts)
	products.GET("/:id", d.Catalog.GetProduct)

	productAdmin := products.Group("", authMW.RequireAdmin)
	productAdmin.POST("", d.Catalog.CreateProduct)
	productAdmin.PUT("/:id", d.Catalog.UpdateProduct)
	productAdmin.DELETE("/:id", d.Catalog.DeleteProduct)

	cart := api.Group("/cart")
	cart.GET("", d.Cart.GetCart)
	cart.POST("", d.Cart.AddToCart)
	cart.PUT("/:id", d.Cart.UpdateCartItem)
	cart.DELETE("/:id", d.Cart.DeleteCartItem)

	wishlist := api.Group("/wishlist")
	wishlist.GET("", d.Wishlist.GetWishlist)
	wishlist.POST("", d.Wishlist.AddToWishlist)
	wishlist.DELETE("/:id", d.Wishlist.DeleteWishlistItem)

	orders := api.Group("/orders")
	orders.POST("", d.Orders.CreateOrder)
	orders.GET("", d.Orders.ListOrders)

	co := api.Group("/checkout")
	co.POST("/shipping", d.Checkout.ValidateShipping)
	co.POST("/payment", d.Checkout.ValidatePayment)

	auth := api.Group("/auth")
	if d.AuthRateLimit > 0 {
		auth.Use(echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
			Store: echomw.NewRateLimiterMemoryStore(rate.Limit(d.AuthRateLimit)),
			DenyHandler: func(c echo.Context, _ string, _ error) error {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			},
		}))
	}
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/exists", d.Auth.Exists)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)
	auth.POST("/create-admin", d.Auth.CreateAdmin)

	admin := api.Group("/admin", authMW.RequireAdmin)
	admin.GET("/stats", d.Admin.Stats)
	admin.GET("/orders", d.Admin.ListOrders)
	admin.GET("/users", d.Admin.ListUsers)
	admin.PATCH("/orders/:id", d.Admin.UpdateOrderStatus)
	admin.POST("/snapshot", d.Admin.RefreshSnapshot)
}
