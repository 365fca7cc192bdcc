package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shoe_store/internal/cache"
	storecfg "github.com/Skotchmaster/shoe_store/internal/config"
	"github.com/Skotchmaster/shoe_store/internal/httpserver"
	"github.com/Skotchmaster/shoe_store/internal/repo"
	"github.com/Skotchmaster/shoe_store/internal/rollup"
	"github.com/Skotchmaster/shoe_store/internal/search"
	"github.com/Skotchmaster/shoe_store/internal/service"
	pkgconfig "github.com/Skotchmaster/shoe_store/pkg/config"
	pkgdb "github.com/Skotchmaster/shoe_store/pkg/db"
	"github.com/Skotchmaster/shoe_store/pkg/events"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
	"github.com/Skotchmaster/shoe_store/pkg/metrics"
	loggingmw "github.com/Skotchmaster/shoe_store/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := pkgconfig.ApplyFile(path); err != nil {
			log.Fatalf("config file: %v", err)
		}
	}

	cfg := storecfg.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	r := repo.New(db)
	if err := r.Migrate(context.Background()); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	publisher := events.New(cfg.KafkaBrokers)
	indexer := newIndexer(cfg, logger)
	statsCache := newStatsCache(cfg, logger)
	m := metrics.New()

	users, admins := repo.NewUserStore(db), repo.NewAdminStore(db)
	authSvc := &service.AuthService{
		Repo:          r,
		Users:         users,
		Admins:        admins,
		Events:        publisher,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}
	catalogSvc := &service.CatalogService{Repo: r, Index: indexer, Events: publisher}
	orderSvc := &service.OrderService{Repo: r, Events: publisher, Metrics: m, TrustClientSubtotal: cfg.TrustClientSubtotal}
	adminSvc := &service.AdminService{Repo: r, Users: users, Cache: statsCache}

	if _, ok := indexer.(*search.ESIndexer); ok {
		go func() {
			n, err := catalogSvc.Reindex(context.Background())
			if err != nil {
				logger.Warn("reindex_error", "error", err)
				return
			}
			logger.Info("reindex_done", "products", n)
		}()
	}

	scheduler := &rollup.Scheduler{Snapshots: adminSvc, Tokens: r, Metrics: m, Log: logger}
	if err := scheduler.Start(context.Background(), cfg.RollupSchedule); err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(echomw.Secure())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	e.Use(echomw.BodyLimit("10M"))

	httpserver.Register(e, &httpserver.Deps{
		Catalog:  &httpserver.CatalogHTTP{Svc: catalogSvc, UploadDir: cfg.UploadDir},
		Cart:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Events: publisher, Metrics: m}},
		Wishlist: &httpserver.WishlistHTTP{Svc: &service.WishlistService{Repo: r}},
		Orders:   &httpserver.OrderHTTP{Svc: orderSvc},
		Checkout: &httpserver.CheckoutHTTP{Emails: authSvc},
		Auth:     &httpserver.AuthHTTP{Svc: authSvc, AllowAdminBootstrap: cfg.AllowAdminBootstrap},
		Admin:    &httpserver.AdminHTTP{Svc: adminSvc, Orders: orderSvc},
		Health:   &httpserver.HealthHTTP{DB: db},

		JWTSecret:     cfg.JWTAccessSecret,
		Refresher:     authSvc,
		Metrics:       m,
		UploadDir:     cfg.UploadDir,
		AuthRateLimit: cfg.AuthRateLimit,
		CSRF:          cfg.CSRFEnabled,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("storefront_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	scheduler.Stop(shutdownCtx)
	if err := publisher.Close(); err != nil {
		logger.Warn("producer_close_error", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("storefront_stopped")
}

func newIndexer(cfg storecfg.ServiceConfig, l *slog.Logger) search.Indexer {
	if cfg.ESURL == "" {
		return search.Nop{}
	}
	es, err := search.NewClient(search.ClientConfig{URL: cfg.ESURL, Username: cfg.ESUser, Password: cfg.ESPassword})
	if err != nil {
		l.Warn("search_disabled", "error", err)
		return search.Nop{}
	}
	return search.NewESIndexer(es, cfg.ESIndex)
}

func newStatsCache(cfg storecfg.ServiceConfig, l *slog.Logger) cache.StatsCache {
	if cfg.RedisURL == "" {
		return cache.Nop{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		l.Warn("stats_cache_disabled", "error", err)
		return cache.Nop{}
	}
	return cache.NewRedisStatsCache(client, cfg.StatsCacheTTL)
}
