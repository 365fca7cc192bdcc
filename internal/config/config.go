package config

import (
	"os"
	"time"

	"github.com/Skotchmaster/shoe_store/pkg/config"
)

type ServiceConfig struct {
	config.Config

	UploadDir      string
	AllowedOrigins []string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RedisURL      string
	StatsCacheTTL time.Duration

	RollupSchedule string

	// AuthRateLimit is requests per second per client IP on /api/auth.
	AuthRateLimit float64

	TrustClientSubtotal bool
	AllowAdminBootstrap bool
	CSRFEnabled         bool
}

func Load() ServiceConfig {
	return ServiceConfig{
		Config: config.Load(),

		UploadDir:      config.EnvDefault("UPLOAD_DIR", "uploads"),
		AllowedOrigins: config.CSV(config.EnvDefault("ALLOWED_ORIGINS", "*")),

		AccessTokenTTL:  config.EnvDurationDefault("ACCESS_TOKEN_TTL", 7*24*time.Hour),
		RefreshTokenTTL: config.EnvDurationDefault("REFRESH_TOKEN_TTL", 30*24*time.Hour),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    config.EnvDefault("ES_INDEX", "products"),

		RedisURL:      os.Getenv("REDIS_URL"),
		StatsCacheTTL: config.EnvDurationDefault("STATS_CACHE_TTL", 30*time.Second),

		RollupSchedule: config.EnvDefault("ROLLUP_SCHEDULE", "@every 5m"),

		AuthRateLimit: config.EnvFloatDefault("AUTH_RATE_LIMIT", 5),

		TrustClientSubtotal: config.EnvBoolDefault("ORDER_TRUST_CLIENT_SUBTOTAL", false),
		AllowAdminBootstrap: config.EnvBoolDefault("ALLOW_ADMIN_BOOTSTRAP", false),
		CSRFEnabled:         config.EnvBoolDefault("CSRF_ENABLED", false),
	}
}

func (c ServiceConfig) Validate() error {
	req := config.Required{
		"DATABASE_URL": c.DatabaseURL,
		"JWT_SECRET":   string(c.JWTAccessSecret),
	}
	if len(c.JWTRefreshSecret) == 0 {
		req["JWT_REFRESH_SECRET"] = ""
	}
	return req.Check()
}
