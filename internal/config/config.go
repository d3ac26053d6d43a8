package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	DBDriver      string // sqlite | pgx
	DBDSN         string
	MediaDir      string
	TemplatesDir  string
	LogFile       string
	LogLevel      string
	RedisAddr     string
	CacheTTL      time.Duration
	NatsURL       string
	SentryDSN     string
	Env           string
	SellerFeeRate string
	CookieSecure  bool
	Seed          bool
	RateLimit     int
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "lascala.db")
	v.SetDefault("MEDIA_DIR", "./web/media")
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("ENV", "dev")
	v.SetDefault("SELLER_FEE_RATE", "0.20")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("SEED", true)
	v.SetDefault("RATE_LIMIT", 60)

	cfg := Config{
		Port:          v.GetString("PORT"),
		DBDriver:      v.GetString("DB_DRIVER"),
		DBDSN:         v.GetString("DB_DSN"),
		MediaDir:      v.GetString("MEDIA_DIR"),
		TemplatesDir:  v.GetString("TEMPLATES_DIR"),
		LogFile:       v.GetString("LOG_FILE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		CacheTTL:      v.GetDuration("CACHE_TTL"),
		NatsURL:       v.GetString("NATS_URL"),
		SentryDSN:     v.GetString("SENTRY_DSN"),
		Env:           v.GetString("ENV"),
		SellerFeeRate: v.GetString("SELLER_FEE_RATE"),
		CookieSecure:  v.GetBool("COOKIE_SECURE"),
		Seed:          v.GetBool("SEED"),
		RateLimit:     v.GetInt("RATE_LIMIT"),
	}

	switch cfg.DBDriver {
	case "sqlite", "pgx":
	default:
		return Config{}, errors.New("DB_DRIVER must be sqlite or pgx")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	return cfg, nil
}
