package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	Pin           PinConfig
	ShareLinks    ShareLinksConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Square        SquareConfig
	GiftCards     GiftCardsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.ShareLinks.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FRAMELIGHT_APP_ENV" required:"true"`
	Port         string `envconfig:"FRAMELIGHT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FRAMELIGHT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FRAMELIGHT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FRAMELIGHT_DB_DSN"`
	Driver string `envconfig:"FRAMELIGHT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FRAMELIGHT_DB_HOST"`
	LegacyPort     int    `envconfig:"FRAMELIGHT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FRAMELIGHT_DB_USER"`
	LegacyPassword string `envconfig:"FRAMELIGHT_DB_PASSWORD"`
	LegacyName     string `envconfig:"FRAMELIGHT_DB_NAME"`
	LegacySSLMode  string `envconfig:"FRAMELIGHT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FRAMELIGHT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FRAMELIGHT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FRAMELIGHT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRAMELIGHT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either FRAMELIGHT_DB_DSN or host/user/name must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.LegacyHost, d.LegacyPort, d.LegacyUser, d.LegacyPassword, d.LegacyName, d.LegacySSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"FRAMELIGHT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FRAMELIGHT_REDIS_ADDR"`
	Password     string        `envconfig:"FRAMELIGHT_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRAMELIGHT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRAMELIGHT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRAMELIGHT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FRAMELIGHT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRAMELIGHT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FRAMELIGHT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig drives the producer session JWT minted after a PIN check.
type SessionConfig struct {
	Secret          string `envconfig:"FRAMELIGHT_SESSION_SECRET" required:"true"`
	Issuer          string `envconfig:"FRAMELIGHT_SESSION_ISSUER" default:"framelight"`
	ExpirationHours int    `envconfig:"FRAMELIGHT_SESSION_EXPIRATION_HOURS" default:"8"`
}

// TTL returns the configured session lifetime.
func (s SessionConfig) TTL() time.Duration {
	if s.ExpirationHours <= 0 {
		return 0
	}
	return time.Duration(s.ExpirationHours) * time.Hour
}

// PinConfig holds the producer PIN hash plus lockout tuning. The hash is
// injected configuration; this service never stores raw PINs.
type PinConfig struct {
	Hash           string        `envconfig:"FRAMELIGHT_PIN_HASH" required:"true"`
	MaxAttempts    int           `envconfig:"FRAMELIGHT_PIN_MAX_ATTEMPTS" default:"5"`
	LockoutWindow  time.Duration `envconfig:"FRAMELIGHT_PIN_LOCKOUT_WINDOW" default:"15m"`
	AllowLegacyMD5 bool          `envconfig:"FRAMELIGHT_PIN_ALLOW_LEGACY_MD5" default:"true"`
}

type ShareLinksConfig struct {
	BaseURL         string   `envconfig:"FRAMELIGHT_SHARE_LINK_BASE_URL" required:"true"`
	DefaultTTLHours int      `envconfig:"FRAMELIGHT_SHARE_LINK_DEFAULT_TTL_HOURS" default:"72"`
	MaxTTLHours     int      `envconfig:"FRAMELIGHT_SHARE_LINK_MAX_TTL_HOURS" default:"168"`
	AllowedEmails   []string `envconfig:"FRAMELIGHT_SHARE_LINK_ALLOWED_EMAILS"`
}

func (s ShareLinksConfig) validate() error {
	if _, err := url.ParseRequestURI(s.BaseURL); err != nil {
		return fmt.Errorf("invalid share link base url: %w", err)
	}
	if s.MaxTTLHours <= 0 || s.DefaultTTLHours <= 0 {
		return fmt.Errorf("share link TTLs must be positive")
	}
	return nil
}

// EmailAllowed reports whether the producer email may issue share links.
func (s ShareLinksConfig) EmailAllowed(email string) bool {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return false
	}
	for _, allowed := range s.AllowedEmails {
		if strings.ToLower(strings.TrimSpace(allowed)) == needle {
			return true
		}
	}
	return false
}

type AuthRateLimitConfig struct {
	PinWindow  time.Duration `envconfig:"FRAMELIGHT_AUTH_RATE_LIMIT_PIN_WINDOW" default:"1m"`
	PinIPLimit int           `envconfig:"FRAMELIGHT_AUTH_RATE_LIMIT_PIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite        bool `envconfig:"FRAMELIGHT_USE_SQLITE" default:"false"`
	AutoMigrate      bool `envconfig:"FRAMELIGHT_AUTO_MIGRATE" default:"false"`
	GiftCardsEnabled bool `envconfig:"FRAMELIGHT_FEATURE_GIFT_CARDS" default:"true"`
	VideoPortal      bool `envconfig:"FRAMELIGHT_FEATURE_VIDEO_PORTAL" default:"true"`
	MoodboardUploads bool `envconfig:"FRAMELIGHT_FEATURE_MOODBOARD_UPLOADS" default:"false"`
}

type SquareConfig struct {
	AccessToken string `envconfig:"FRAMELIGHT_SQUARE_ACCESS_TOKEN"`
	Env         string `envconfig:"FRAMELIGHT_SQUARE_ENV" default:"sandbox"`
	LocationID  string `envconfig:"FRAMELIGHT_SQUARE_LOCATION_ID"`
}

// Environment returns the normalized Square environment name.
func (s SquareConfig) Environment() string {
	return strings.ToLower(strings.TrimSpace(s.Env))
}

type GiftCardsConfig struct {
	Currency  string `envconfig:"FRAMELIGHT_GIFT_CARD_CURRENCY" default:"USD"`
	MaxAmount int    `envconfig:"FRAMELIGHT_GIFT_CARD_MAX_AMOUNT" default:"10000"`
}
