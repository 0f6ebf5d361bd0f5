package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port       string `envconfig:"PORT" default:"8080"`
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	AppVersion string `envconfig:"APP_VERSION" default:"dev"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver  string `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI     string `envconfig:"MONGODB_URI"`
	DatabaseName string `envconfig:"DATABASE_NAME" default:"foundation"`
	ContentKey   string `envconfig:"CONTENT_KEY" default:"site_content"`

	JWTSecret             string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTLMinutes int    `envconfig:"ACCESS_TOKEN_TTL_MINUTES" default:"1440"`
	RedisURL              string `envconfig:"REDIS_URL"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@tamoharfoundation.org"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	AdminName     string `envconfig:"ADMIN_NAME" default:"Admin"`

	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"*"`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"1"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"5"`
	// Comma-separated IPs or CIDRs allowed to set X-Forwarded-For. Empty
	// means the client IP is always the socket peer.
	TrustedProxies string `envconfig:"TRUSTED_PROXIES"`

	StorageDriver           string `envconfig:"STORAGE_DRIVER" default:"memory"`
	MaxUploadSizeMB         int    `envconfig:"MAX_UPLOAD_SIZE_MB" default:"10"`
	R2Bucket                string `envconfig:"R2_BUCKET"`
	R2AccessKeyID           string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey       string `envconfig:"R2_SECRET_ACCESS_KEY"`
	R2Endpoint              string `envconfig:"R2_ENDPOINT"`
	R2PublicDomain          string `envconfig:"R2_PUBLIC_DOMAIN"`
	R2Region                string `envconfig:"R2_REGION" default:"auto"`
	GCSBucket               string `envconfig:"GCS_BUCKET"`
	CredentialsFileLocation string `envconfig:"CREDENTIALS_FILE_LOCATION"`
	PublicBaseURL           string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters"))
	}
	if c.AccessTokenTTLMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL_MINUTES must be positive"))
	}

	switch c.StoreDriver {
	case "mongo":
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required when STORE_DRIVER=mongo"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.StorageDriver {
	case "r2", "s3":
		if c.R2Bucket == "" || c.R2AccessKeyID == "" || c.R2SecretAccessKey == "" || c.R2Endpoint == "" {
			errs = append(errs, errors.New("R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_ENDPOINT are required"))
		}
	case "gcs":
		if c.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required when STORAGE_DRIVER=gcs"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if c.IsProduction() && c.AdminPassword != "" && len(c.AdminPassword) < 12 {
		errs = append(errs, errors.New("ADMIN_PASSWORD must be at least 12 characters in production"))
	}
	if len(c.AdminPassword) > 72 {
		errs = append(errs, errors.New("ADMIN_PASSWORD must be at most 72 bytes"))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}
	for _, p := range c.Proxies() {
		if _, _, err := net.ParseCIDR(p); err == nil {
			continue
		}
		if net.ParseIP(p) == nil {
			errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

// Origins returns nil when every origin is allowed.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return nil
		}
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Proxies returns the trusted proxy list, nil when none is configured.
func (c *Config) Proxies() []string {
	var proxies []string
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
