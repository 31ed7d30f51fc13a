package config

import (
	"strings"
	"time"

	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DeploymentMode string

const (
	ModeLocal DeploymentMode = "local"
	ModeProd  DeploymentMode = "prod"
)

// Configuration is the full service configuration, loaded from config files
// and environment variables via viper.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Billing    BillingConfig    `mapstructure:"billing"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
}

type DeploymentConfig struct {
	Mode DeploymentMode `mapstructure:"mode" default:"local"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" default:":8080"`
}

type LoggingConfig struct {
	Level          string `mapstructure:"level" default:"info"`
	FluentdEnabled bool   `mapstructure:"fluentd_enabled"`
	FluentdHost    string `mapstructure:"fluentd_host"`
	FluentdPort    int    `mapstructure:"fluentd_port"`
}

type AuthConfig struct {
	Supabase SupabaseConfig `mapstructure:"supabase"`
}

type SupabaseConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
	JWTSecret  string `mapstructure:"jwt_secret"`
}

// BillingConfig points at the billing backend this console administers.
type BillingConfig struct {
	APIURL    string        `mapstructure:"api_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout" default:"30s"`
	RetryMax  int           `mapstructure:"retry_max" default:"3"`
	RateLimit float64       `mapstructure:"rate_limit" default:"50"`
	RateBurst int           `mapstructure:"rate_burst" default:"100"`
}

type CacheConfig struct {
	Type string        `mapstructure:"type" default:"inmemory"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	UseTLS   bool   `mapstructure:"use_tls"`
	PoolSize int    `mapstructure:"pool_size"`
}

type SentryConfig struct {
	DSN        string  `mapstructure:"dsn"`
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sample_rate" default:"1.0"`
}

// NewConfig loads configuration from ./config/config.yaml (if present) and
// the environment. Environment variables use the BILLING_CONSOLE_ prefix
// with underscores, e.g. BILLING_CONSOLE_BILLING_API_URL.
func NewConfig() (*Configuration, error) {
	// Load .env for local development; missing file is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLING_CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrInternal)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse configuration").
			Mark(ierr.ErrInternal)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("billing.timeout", "30s")
	v.SetDefault("billing.retry_max", 3)
	v.SetDefault("billing.rate_limit", 50.0)
	v.SetDefault("billing.rate_burst", 100)
	v.SetDefault("cache.type", "inmemory")
	// Zero TTL mirrors the frontend's zero stale-time policy: entries are
	// served only until the next mutation invalidates them.
	v.SetDefault("cache.ttl", "0s")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("sentry.sample_rate", 1.0)
}

// Validate checks fields the service cannot run without.
func (c *Configuration) Validate() error {
	if c.Deployment.Mode == ModeProd && c.Billing.APIURL == "" {
		return ierr.NewError("billing api url is required").
			WithHint("Set billing.api_url or BILLING_CONSOLE_BILLING_API_URL").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a local-mode configuration used by scripts and
// tests before full config loading is wired.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: "debug"},
		Billing: BillingConfig{
			APIURL:    "http://localhost:8081",
			Timeout:   30 * time.Second,
			RetryMax:  3,
			RateLimit: 50,
			RateBurst: 100,
		},
		Cache: CacheConfig{Type: "inmemory"},
	}
}
