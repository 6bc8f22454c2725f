package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Narrative NarrativeConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

func (c AppConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.AppName, validation.Required),
		validation.Field(&c.Environment, validation.Required, validation.In("development", "staging", "production", "test")),
		validation.Field(&c.HTTPPort, validation.Required, is.Port),
	)
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	// SeedDemoData loads the demo account and a few sample contacts on
	// boot. Meant for development environments only.
	SeedDemoData bool
}

func (c DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.User, validation.Required),
		validation.Field(&c.SSLMode, validation.In("disable", "allow", "prefer", "require", "verify-ca", "verify-full")),
	)
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func (c JWTConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.AccessSecret, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.RefreshSecret, validation.Required, validation.Length(16, 0)),
	)
}

// RedisConfig is optional as a whole: an empty Host disables caching and
// the app keeps working without it.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Validate() error {
	if c.Host == "" {
		return nil
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, is.Port),
	)
}

func (c RedisConfig) Addr() string {
	if c.Host == "" {
		return ""
	}
	return c.Host + ":" + c.Port
}

// NarrativeConfig points at the external text-generation endpoint. An
// empty BaseURL disables remote generation and every summary falls back
// to the deterministic composer.
type NarrativeConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (c NarrativeConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, is.URL),
	)
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return n
	}
	optBool := func(key string, def bool) bool {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		Host:     opt("DB_HOST", "localhost"),
		Port:     opt("DB_PORT", "5432"),
		Name:     req("DB_NAME"),
		User:     req("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		SSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        time.Duration(optInt("DB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   time.Duration(optInt("DB_POOL_MAX_CONN_LIFETIME_MINUTES", 60)) * time.Minute,
		PoolMaxConnIdleTime:   time.Duration(optInt("DB_POOL_MAX_CONN_IDLE_MINUTES", 15)) * time.Minute,
		PoolHealthCheckPeriod: time.Duration(optInt("DB_POOL_HEALTHCHECK_SECONDS", 60)) * time.Second,

		SeedDemoData: optBool("DB_SEED_DEMO_DATA", false),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:  req("JWT_ACCESS_SECRET"),
		RefreshSecret: req("JWT_REFRESH_SECRET"),
		AccessTTL:     time.Duration(optInt("JWT_ACCESS_TTL_MINUTES", 15)) * time.Minute,
		RefreshTTL:    time.Duration(optInt("JWT_REFRESH_TTL_HOURS", 168)) * time.Hour,
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", ""),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
	}

	narrativeTimeout := optInt("NARRATIVE_TIMEOUT_SECONDS", 25)
	if narrativeTimeout < 5 {
		narrativeTimeout = 5
	}
	if narrativeTimeout > 60 {
		narrativeTimeout = 60
	}
	cfg.Narrative = NarrativeConfig{
		BaseURL: opt("NARRATIVE_BASE_URL", ""),
		APIKey:  os.Getenv("NARRATIVE_API_KEY"),
		Timeout: time.Duration(narrativeTimeout) * time.Second,
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app config: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("jwt config: %w", err)
	}
	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis config: %w", err)
	}
	if err := c.Narrative.Validate(); err != nil {
		return fmt.Errorf("narrative config: %w", err)
	}
	return nil
}
