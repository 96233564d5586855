package configs

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	ProviderLocal = "local"
	ProviderGorm  = "gorm"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port         string `env:"TOE_SERVER_PORT,default=3000"`
	DataProvider string `env:"TOE_DATA_PROVIDER,default=local"`
	DataDir      string `env:"TOE_DATA_DIR,default=./data/"`

	DBDriver string `env:"TOE_DB_DRIVER,default=sqlite"`
	DBSource string `env:"TOE_DB_SOURCE,default=taproom.db"`
	DBSeed   bool   `env:"TOE_DB_SEED,default=false"`

	MaxBodyBytes int64 `env:"TOE_MAX_BODY_BYTES,default=52428800"`

	LogLevel  string `env:"TOE_LOG_LEVEL,default=info"`
	LogFormat string `env:"TOE_LOG_FORMAT,default=text"`

	// Admin auth is on only when both are set.
	JWTSecret     string        `env:"TOE_JWT_SECRET"`
	AdminPassword string        `env:"TOE_ADMIN_PASSWORD"`
	JWTTTL        time.Duration `env:"TOE_JWT_TTL,default=24h"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DataProvider {
	case ProviderLocal, ProviderGorm:
	default:
		return fmt.Errorf("unknown data provider %q", c.DataProvider)
	}
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver %q", c.DBDriver)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AdminPassword != ""
}
