package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Warehouse drivers.
const (
	DriverDatabricks = "databricks"
	DriverSQLite     = "sqlite"
	DriverPostgres   = "postgres"
)

// Secret providers.
const (
	SecretsEnv   = "env"
	SecretsVault = "vault"
)

// Session modes.
const (
	AuthModeBearer = "bearer"
	AuthModeCookie = "cookie"
)

// EnvPrefix is prepended to every environment override, e.g. GAGE_AUTH_MODE.
const EnvPrefix = "GAGE"

type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Warehouse WarehouseConfig `mapstructure:"warehouse"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

// WarehouseConfig selects the SQL engine and how tables are qualified.
// DSN is only read by the sqlite and postgres drivers; Databricks
// credentials always come from the secret provider.
type WarehouseConfig struct {
	Driver       string        `mapstructure:"driver"`
	DSN          string        `mapstructure:"dsn"`
	Port         int           `mapstructure:"port"`
	Catalog      string        `mapstructure:"catalog"`
	Schema       string        `mapstructure:"schema"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
}

type SecretsConfig struct {
	Provider string `mapstructure:"provider"`
	VaultURL string `mapstructure:"vault_url"`
}

type AuthConfig struct {
	Mode         string        `mapstructure:"mode"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// SessionsConfig points at the Redis instance holding revoked tokens.
// An empty RedisAddr keeps revocations in process memory.
type SessionsConfig struct {
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("http.read_header_timeout", "10s")
	v.SetDefault("http.write_timeout", "60s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("warehouse.driver", DriverDatabricks)
	v.SetDefault("warehouse.dsn", "")
	v.SetDefault("warehouse.port", 443)
	v.SetDefault("warehouse.catalog", "gage_dev_databricks")
	v.SetDefault("warehouse.schema", "gold_layer")
	v.SetDefault("warehouse.query_timeout", "30s")
	v.SetDefault("warehouse.max_open_conns", 4)
	v.SetDefault("secrets.provider", SecretsEnv)
	v.SetDefault("secrets.vault_url", "")
	v.SetDefault("auth.mode", AuthModeBearer)
	v.SetDefault("auth.token_ttl", "1h")
	v.SetDefault("auth.cookie_name", "session_token")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("sessions.redis_addr", "")
	v.SetDefault("sessions.redis_password", "")
	v.SetDefault("sessions.redis_db", 0)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
}

// Load reads envFile (if present) into the process environment, then
// dir/config.yml, then GAGE_* overrides, and validates the result.
// A missing config file is not an error; defaults apply.
func Load(dir, envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config in %q: %w", dir, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// Validate rejects unknown enum values and settings that cannot work together.
func (c *Config) Validate() error {
	switch c.Warehouse.Driver {
	case DriverDatabricks:
	case DriverSQLite, DriverPostgres:
		if c.Warehouse.DSN == "" {
			return fmt.Errorf("warehouse.dsn is required for driver %q", c.Warehouse.Driver)
		}
	default:
		return fmt.Errorf("unknown warehouse.driver %q", c.Warehouse.Driver)
	}

	switch c.Secrets.Provider {
	case SecretsEnv:
	case SecretsVault:
		if c.Secrets.VaultURL == "" {
			return errors.New("secrets.vault_url is required when secrets.provider is vault")
		}
	default:
		return fmt.Errorf("unknown secrets.provider %q", c.Secrets.Provider)
	}

	switch c.Auth.Mode {
	case AuthModeBearer, AuthModeCookie:
	default:
		return fmt.Errorf("unknown auth.mode %q", c.Auth.Mode)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}

// String returns a loggable summary; it never includes secrets.
func (c *Config) String() string {
	return fmt.Sprintf("Config{port: %s, warehouse: %s/%s.%s, secrets: %s, auth: %s, redis: %t}",
		c.Port, c.Warehouse.Driver, c.Warehouse.Catalog, c.Warehouse.Schema,
		c.Secrets.Provider, c.Auth.Mode, c.Sessions.RedisAddr != "")
}
