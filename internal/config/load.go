package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// POWERDEALER_AUTH_JWT_SECRET for auth.jwt_secret.
const EnvPrefix = "POWERDEALER"

// Load reads configuration from defaults, an optional config.yaml in the
// working directory, an optional .env file and environment variables, in
// increasing order of precedence. The result is validated before return.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is like Load but looks for config.yaml and .env in dir.
func LoadFrom(dir string) (*Config, error) {
	envFile := dir + string(os.PathSeparator) + ".env"
	if _, err := os.Stat(envFile); err == nil {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// setDefaults registers a default for every key. viper's AutomaticEnv only
// maps environment variables onto keys it already knows about during
// Unmarshal, so keys without a meaningful default are registered empty.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 5)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 1440)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl_seconds", 300)
}
