package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	LogFormat              string   `mapstructure:"log_format"               validate:"omitempty,oneof=json text tint"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the storage backend: "postgres" (pgx) or "sqlite".
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a PostgreSQL connection URL or a SQLite file path/DSN.
	URL                    string `mapstructure:"url"                       validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,gtfield=TokenLifetimeMinutes"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"required,gte=4,lte=31"`
}

// CacheConfig configures the optional Redis business cache.
// An empty RedisURL disables caching.
type CacheConfig struct {
	RedisURL   string `mapstructure:"redis_url"   validate:"omitempty,url"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
}
