package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SessionStoreBolt  = "bolt"
	SessionStoreRedis = "redis"
)

// devSessionSecret signs cookies when no secret is configured outside production.
const devSessionSecret = "dev-only-session-secret"

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string `env:"APP_NAME" envDefault:"todo"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Session     SessionConfig
	Password    PasswordConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port         string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"sqlite"`
	Path            string        `env:"DB_PATH" envDefault:"instance/tasks.db"`
	URL             string        `env:"DATABASE_URL"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	Name            string        `env:"DB_NAME" envDefault:"todo"`
	User            string        `env:"DB_USER" envDefault:"todo"`
	Password        string        `env:"DB_PASSWORD"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"2"`
	MaxConnLifetime time.Duration `env:"DB_CONN_LIFETIME" envDefault:"1h"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type SessionConfig struct {
	Store        string        `env:"SESSION_STORE" envDefault:"bolt"`
	Secret       string        `env:"SESSION_SECRET"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	Secure       bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	Lifetime     time.Duration `env:"SESSION_LIFETIME" envDefault:"168h"`
	AnonymousTTL time.Duration `env:"SESSION_ANONYMOUS_TTL" envDefault:"1h"`
	BoltPath     string        `env:"SESSION_BOLT_PATH" envDefault:"instance/sessions.db"`
}

type PasswordConfig struct {
	Scheme string `env:"PASSWORD_SCHEME" envDefault:"bcrypt"`
	Cost   int    `env:"PASSWORD_BCRYPT_COST" envDefault:"10"`
}

type ContextConfig struct {
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

type LoggerConfig struct {
	Level    string `env:"LOG_LEVEL" envDefault:"info"`
	Encoding string `env:"LOG_ENCODING" envDefault:"json"`
}

type MigrationsConfig struct {
	Enabled bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
	Path    string `env:"MIGRATIONS_PATH"`
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults so the service can boot with no setup.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Database.Driver == DriverPostgres && cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}
	if cfg.Session.Secret == "" && !cfg.IsProduction() {
		cfg.Session.Secret = devSessionSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}

	switch c.Session.Store {
	case SessionStoreBolt, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unsupported SESSION_STORE %q", c.Session.Store))
	}

	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.Session.Lifetime <= 0 {
		errs = append(errs, errors.New("SESSION_LIFETIME must be positive"))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDevSecret reports whether cookies are signed with the built-in development secret.
func (c *Config) UsesDevSecret() bool {
	return c.Session.Secret == devSessionSecret
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
