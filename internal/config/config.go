package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environment names recognized by the settings loader.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultSecretKey is the placeholder shipped in .env.example. Running in
// production with this value is a configuration error.
const DefaultSecretKey = "your-secret-key-change-in-production"

// Settings holds the application configuration, read once at startup from
// environment variables (with an optional .env file merged in first).
type Settings struct {
	// Application settings
	AppName     string `env:"APP_NAME" envDefault:"Blog API"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG" envDefault:"true"`
	APIV1Prefix string `env:"API_V1_PREFIX" envDefault:"/api/v1"`

	// Server settings
	Host       string `env:"HOST" envDefault:"0.0.0.0"`
	Port       int    `env:"PORT" envDefault:"8000"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// Database settings. DATABASE_URL, when set, takes precedence over the
	// individual POSTGRES_* fields.
	DatabaseURL string `env:"DATABASE_URL"`

	// PostgreSQL settings for production
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"password"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"blog"`

	// JWT authentication settings
	SecretKey                string `env:"SECRET_KEY" envDefault:"your-secret-key-change-in-production"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
}

// Load reads settings from the process environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win over file values.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks every documented constraint and reports all violations at
// once.
func (s *Settings) Validate() error {
	var problems []string

	if s.Environment != EnvDevelopment && s.Environment != EnvProduction {
		problems = append(problems, fmt.Sprintf("ENVIRONMENT must be %q or %q, got %q", EnvDevelopment, EnvProduction, s.Environment))
	}
	if !strings.HasPrefix(s.APIV1Prefix, "/") {
		problems = append(problems, fmt.Sprintf("API_V1_PREFIX must start with '/', got %q", s.APIV1Prefix))
	}
	if s.Port < 1 || s.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be in range 1-65535, got %d", s.Port))
	}
	if s.PostgresPort < 1 || s.PostgresPort > 65535 {
		problems = append(problems, fmt.Sprintf("POSTGRES_PORT must be in range 1-65535, got %d", s.PostgresPort))
	}
	if s.AccessTokenExpireMinutes <= 0 {
		problems = append(problems, fmt.Sprintf("ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer, got %d", s.AccessTokenExpireMinutes))
	}
	if s.DatabaseURL != "" {
		if _, err := driverForDSN(s.DatabaseURL); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if s.Environment == EnvProduction && s.SecretKey == DefaultSecretKey {
		problems = append(problems, "SECRET_KEY must be changed from its default value in production")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DatabaseDSN returns the effective database connection string. DATABASE_URL
// wins when set; otherwise production assembles a PostgreSQL URL from the
// POSTGRES_* fields and development falls back to a local SQLite file.
func (s *Settings) DatabaseDSN() string {
	if s.DatabaseURL != "" {
		return s.DatabaseURL
	}
	if s.Environment == EnvProduction {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			s.PostgresUser, s.PostgresPassword, s.PostgresHost, s.PostgresPort, s.PostgresDB)
	}
	return "sqlite://./blog.db"
}

// Driver returns the database/sql driver name for the effective DSN.
func (s *Settings) Driver() string {
	driver, err := driverForDSN(s.DatabaseDSN())
	if err != nil {
		// Unreachable after Validate; keep the development default.
		return "sqlite3"
	}
	return driver
}

// Addr returns the host:port the HTTP server binds to.
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func driverForDSN(dsn string) (string, error) {
	scheme, _, found := strings.Cut(dsn, "://")
	if !found {
		return "", fmt.Errorf("DATABASE_URL must use a scheme, got %q", dsn)
	}
	switch scheme {
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "postgres", "postgresql":
		return "postgres", nil
	default:
		return "", fmt.Errorf("DATABASE_URL scheme %q is not supported (use sqlite:// or postgres://)", scheme)
	}
}
