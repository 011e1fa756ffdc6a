package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"

	TokenStrategyJWT    = "jwt"
	TokenStrategyPaseto = "paseto"

	HasherArgon2id = "argon2id"
	HasherBcrypt   = "bcrypt"
)

// minJWTSecretLen is the shortest HMAC secret accepted for HS256 signing.
const minJWTSecretLen = 16

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string
	Env             string // dev or prod
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustedOrigins  []string // CORS allowed origins
}

type DatabaseConfig struct {
	Driver      string // sqlite, postgres or pgx
	DSN         string // overrides everything below when set
	SQLitePath  string
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Addr     string // empty disables Redis
	Password string
	DB       int
}

type AuthConfig struct {
	TokenStrategy  string
	JWTSecret      []byte
	PasetoKey      []byte // must be 32 bytes for v4.local
	TokenTTL       time.Duration
	PasswordHasher string
}

type RateLimitConfig struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			Env:             getEnv("APP_ENV", "dev"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			TrustedOrigins:  getSliceEnv("CORS_ORIGIN", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		Database: loadDatabase(),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			TokenStrategy:  strings.ToLower(getEnv("TOKEN_STRATEGY", TokenStrategyJWT)),
			JWTSecret:      []byte(getEnv("JWT_SECRET", "")),
			PasetoKey:      []byte(getEnv("PASETO_KEY", "")),
			TokenTTL:       getDurationEnv("TOKEN_TTL", 7*24*time.Hour),
			PasswordHasher: strings.ToLower(getEnv("PASSWORD_HASHER", HasherArgon2id)),
		},
		RateLimit: RateLimitConfig{
			Enabled:     getBoolEnv("RATE_LIMIT_ENABLED", true),
			MaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
			Window:      time.Duration(getIntEnv("RATE_LIMIT_WINDOW_MS", 900000)) * time.Millisecond,
		},
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Auth.Validate(); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.MaxRequests <= 0 || cfg.RateLimit.Window <= 0) {
		return nil, fmt.Errorf("RATE_LIMIT_MAX_REQUESTS and RATE_LIMIT_WINDOW_MS must be positive")
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings. Used by tooling that
// never issues tokens, so auth secrets are not required.
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load()

	cfg := loadDatabase()
	if err := cfg.Validate(); err != nil {
		return DatabaseConfig{}, err
	}
	return cfg, nil
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		Driver:      strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DSN:         getEnv("DB_DSN", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/friend.db"),
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        getEnv("DB_PORT", "5432"),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "friend"),
		SSLMode:     getEnv("DB_SSLMODE", "disable"),
		AutoMigrate: getBoolEnv("DB_AUTO_MIGRATE", true),
	}
}

// Validate checks the driver name.
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres, DriverPgx:
		return nil
	default:
		return fmt.Errorf("DB_DRIVER must be one of sqlite, postgres, pgx, got %q", c.Driver)
	}
}

// ConnectionString returns the DSN handed to database/sql.
func (c *DatabaseConfig) ConnectionString() string {
	if c.DSN != "" {
		return c.DSN
	}

	if c.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.SQLitePath)
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// UsesSQLiteFile reports whether the store is a SQLite file whose
// directory has to exist before opening.
func (c *DatabaseConfig) UsesSQLiteFile() bool {
	return c.Driver == DriverSQLite && c.DSN == ""
}

// Validate checks that the configured token strategy has usable key material.
func (c *AuthConfig) Validate() error {
	switch c.TokenStrategy {
	case TokenStrategyJWT:
		if len(c.JWTSecret) < minJWTSecretLen {
			return fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d", minJWTSecretLen, len(c.JWTSecret))
		}
	case TokenStrategyPaseto:
		if len(c.PasetoKey) != 32 {
			return fmt.Errorf("PASETO_KEY must be exactly 32 bytes, got %d", len(c.PasetoKey))
		}
	default:
		return fmt.Errorf("TOKEN_STRATEGY must be jwt or paseto, got %q", c.TokenStrategy)
	}

	switch c.PasswordHasher {
	case HasherArgon2id, HasherBcrypt:
	default:
		return fmt.Errorf("PASSWORD_HASHER must be argon2id or bcrypt, got %q", c.PasswordHasher)
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	return nil
}

// Enabled reports whether a Redis address was configured
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// IsDevelopment returns true if the environment is set to dev
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// getDurationEnv reads a whole number of seconds.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
