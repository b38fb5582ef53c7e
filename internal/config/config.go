package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Bootstrap BootstrapConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	APIPrefix             string
	RequestTimeoutSeconds int
	CORSOrigins           string
	ReadBufferSize        int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	AccessSecret       string
	AccessTTL          time.Duration
	RefreshSecret      string
	RefreshTTL         time.Duration
	BcryptCost         int
	LoginRatePerSecond float64
	LoginBurst         int
	PermissionCacheTTL time.Duration
}

// BootstrapConfig drives first-run seeding.
type BootstrapConfig struct {
	ShouldInit   bool
	InitPassword string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	accessTTL, err := ParseDuration(getEnv("JWT_AC_EXPIRATION_TIME", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_AC_EXPIRATION_TIME: %w", err)
	}
	refreshTTL, err := ParseDuration(getEnv("JWT_RF_EXPIRATION_TIME", "7d"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_RF_EXPIRATION_TIME: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "job-board"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			APIPrefix:             strings.TrimRight(getEnv("API_PREFIX", "/api/v1"), "/"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSOrigins:           getEnv("CORS_ORIGINS", "http://localhost:3000"),
			ReadBufferSize:        getEnvAsInt("APP_READ_BUFFER_SIZE", 16*1024),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AccessSecret:       getEnv("JWT_AC_SECRET", "dev-access-secret"),
			AccessTTL:          accessTTL,
			RefreshSecret:      getEnv("JWT_RF_SECRET", "dev-refresh-secret"),
			RefreshTTL:         refreshTTL,
			BcryptCost:         getEnvAsInt("AUTH_BCRYPT_COST", 10),
			LoginRatePerSecond: getEnvAsFloat("AUTH_LOGIN_RATE_PER_SECOND", 1),
			LoginBurst:         getEnvAsInt("AUTH_LOGIN_BURST", 5),
			PermissionCacheTTL: time.Duration(getEnvAsInt("PERMISSION_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Bootstrap: BootstrapConfig{
			ShouldInit:   getEnvAsBool("SHOULD_INIT", false),
			InitPassword: os.Getenv("INIT_PASSWORD"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the auth core cannot run with.
func (c *Config) Validate() error {
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("JWT_AC_SECRET and JWT_RF_SECRET must differ")
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return fmt.Errorf("token expirations must be positive")
	}
	if c.Bootstrap.ShouldInit && c.Bootstrap.InitPassword == "" {
		return fmt.Errorf("INIT_PASSWORD is required when SHOULD_INIT is set")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ParseDuration accepts Go durations plus a whole-day suffix ("7d", "1d12h").
func ParseDuration(val string) (time.Duration, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, fmt.Errorf("empty duration")
	}
	days, rest, found := strings.Cut(val, "d")
	if !found {
		return time.ParseDuration(val)
	}
	n, err := strconv.Atoi(days)
	if err != nil {
		return 0, fmt.Errorf("invalid day count %q", days)
	}
	total := time.Duration(n) * 24 * time.Hour
	if rest == "" {
		return total, nil
	}
	extra, err := time.ParseDuration(rest)
	if err != nil {
		return 0, err
	}
	return total + extra, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
