package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Store    StoreConfig
	JWT      JWTConfig
	Snapshot SnapshotConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

// DSN builds a keyword/value connection string for pgx.
func (c DatabaseConfig) DSN() string {
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode,
	)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// DocumentTTL bounds how long a cached store document may be served.
	DocumentTTL time.Duration
}

// Enabled reports whether a Redis host is configured. Without one the
// caches are bypassed.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type StoreConfig struct {
	MaxBatch       int
	Parallelism    int
	RetryAttempts  int
	RetryInitial   time.Duration
	RetryMax       time.Duration
	MigrationsPath string
}

type JWTConfig struct {
	AccessSecret string
	Issuer       string
}

type SnapshotConfig struct {
	// Cron is a robfig/cron spec such as "@every 5m". Empty disables the
	// background refresh.
	Cron string
	TTL  time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var errInvalidEnv = errors.New("invalid environment variables")

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
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optInt := func(key string, def int) int {
		v := opt(key)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			invalid = append(invalid, key)
			return def
		}
		return n
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := opt(key)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:        opt("REDIS_HOST"),
		Port:        opt("REDIS_PORT"),
		Password:    opt("REDIS_PASSWORD"),
		DB:          optInt("REDIS_DB", 0),
		DocumentTTL: optDuration("REDIS_DOCUMENT_TTL", 5*time.Minute),
	}
	if cfg.Redis.Port == "" {
		cfg.Redis.Port = "6379"
	}

	cfg.Store = StoreConfig{
		MaxBatch:       optInt("STORE_MAX_BATCH", 10),
		Parallelism:    optInt("STORE_PARALLELISM", 4),
		RetryAttempts:  optInt("STORE_RETRY_ATTEMPTS", 3),
		RetryInitial:   optDuration("STORE_RETRY_INITIAL", 100*time.Millisecond),
		RetryMax:       optDuration("STORE_RETRY_MAX", 2*time.Second),
		MigrationsPath: opt("MIGRATIONS_PATH"),
	}
	if cfg.Store.MaxBatch == 0 {
		invalid = append(invalid, "STORE_MAX_BATCH")
	}

	cfg.JWT = JWTConfig{
		AccessSecret: req("JWT_ACCESS_SECRET"),
		Issuer:       opt("JWT_ISSUER"),
	}

	cfg.Snapshot = SnapshotConfig{
		Cron: opt("SNAPSHOT_CRON"),
		TTL:  optDuration("SNAPSHOT_TTL", 10*time.Minute),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
