package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Session  SessionConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Upload   UploadConfig
	Gateway  APIConfig
	Accounts APIConfig
	Identity IdentityConfig
	Cache    CacheConfig
	Features Features

	// SubmissionPeriodsFile points at a YAML file of reporting periods.
	// Built-in defaults are used when empty.
	SubmissionPeriodsFile string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string
	LogLevel slog.Level
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// SessionBackend selects where workflow sessions are persisted.
type SessionBackend string

const (
	SessionBackendMemory   SessionBackend = "memory"
	SessionBackendRedis    SessionBackend = "redis"
	SessionBackendPostgres SessionBackend = "postgres"
)

// SessionConfig configures the workflow session cookie and store.
type SessionConfig struct {
	Backend      SessionBackend
	CookieName   string
	CookieSecure bool
	IdleTimeout  time.Duration
}

// RedisConfig configures the shared Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the optional Postgres session backend.
type PostgresConfig struct {
	URL      string
	MaxConns int32
}

// UploadConfig bounds the file upload pipeline.
type UploadConfig struct {
	// FileUploadLimitInBytes is exclusive: files must be strictly smaller.
	FileUploadLimitInBytes int64
}

// APIConfig configures a downstream HTTP API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	// Token is the bearer token presented to the API. Empty disables the header.
	Token string
}

// IdentityConfig configures validation of the signed identity token.
type IdentityConfig struct {
	SigningKey string
	CookieName string
}

// CacheConfig toggles and tunes the compliance scheme summary cache.
type CacheConfig struct {
	UseSummaryCache    bool
	SlidingExpiration  time.Duration
	AbsoluteExpiration time.Duration
}

// Features holds feature toggles.
type Features struct {
	// PomResubmission folds the regulator decision into submission status.
	PomResubmission bool
}

// FromEnv builds a Config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables take precedence.
func FromEnv() Config {
	_ = godotenv.Load()

	signingKey := os.Getenv("IDENTITY_SIGNING_KEY")
	if signingKey == "" {
		// Development default; must be overridden in production
		signingKey = "dev-identity-key-change-in-production"
	}

	return Config{
		Server: Server{
			Addr:            envString("SCHEMEREG_ADDR", ":8080"),
			LogLevel:        envLevel("LOG_LEVEL", slog.LevelInfo),
			ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Backend:      SessionBackend(envString("SESSION_BACKEND", string(SessionBackendMemory))),
			CookieName:   envString("SESSION_COOKIE_NAME", ".schemereg.session"),
			CookieSecure: envBool("SESSION_COOKIE_SECURE", true),
			IdleTimeout:  envDuration("SESSION_IDLE_TIMEOUT", 20*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL:      os.Getenv("DATABASE_URL"),
			MaxConns: int32(envInt("DATABASE_MAX_CONNS", 10)),
		},
		Upload: UploadConfig{
			FileUploadLimitInBytes: int64(envInt("FILE_UPLOAD_LIMIT_BYTES", 10*1024*1024)),
		},
		Gateway: APIConfig{
			BaseURL: strings.TrimRight(envString("WEB_API_BASE_URL", "http://localhost:5291"), "/"),
			Timeout: envDuration("WEB_API_TIMEOUT", 30*time.Second),
			Token:   os.Getenv("WEB_API_TOKEN"),
		},
		Accounts: APIConfig{
			BaseURL: strings.TrimRight(envString("FACADE_API_BASE_URL", "http://localhost:7253"), "/"),
			Timeout: envDuration("FACADE_API_TIMEOUT", 30*time.Second),
			Token:   os.Getenv("FACADE_API_TOKEN"),
		},
		Identity: IdentityConfig{
			SigningKey: signingKey,
			CookieName: envString("IDENTITY_COOKIE_NAME", ".schemereg.auth"),
		},
		Cache: CacheConfig{
			UseSummaryCache:    envBool("USE_SUMMARY_CACHE", true),
			SlidingExpiration:  envDuration("SUMMARY_CACHE_SLIDING", 5*time.Minute),
			AbsoluteExpiration: envDuration("SUMMARY_CACHE_ABSOLUTE", 30*time.Minute),
		},
		Features: Features{
			PomResubmission: envBool("FEATURE_POM_RESUBMISSION", false),
		},
		SubmissionPeriodsFile: os.Getenv("SUBMISSION_PERIODS_FILE"),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envLevel(key string, def slog.Level) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(os.Getenv(key))); err != nil {
		return def
	}
	return lvl
}
