package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	LLM       LLMConfig       `yaml:"llm"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig holds PostgreSQL connection settings.
// An empty DSN runs the service without persistence: feedback is still
// generated but never attached to stored messages, and chat settings are
// unavailable.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// ApplicationName is reported to PostgreSQL and shows up in pg_stat_activity.
	ApplicationName string `yaml:"application_name" env:"DATABASE_APPLICATION_NAME" env-default:"langcoach-backend"`
	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool `yaml:"auto_migrate" env:"DATABASE_AUTO_MIGRATE" env-default:"true"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool { return d.DSN != "" }

// LLMConfig selects and tunes the text generation backend.
type LLMConfig struct {
	Provider        string        `yaml:"provider"          env:"LLM_PROVIDER"          env-default:"ollama"`
	Model           string        `yaml:"model"             env:"LLM_MODEL"             env-default:"llama3.1:8b"`
	BaseURL         string        `yaml:"base_url"          env:"LLM_BASE_URL"`
	APIKey          string        `yaml:"api_key"           env:"LLM_API_KEY"`
	Timeout         time.Duration `yaml:"timeout"           env:"LLM_TIMEOUT"           env-default:"60s"`
	MaxOutputTokens int           `yaml:"max_output_tokens" env:"LLM_MAX_OUTPUT_TOKENS" env-default:"1500"`
	Temperature     float64       `yaml:"temperature"       env:"LLM_TEMPERATURE"       env-default:"0.3"`
}

// FeedbackConfig holds feedback analysis limits and defaults.
type FeedbackConfig struct {
	MaxTextLength    int    `yaml:"max_text_length"    env:"FEEDBACK_MAX_TEXT_LENGTH"    env-default:"5000"`
	MaxContextLength int    `yaml:"max_context_length" env:"FEEDBACK_MAX_CONTEXT_LENGTH" env-default:"2000"`
	DefaultLanguage  string `yaml:"default_language"   env:"FEEDBACK_DEFAULT_LANGUAGE"   env-default:"en"`
	DefaultLevel     string `yaml:"default_level"      env:"FEEDBACK_DEFAULT_LEVEL"      env-default:"intermediate"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP limits for the feedback endpoints.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	FeedbackPerMin  int           `yaml:"feedback_per_min" env:"RATE_LIMIT_FEEDBACK_PER_MIN" env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// MetricsConfig holds Prometheus exporter settings.
type MetricsConfig struct {
	Enabled     bool   `yaml:"enabled"      env:"METRICS_ENABLED"      env-default:"true"`
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME" env-default:"langcoach-backend"`
}
