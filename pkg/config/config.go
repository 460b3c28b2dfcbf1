package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream    UpstreamConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	Cache       CacheConfig
	Audit       AuditConfig
	Complaints  ComplaintsConfig
	Reports     ReportsConfig
	Diagnostics DiagnosticsConfig
}

// UpstreamConfig points the gateway at the legacy academy REST API.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig tunes reference-data caching.
type CacheConfig struct {
	Enabled      bool
	ReferenceTTL time.Duration
}

// AuditConfig toggles persistence of proxied mutations.
type AuditConfig struct {
	Enabled bool
}

// ComplaintsConfig carries complaint submission policy.
type ComplaintsConfig struct {
	MinDescriptionLength int
	FallbackStudentID    string
	MaxAttachmentBytes   int64
}

// ReportsConfig toggles complaint report exports.
type ReportsConfig struct {
	Enabled bool
}

// DiagnosticsConfig gates the upstream probing endpoints.
type DiagnosticsConfig struct {
	Enabled      bool
	ProbeTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled:      v.GetBool("ENABLE_CACHE"),
		ReferenceTTL: parseDuration(v.GetString("CACHE_REFERENCE_TTL"), 10*time.Minute),
	}

	cfg.Audit = AuditConfig{
		Enabled: v.GetBool("ENABLE_AUDIT"),
	}

	minDesc := v.GetInt("COMPLAINT_MIN_DESCRIPTION")
	if minDesc <= 0 {
		minDesc = 10
	}
	maxAttachment := v.GetInt64("COMPLAINT_MAX_ATTACHMENT_SIZE")
	if maxAttachment <= 0 {
		maxAttachment = 5 * 1024 * 1024
	}
	cfg.Complaints = ComplaintsConfig{
		MinDescriptionLength: minDesc,
		FallbackStudentID:    v.GetString("COMPLAINT_FALLBACK_STUDENT_ID"),
		MaxAttachmentBytes:   maxAttachment,
	}

	cfg.Reports = ReportsConfig{
		Enabled: v.GetBool("ENABLE_REPORTS"),
	}

	cfg.Diagnostics = DiagnosticsConfig{
		Enabled:      v.GetBool("ENABLE_DIAGNOSTICS"),
		ProbeTimeout: parseDuration(v.GetString("DIAGNOSTICS_PROBE_TIMEOUT"), 5*time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:5000")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "academy_gateway")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_REFERENCE_TTL", "10m")

	v.SetDefault("ENABLE_AUDIT", false)

	v.SetDefault("COMPLAINT_MIN_DESCRIPTION", 10)
	v.SetDefault("COMPLAINT_FALLBACK_STUDENT_ID", "")
	v.SetDefault("COMPLAINT_MAX_ATTACHMENT_SIZE", 5*1024*1024)

	v.SetDefault("ENABLE_REPORTS", false)

	v.SetDefault("ENABLE_DIAGNOSTICS", false)
	v.SetDefault("DIAGNOSTICS_PROBE_TIMEOUT", "5s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
