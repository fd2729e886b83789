package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	Upstream   UpstreamConfig
	Extraction ExtractionConfig
	Session    SessionConfig
	S3         S3Config
	Email      EmailConfig
	Search     SearchConfig
	Log        LogConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings. The import audit store is
// disabled when Enabled is false.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds bearer token verification settings. Tokens are issued by
// the portfolio API; when Secret is empty the gateway only decodes them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// UpstreamConfig holds settings for the external portfolio API server.
type UpstreamConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ExtractionConfig holds settings for the parallel extraction dispatcher.
type ExtractionConfig struct {
	MaxFiles      int   `mapstructure:"max_files"`
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
	TimeoutSecs   int   `mapstructure:"timeout_secs"`
	Concurrency   int   `mapstructure:"concurrency"`
}

// FileTimeout returns the per-file extraction timeout.
func (e *ExtractionConfig) FileTimeout() time.Duration {
	if e.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(e.TimeoutSecs) * time.Second
}

// SessionConfig holds import session retention settings.
type SessionConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	MaxSessions int           `mapstructure:"max_sessions"`
}

// S3Config holds AWS S3 settings for archiving uploaded screenshots.
// Archiving is disabled when Bucket is empty.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds import confirmation delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// SearchConfig holds fuzzy lookup settings.
type SearchConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the FOLIOGATE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FOLIOGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.enabled", true)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "foliogate")
	v.SetDefault("db.password", "foliogate_secret")
	v.SetDefault("db.name", "foliogate_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// JWT defaults
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")

	// Upstream defaults
	v.SetDefault("upstream.base_url", "http://localhost:8000/api")
	v.SetDefault("upstream.timeout_secs", 30)

	// Extraction defaults
	v.SetDefault("extraction.max_files", 10)
	v.SetDefault("extraction.max_file_size_mb", 10)
	v.SetDefault("extraction.timeout_secs", 60)
	v.SetDefault("extraction.concurrency", 0)

	// Session defaults
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("session.max_sessions", 1000)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@foliogate.local")
	v.SetDefault("email.from_name", "Foliogate")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Search defaults
	v.SetDefault("search.catalog_path", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "FOLIOGATE_SERVER_PORT",
		"server.read_timeout":         "FOLIOGATE_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "FOLIOGATE_SERVER_WRITE_TIMEOUT",
		"server.environment":          "FOLIOGATE_SERVER_ENVIRONMENT",
		"db.enabled":                  "FOLIOGATE_DB_ENABLED",
		"db.host":                     "FOLIOGATE_DB_HOST",
		"db.port":                     "FOLIOGATE_DB_PORT",
		"db.user":                     "FOLIOGATE_DB_USER",
		"db.password":                 "FOLIOGATE_DB_PASSWORD",
		"db.name":                     "FOLIOGATE_DB_NAME",
		"db.sslmode":                  "FOLIOGATE_DB_SSLMODE",
		"db.max_open":                 "FOLIOGATE_DB_MAX_OPEN",
		"db.max_idle":                 "FOLIOGATE_DB_MAX_IDLE",
		"jwt.secret":                  "FOLIOGATE_JWT_SECRET",
		"jwt.issuer":                  "FOLIOGATE_JWT_ISSUER",
		"upstream.base_url":           "FOLIOGATE_UPSTREAM_BASE_URL",
		"upstream.timeout_secs":       "FOLIOGATE_UPSTREAM_TIMEOUT_SECS",
		"extraction.max_files":        "FOLIOGATE_EXTRACTION_MAX_FILES",
		"extraction.max_file_size_mb": "FOLIOGATE_EXTRACTION_MAX_FILE_SIZE_MB",
		"extraction.timeout_secs":     "FOLIOGATE_EXTRACTION_TIMEOUT_SECS",
		"extraction.concurrency":      "FOLIOGATE_EXTRACTION_CONCURRENCY",
		"session.ttl":                 "FOLIOGATE_SESSION_TTL",
		"session.max_sessions":        "FOLIOGATE_SESSION_MAX_SESSIONS",
		"s3.region":                   "FOLIOGATE_S3_REGION",
		"s3.bucket":                   "FOLIOGATE_S3_BUCKET",
		"s3.endpoint":                 "FOLIOGATE_S3_ENDPOINT",
		"s3.access_key":               "FOLIOGATE_S3_ACCESS_KEY",
		"s3.secret_key":               "FOLIOGATE_S3_SECRET_KEY",
		"s3.presign_expiry":           "FOLIOGATE_S3_PRESIGN_EXPIRY",
		"email.provider":              "FOLIOGATE_EMAIL_PROVIDER",
		"email.region":                "FOLIOGATE_EMAIL_REGION",
		"email.from_address":          "FOLIOGATE_EMAIL_FROM_ADDRESS",
		"email.from_name":             "FOLIOGATE_EMAIL_FROM_NAME",
		"email.frontend_url":          "FOLIOGATE_EMAIL_FRONTEND_URL",
		"search.catalog_path":         "FOLIOGATE_SEARCH_CATALOG_PATH",
		"log.level":                   "FOLIOGATE_LOG_LEVEL",
		"log.format":                  "FOLIOGATE_LOG_FORMAT",
		"cors.allowed_origins":        "FOLIOGATE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FOLIOGATE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FOLIOGATE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.Upstream = UpstreamConfig{
		BaseURL:     strings.TrimRight(v.GetString("upstream.base_url"), "/"),
		TimeoutSecs: v.GetInt("upstream.timeout_secs"),
	}
	cfg.Extraction = ExtractionConfig{
		MaxFiles:      v.GetInt("extraction.max_files"),
		MaxFileSizeMB: v.GetInt64("extraction.max_file_size_mb"),
		TimeoutSecs:   v.GetInt("extraction.timeout_secs"),
		Concurrency:   v.GetInt("extraction.concurrency"),
	}
	cfg.Session = SessionConfig{
		TTL:         v.GetDuration("session.ttl"),
		MaxSessions: v.GetInt("session.max_sessions"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Search = SearchConfig{
		CatalogPath: v.GetString("search.catalog_path"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if cfg.Extraction.MaxFiles <= 0 {
		return nil, fmt.Errorf("extraction.max_files must be positive, got %d", cfg.Extraction.MaxFiles)
	}

	return cfg, nil
}
