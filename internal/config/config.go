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
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Queue   QueueConfig
	Pricing PricingConfig
}

// PricingConfig holds engine-adjacent settings that vary per deployment.
type PricingConfig struct {
	DefaultCategory string `mapstructure:"default_category"`
	ExportPrefix    string `mapstructure:"export_prefix"`
}

// QueueConfig holds recalculation queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
	BatchSize        int `mapstructure:"batch_size"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
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

// JWTConfig holds verification settings for tokens issued by the identity
// service.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for export uploads.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the SELLBRIDGE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SELLBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "sellbridge")
	v.SetDefault("db.password", "sellbridge_secret")
	v.SetDefault("db.name", "sellbridge_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "sellbridge")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "sellbridge-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 5)
	v.SetDefault("queue.batch_size", 20)

	// Pricing defaults
	v.SetDefault("pricing.default_category", "general")
	v.SetDefault("pricing.export_prefix", "calculations")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "SELLBRIDGE_SERVER_PORT",
		"server.read_timeout":      "SELLBRIDGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "SELLBRIDGE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "SELLBRIDGE_SERVER_ENVIRONMENT",
		"db.host":                  "SELLBRIDGE_DB_HOST",
		"db.port":                  "SELLBRIDGE_DB_PORT",
		"db.user":                  "SELLBRIDGE_DB_USER",
		"db.password":              "SELLBRIDGE_DB_PASSWORD",
		"db.name":                  "SELLBRIDGE_DB_NAME",
		"db.sslmode":               "SELLBRIDGE_DB_SSLMODE",
		"db.max_open":              "SELLBRIDGE_DB_MAX_OPEN",
		"db.max_idle":              "SELLBRIDGE_DB_MAX_IDLE",
		"jwt.secret":               "SELLBRIDGE_JWT_SECRET",
		"jwt.issuer":               "SELLBRIDGE_JWT_ISSUER",
		"s3.region":                "SELLBRIDGE_S3_REGION",
		"s3.bucket":                "SELLBRIDGE_S3_BUCKET",
		"s3.endpoint":              "SELLBRIDGE_S3_ENDPOINT",
		"s3.access_key":            "SELLBRIDGE_S3_ACCESS_KEY",
		"s3.secret_key":            "SELLBRIDGE_S3_SECRET_KEY",
		"s3.presign_expiry":        "SELLBRIDGE_S3_PRESIGN_EXPIRY",
		"log.level":                "SELLBRIDGE_LOG_LEVEL",
		"log.format":               "SELLBRIDGE_LOG_FORMAT",
		"cors.allowed_origins":     "SELLBRIDGE_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs": "SELLBRIDGE_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":        "SELLBRIDGE_QUEUE_MAX_RETRIES",
		"queue.concurrency":        "SELLBRIDGE_QUEUE_CONCURRENCY",
		"queue.batch_size":         "SELLBRIDGE_QUEUE_BATCH_SIZE",
		"pricing.default_category": "SELLBRIDGE_PRICING_DEFAULT_CATEGORY",
		"pricing.export_prefix":    "SELLBRIDGE_PRICING_EXPORT_PREFIX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SELLBRIDGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SELLBRIDGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
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
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
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

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
		BatchSize:        v.GetInt("queue.batch_size"),
	}

	cfg.Pricing = PricingConfig{
		DefaultCategory: v.GetString("pricing.default_category"),
		ExportPrefix:    v.GetString("pricing.export_prefix"),
	}

	return cfg, nil
}
