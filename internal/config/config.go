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
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	S3       S3Config
	Log      LogConfig
	OCR      OCRConfig
	Pipeline PipelineConfig
	CORS     CORSConfig
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OCRConfig holds tesseract fallback OCR settings.
type OCRConfig struct {
	Language    string `mapstructure:"language"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// PipelineConfig holds extraction pipeline settings.
type PipelineConfig struct {
	PageConcurrency int `mapstructure:"page_concurrency"`
	MaxPages        int `mapstructure:"max_pages"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the DOCUPARSE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCUPARSE")
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
	v.SetDefault("db.user", "docuparse")
	v.SetDefault("db.password", "docuparse_secret")
	v.SetDefault("db.name", "docuparse_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.issuer", "docuparse")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docuparse-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// OCR defaults
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.timeout_secs", 30)

	// Pipeline defaults
	v.SetDefault("pipeline.page_concurrency", 4)
	v.SetDefault("pipeline.max_pages", 50)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "DOCUPARSE_SERVER_PORT",
		"server.read_timeout":       "DOCUPARSE_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "DOCUPARSE_SERVER_WRITE_TIMEOUT",
		"server.environment":        "DOCUPARSE_SERVER_ENVIRONMENT",
		"db.host":                   "DOCUPARSE_DB_HOST",
		"db.port":                   "DOCUPARSE_DB_PORT",
		"db.user":                   "DOCUPARSE_DB_USER",
		"db.password":               "DOCUPARSE_DB_PASSWORD",
		"db.name":                   "DOCUPARSE_DB_NAME",
		"db.sslmode":                "DOCUPARSE_DB_SSLMODE",
		"db.max_open":               "DOCUPARSE_DB_MAX_OPEN",
		"db.max_idle":               "DOCUPARSE_DB_MAX_IDLE",
		"jwt.secret":                "DOCUPARSE_JWT_SECRET",
		"jwt.access_expiry":         "DOCUPARSE_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                "DOCUPARSE_JWT_ISSUER",
		"s3.region":                 "DOCUPARSE_S3_REGION",
		"s3.bucket":                 "DOCUPARSE_S3_BUCKET",
		"s3.endpoint":               "DOCUPARSE_S3_ENDPOINT",
		"s3.access_key":             "DOCUPARSE_S3_ACCESS_KEY",
		"s3.secret_key":             "DOCUPARSE_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "DOCUPARSE_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "DOCUPARSE_S3_PRESIGN_EXPIRY",
		"log.level":                 "DOCUPARSE_LOG_LEVEL",
		"log.format":                "DOCUPARSE_LOG_FORMAT",
		"ocr.language":              "DOCUPARSE_OCR_LANGUAGE",
		"ocr.timeout_secs":          "DOCUPARSE_OCR_TIMEOUT_SECS",
		"pipeline.page_concurrency": "DOCUPARSE_PIPELINE_PAGE_CONCURRENCY",
		"pipeline.max_pages":        "DOCUPARSE_PIPELINE_MAX_PAGES",
		"cors.allowed_origins":      "DOCUPARSE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCUPARSE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCUPARSE_SERVER_PORT") == "" {
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
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		Language:    v.GetString("ocr.language"),
		TimeoutSecs: v.GetInt("ocr.timeout_secs"),
	}
	cfg.Pipeline = PipelineConfig{
		PageConcurrency: v.GetInt("pipeline.page_concurrency"),
		MaxPages:        v.GetInt("pipeline.max_pages"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: strings.Split(v.GetString("cors.allowed_origins"), ","),
	}

	return cfg, nil
}
