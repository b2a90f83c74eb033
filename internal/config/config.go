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
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	API    APIConfig
	S3     S3Config
	CORS   CORSConfig
	Log    LogConfig
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
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	MaxAccessExpiry    time.Duration `mapstructure:"max_access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	// PerPage is the module-wide default page size for paginated endpoints.
	PerPage int `mapstructure:"per_page"`
}

// S3Config holds settings for the thumbnail object store.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Enabled reports whether a thumbnail bucket is configured.
func (s *S3Config) Enabled() bool { return s.Bucket != "" }

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the REPONO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REPONO")
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
	v.SetDefault("db.user", "repono")
	v.SetDefault("db.password", "repono_secret")
	v.SetDefault("db.name", "repono_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "1h")
	v.SetDefault("jwt.max_access_expiry", "24h")
	v.SetDefault("jwt.refresh_expiry", "336h")
	v.SetDefault("jwt.issuer", "repono")

	// API defaults
	v.SetDefault("api.per_page", 10)

	// S3 defaults (thumbnail store disabled unless a bucket is set)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "REPONO_SERVER_PORT",
		"server.read_timeout":   "REPONO_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "REPONO_SERVER_WRITE_TIMEOUT",
		"server.environment":    "REPONO_SERVER_ENVIRONMENT",
		"db.host":               "REPONO_DB_HOST",
		"db.port":               "REPONO_DB_PORT",
		"db.user":               "REPONO_DB_USER",
		"db.password":           "REPONO_DB_PASSWORD",
		"db.name":               "REPONO_DB_NAME",
		"db.sslmode":            "REPONO_DB_SSLMODE",
		"db.max_open":           "REPONO_DB_MAX_OPEN",
		"db.max_idle":           "REPONO_DB_MAX_IDLE",
		"jwt.secret":            "REPONO_JWT_SECRET",
		"jwt.access_expiry":     "REPONO_JWT_ACCESS_EXPIRY",
		"jwt.max_access_expiry": "REPONO_JWT_MAX_ACCESS_EXPIRY",
		"jwt.refresh_expiry":    "REPONO_JWT_REFRESH_EXPIRY",
		"jwt.issuer":            "REPONO_JWT_ISSUER",
		"api.per_page":          "REPONO_API_PER_PAGE",
		"s3.region":             "REPONO_S3_REGION",
		"s3.bucket":             "REPONO_S3_BUCKET",
		"s3.endpoint":           "REPONO_S3_ENDPOINT",
		"s3.access_key":         "REPONO_S3_ACCESS_KEY",
		"s3.secret_key":         "REPONO_S3_SECRET_KEY",
		"log.level":             "REPONO_LOG_LEVEL",
		"log.format":            "REPONO_LOG_FORMAT",
		"cors.allowed_origins":  "REPONO_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if REPONO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("REPONO_SERVER_PORT") == "" {
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
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		MaxAccessExpiry:    v.GetDuration("jwt.max_access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.API = APIConfig{
		PerPage: v.GetInt("api.per_page"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
