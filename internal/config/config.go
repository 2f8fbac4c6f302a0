package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Dashboard DashboardConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// DashboardConfig describes the store being reported on and the operator
// allowed to log in.
type DashboardConfig struct {
	Username        string
	PasswordHash    string
	StoreID         int64
	ExcludedSellers []string
	BuffetItemName  string
	SlowReport      time.Duration
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	config := &Config{
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
		},
		JWT: JWTConfig{
			Secret:           v.GetString("JWT_SECRET_KEY"),
			AccessExpiration: v.GetString("JWT_ACCESS_EXPIRATION_TIME"),
		},
		App: AppConfig{
			Port:               v.GetInt("APP_PORT"),
			Env:                v.GetString("APP_ENV"),
			LogLevel:           v.GetString("LOG_LEVEL"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Dashboard: DashboardConfig{
			Username:        v.GetString("DASHBOARD_USERNAME"),
			PasswordHash:    v.GetString("DASHBOARD_PASSWORD_HASH"),
			StoreID:         v.GetInt64("STORE_ID"),
			ExcludedSellers: splitList(v.GetString("EXCLUDED_SELLERS")),
			BuffetItemName:  v.GetString("BUFFET_ITEM_NAME"),
			SlowReport:      time.Duration(v.GetInt("REPORT_SLOW_MS")) * time.Millisecond,
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "pos")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)

	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_ACCESS_EXPIRATION_TIME", "12h")

	v.SetDefault("DASHBOARD_USERNAME", "admin")
	v.SetDefault("DASHBOARD_PASSWORD_HASH", "")
	v.SetDefault("STORE_ID", 467)
	v.SetDefault("EXCLUDED_SELLERS", "")
	v.SetDefault("BUFFET_ITEM_NAME", "self-service")
	v.SetDefault("REPORT_SLOW_MS", 500)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Dashboard.PasswordHash == "" {
		return fmt.Errorf("DASHBOARD_PASSWORD_HASH is required")
	}
	if c.Dashboard.StoreID <= 0 {
		return fmt.Errorf("STORE_ID must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:     c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// splitList never returns nil so the result can be bound as an empty array.
func splitList(value string) []string {
	result := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
