package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Development-only secrets; Load refuses them when APP_ENV=production
const (
	defaultJWTSigningKey = "defaultsecretkey"
	defaultSessionKey    = "change-me-session-key-32-bytes!!"
)

// DBConfig holds database configuration
type DBConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Params          string
	Path            string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the connection string for the configured driver
func (c *DBConfig) GetDSN() string {
	switch c.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s",
			c.User, c.Password, c.Host, c.Port, c.DBName, c.Params)
	case DriverSQLite:
		return c.Path
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
	CookieName      string
}

// SessionConfig holds the cart cookie session configuration
type SessionConfig struct {
	Key          string
	CookieSecure bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds the Prometheus scrape endpoint configuration
type MetricsConfig struct {
	Path string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	DB          DBConfig
	Server      ServerConfig
	JWT         JWTConfig
	Session     SessionConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

// Load loads configuration from an optional .env file and environment variables
func Load(serviceName string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	driver := getEnv("DB_DRIVER", DriverPostgres)
	defaultPort := "5432"
	if driver == DriverMySQL {
		defaultPort = "3306"
	}

	config := &Config{
		ServiceName: serviceName,
		DB: DBConfig{
			Driver:          driver,
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", defaultPort),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", serviceName),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			Params:          getEnv("DB_PARAMS", "charset=utf8mb4&parseTime=True&loc=Local"),
			Path:            getEnv("DB_PATH", serviceName+".db"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", defaultJWTSigningKey),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
			CookieName:      getEnv("JWT_COOKIE_NAME", "storefront_token"),
		},
		Session: SessionConfig{
			Key:          getEnv("SESSION_KEY", defaultSessionKey),
			CookieSecure: getEnvAsBool("COOKIE_SECURE", false),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Path: getEnv("METRICS_PATH", "/metrics"),
		},
	}

	switch config.DB.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.DB.Driver)
	}

	if !strings.HasPrefix(config.Metrics.Path, "/") {
		return nil, fmt.Errorf("METRICS_PATH must start with /")
	}

	if len(config.Session.Key) < 32 {
		return nil, fmt.Errorf("SESSION_KEY must be at least 32 bytes")
	}

	if config.JWT.SigningKey == "" {
		return nil, fmt.Errorf("JWT_SIGNING_KEY must not be empty")
	}

	if config.IsProduction() {
		if config.JWT.SigningKey == defaultJWTSigningKey {
			return nil, fmt.Errorf("JWT_SIGNING_KEY must be set in production")
		}
		if config.Session.Key == defaultSessionKey {
			return nil, fmt.Errorf("SESSION_KEY must be set in production")
		}
	}

	return config, nil
}

// IsProduction reports whether the service runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LogConfig returns the configuration as zap fields
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("db_driver", c.DB.Driver),
		zap.String("db_host", c.DB.Host),
		zap.String("db_port", c.DB.Port),
		zap.String("db_user", c.DB.User),
		zap.String("db_name", c.DB.DBName),
		zap.String("server_port", c.Server.Port),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	switch getEnv(key, "") {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
