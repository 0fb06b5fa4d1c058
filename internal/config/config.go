package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Store     StoreConfig
	Assistant AssistantConfig
}

type ServerConfig struct {
	AppEnv string
	Port   string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// StoreConfig selects the key-value backend the ledger persists into.
type StoreConfig struct {
	Driver     string // memory, sqlite, postgres, redis
	SQLitePath string
	Postgres   PostgresConfig
	Redis      RedisConfig
	SeedDemo   bool
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	TimeZone    string
}

// DSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (c PostgresConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.TimeZone,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type AssistantConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	RateLimit int // requests per minute per client, <= 0 disables limiting
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// LoadEnv reads the configuration from the process environment. Call
// godotenv.Load before it to pick up a local .env file.
func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "development"),
			Port:   getEnv("PORT", "3000"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "info"),
			Encoding: getEnv("LOGGER_ENCODING", "console"),
		},
		Store: StoreConfig{
			Driver:     getEnv("STORE_DRIVER", DriverSQLite),
			SQLitePath: getEnv("SQLITE_PATH", "warehouse.db"),
			Postgres: PostgresConfig{
				DatabaseURL: getEnv("DATABASE_URL", ""),
				Host:        getEnv("DB_HOST", "localhost"),
				Port:        getEnv("DB_PORT", "5432"),
				User:        getEnv("DB_USER", "postgres"),
				Password:    getEnv("DB_PASSWORD", ""),
				DBName:      getEnv("DB_NAME", "warehouse"),
				TimeZone:    getEnv("DB_TIMEZONE", "UTC"),
			},
			Redis: RedisConfig{
				Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
				Password: getEnv("REDIS_PASSWORD", ""),
				DB:       getEnvInt("REDIS_DB", 0),
				Prefix:   getEnv("REDIS_PREFIX", "warehouse"),
			},
			SeedDemo: getEnvBool("SEED_DEMO_DATA", true),
		},
		Assistant: AssistantConfig{
			APIKey:    getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Timeout:   getEnvDuration("ASSISTANT_TIMEOUT", 30*time.Second),
			RateLimit: getEnvInt("ASSISTANT_RATE_LIMIT", 20),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
