package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/oggyb/smsdev/internal/dateformat"
)

const (
	StoragePostgres = "postgres"
	StorageBolt     = "bolt"
)

type Config struct {
	App struct {
		Name string
		Env  string
	}

	API struct {
		Host string
		Port string
	}

	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	// Storage selects the inbox store: "postgres" or "bolt".
	Storage struct {
		Driver   string
		BoltPath string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	SMSDev struct {
		BaseURL          string
		APIKey           string
		Timeout          time.Duration
		DateFormat       string
		NumberValidation bool
		TimeZone         string
	}

	Poller struct {
		Interval     time.Duration
		BatchTimeout time.Duration
	}

	Cache struct {
		BalanceTTL time.Duration
		SeenTTL    time.Duration
	}
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.Name = getEnv("APP_NAME", "smsdev-relay")
	cfg.App.Env = getEnv("APP_ENV", "development")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", "8080")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "db")
	cfg.DB.Port = getInt("DB_PORT", 5432)
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "123456")
	cfg.DB.Name = getEnv("DB_NAME", "db_smsdev")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Storage
	cfg.Storage.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres))
	cfg.Storage.BoltPath = getEnv("BOLT_PATH", "smsdev-inbox.db")

	// Redis
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "redis:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// SmsDev gateway. An empty key is left for the client to resolve.
	cfg.SMSDev.BaseURL = getEnv("SMSDEV_BASE_URL", "https://api.smsdev.com.br/v1")
	cfg.SMSDev.APIKey = getEnv("SMSDEV_API_KEY", "")
	cfg.SMSDev.Timeout = getDuration("SMSDEV_TIMEOUT", 10*time.Second)
	cfg.SMSDev.DateFormat = getEnv("SMSDEV_DATE_FORMAT", dateformat.Unix)
	cfg.SMSDev.NumberValidation = getBool("SMSDEV_NUMBER_VALIDATION", true)
	cfg.SMSDev.TimeZone = getEnv("SMSDEV_TIMEZONE", "")

	// Inbox poller
	cfg.Poller.Interval = getDuration("POLLER_INTERVAL", time.Minute)
	cfg.Poller.BatchTimeout = getDuration("POLLER_BATCH_TIMEOUT", 30*time.Second)

	// Cache
	cfg.Cache.BalanceTTL = getDuration("BALANCE_CACHE_TTL", 5*time.Minute)
	cfg.Cache.SeenTTL = getDuration("INBOX_SEEN_TTL", 7*24*time.Hour)

	return cfg
}

// Location resolves SMSDEV_TIMEZONE. Empty means the process-local zone; an
// unknown name is an error so a typo cannot silently shift every date.
func (c *Config) Location() (*time.Location, error) {
	if c.SMSDev.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.SMSDev.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid SMSDEV_TIMEZONE %q: %w", c.SMSDev.TimeZone, err)
	}
	return loc, nil
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return isTruthy(v)
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}
