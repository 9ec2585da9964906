package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Price feeds.
const (
	FeedNone  = "none"
	FeedYahoo = "yahoo"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	CORS     CORSConfig     `toml:"cors"`
	Log      LogConfig      `toml:"log"`
	Prices   PriceConfig    `toml:"prices"`
	Redis    RedisConfig    `toml:"redis"`
	Backup   BackupConfig   `toml:"backup"`
	S3       S3Config       `toml:"s3"`
	Auth     AuthConfig     `toml:"auth"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `toml:"port"`
	Host string `toml:"host"`
	Addr string `toml:"-"` // Combined host:port for convenience
}

// DatabaseConfig selects the storage backend. Path is used by sqlite, URL by postgres.
type DatabaseConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	URL    string `toml:"url"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// PriceConfig controls market price retrieval.
type PriceConfig struct {
	Feed        string  `toml:"feed"`         // none or yahoo
	RefreshCron string  `toml:"refresh_cron"` // empty disables the scheduled refresh
	RateLimit   float64 `toml:"rate_limit"`   // requests per second against the feed
	Concurrency int     `toml:"concurrency"`
}

// RedisConfig configures the optional quote cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	TTL      time.Duration `toml:"ttl"`
}

// BackupConfig controls export encryption and scheduled backups.
type BackupConfig struct {
	Key  string `toml:"key"`  // fernet key; empty exports plain JSON
	Dir  string `toml:"dir"`  // local sink directory
	Cron string `toml:"cron"` // empty disables scheduled backups
}

// S3Config configures the object storage sink. An empty Bucket disables it.
type S3Config struct {
	Bucket         string `toml:"bucket"`
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// AuthConfig holds the key protecting maintenance endpoints.
type AuthConfig struct {
	InternalAPIKey string `toml:"internal_api_key"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: "5001",
			Host: "localhost",
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   "./data/investment_tracker.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Prices: PriceConfig{
			Feed:        FeedNone,
			RateLimit:   2,
			Concurrency: 4,
		},
		Redis: RedisConfig{
			TTL: 5 * time.Minute,
		},
		Backup: BackupConfig{
			Dir: "./data/backups",
		},
	}
}

// Load builds the configuration from defaults, an optional TOML file named by
// CONFIG_FILE, a .env file and finally the process environment. Later sources
// win.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Combine host and port
	cfg.Server.Addr = fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)

	cfg.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", cfg.Database.Driver))
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = splitList(origins)
	}

	cfg.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(getEnv("LOG_FORMAT", cfg.Log.Format))

	cfg.Prices.Feed = strings.ToLower(getEnv("PRICE_FEED", cfg.Prices.Feed))
	cfg.Prices.RefreshCron = getEnv("PRICE_REFRESH_CRON", cfg.Prices.RefreshCron)
	cfg.Prices.RateLimit = getEnvFloat("PRICE_RATE_LIMIT", cfg.Prices.RateLimit)
	cfg.Prices.Concurrency = getEnvInt("PRICE_CONCURRENCY", cfg.Prices.Concurrency)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.TTL = getEnvDuration("PRICE_CACHE_TTL", cfg.Redis.TTL)

	cfg.Backup.Key = getEnv("BACKUP_KEY", cfg.Backup.Key)
	cfg.Backup.Dir = getEnv("BACKUP_DIR", cfg.Backup.Dir)
	cfg.Backup.Cron = getEnv("BACKUP_CRON", cfg.Backup.Cron)

	cfg.S3.Bucket = getEnv("S3_BUCKET", cfg.S3.Bucket)
	cfg.S3.Region = getEnv("S3_REGION", cfg.S3.Region)
	cfg.S3.Endpoint = getEnv("S3_ENDPOINT", cfg.S3.Endpoint)
	cfg.S3.AccessKey = getEnv("S3_ACCESS_KEY", cfg.S3.AccessKey)
	cfg.S3.SecretKey = getEnv("S3_SECRET_KEY", cfg.S3.SecretKey)
	cfg.S3.ForcePathStyle = getEnvBool("S3_FORCE_PATH_STYLE", cfg.S3.ForcePathStyle)

	cfg.Auth.InternalAPIKey = getEnv("INTERNAL_API_KEY", cfg.Auth.InternalAPIKey)
}

// Validate checks the combinations Load cannot repair.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Prices.Feed {
	case FeedNone, FeedYahoo:
	default:
		return fmt.Errorf("unsupported PRICE_FEED %q", c.Prices.Feed)
	}

	if c.Prices.RateLimit <= 0 {
		return fmt.Errorf("PRICE_RATE_LIMIT must be positive")
	}
	if c.Prices.Concurrency <= 0 {
		return fmt.Errorf("PRICE_CONCURRENCY must be positive")
	}

	if c.S3.Bucket != "" && c.S3.Region == "" {
		return fmt.Errorf("S3_REGION is required when S3_BUCKET is set")
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
