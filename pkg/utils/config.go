package utils

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Broker    BrokerConfig
	Storage   StorageConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig controls the response cache placed in front of public listings.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// RateLimitConfig is a token bucket: Capacity requests, refilled by Refill
// tokens every Interval.
type RateLimitConfig struct {
	Enabled  bool
	Capacity int
	Refill   int
	Interval time.Duration
	Prefix   string
}

type BrokerConfig struct {
	URL      string
	Exchange string
}

type StorageConfig struct {
	Driver              string
	Dir                 string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

type JobsConfig struct {
	SessionCleanupInterval time.Duration
}

// Location returns the configured time zone, falling back to the local one.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func LoadConfig() (*Config, error) {
	// .env bersifat opsional, environment proses tetap dipakai
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_NAME", "cinema-reservation")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_ENABLED", true)
	viper.SetDefault("CACHE_TTL", "30s")
	viper.SetDefault("CACHE_PREFIX", "cache")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_CAPACITY", 10)
	viper.SetDefault("RATE_LIMIT_REFILL", 1)
	viper.SetDefault("RATE_LIMIT_INTERVAL", "6s")
	viper.SetDefault("RATE_LIMIT_PREFIX", "ratelimit")
	viper.SetDefault("RABBITMQ_EXCHANGE", "cinema.events")
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("STORAGE_DIR", "static/")
	viper.SetDefault("CLOUDINARY_FOLDER", "cinema")
	viper.SetDefault("SESSION_CLEANUP_INTERVAL", "1h")

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled: viper.GetBool("CACHE_ENABLED"),
			TTL:     viper.GetDuration("CACHE_TTL"),
			Prefix:  viper.GetString("CACHE_PREFIX"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  viper.GetBool("RATE_LIMIT_ENABLED"),
			Capacity: viper.GetInt("RATE_LIMIT_CAPACITY"),
			Refill:   viper.GetInt("RATE_LIMIT_REFILL"),
			Interval: viper.GetDuration("RATE_LIMIT_INTERVAL"),
			Prefix:   viper.GetString("RATE_LIMIT_PREFIX"),
		},
		Broker: BrokerConfig{
			URL:      viper.GetString("RABBITMQ_URL"),
			Exchange: viper.GetString("RABBITMQ_EXCHANGE"),
		},
		Storage: StorageConfig{
			Driver:              viper.GetString("STORAGE_DRIVER"),
			Dir:                 viper.GetString("STORAGE_DIR"),
			CloudinaryCloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
			CloudinaryAPIKey:    viper.GetString("CLOUDINARY_API_KEY"),
			CloudinaryAPISecret: viper.GetString("CLOUDINARY_API_SECRET"),
			CloudinaryFolder:    viper.GetString("CLOUDINARY_FOLDER"),
		},
		Jobs: JobsConfig{
			SessionCleanupInterval: viper.GetDuration("SESSION_CLEANUP_INTERVAL"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}
