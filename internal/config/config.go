package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	AppEnv string
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Kafka  KafkaConfig

	// OutboxEnabled makes the API record domain events for the relay worker.
	OutboxEnabled bool
	RateLimit     RateLimitConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
	LogMode    bool
}

// RedisConfig is optional; an empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type KafkaConfig struct {
	Broker       string
	PollInterval time.Duration
	BatchSize    int
	MaxRetries   int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func Load() Config {
	return Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "8000"),
			ReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		DB: DBConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "hrms_lite"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxRetries: getEnvAsInt("DB_MAX_RETRIES", 5),
			LogMode:    getEnvAsBool("DB_LOG_MODE", false),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("CACHE_TTL", time.Hour),
		},
		Kafka: KafkaConfig{
			Broker:       os.Getenv("KAFKA_BROKER"),
			PollInterval: getEnvAsDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
			BatchSize:    getEnvAsInt("OUTBOX_BATCH_SIZE", 50),
			MaxRetries:   getEnvAsInt("OUTBOX_MAX_RETRIES", 10),
		},
		OutboxEnabled: getEnvAsBool("OUTBOX_ENABLED", false),
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func getEnvAsBool(key string, def bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		zap.L().Warn("invalid boolean env, using default", zap.String("key", key), zap.Bool("default", def))
		return def
	}
	return parsed
}

func getEnvAsInt(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("invalid integer env, using default", zap.String("key", key), zap.Int("default", def))
		return def
	}
	return parsed
}

func getEnvAsFloat(key string, def float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("invalid float env, using default", zap.String("key", key), zap.Float64("default", def))
		return def
	}
	return parsed
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("invalid duration env, using default", zap.String("key", key), zap.Duration("default", def))
		return def
	}
	return parsed
}
