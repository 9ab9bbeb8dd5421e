package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/synapsehq/synapse-api/internal/email"
	"github.com/synapsehq/synapse-api/internal/repository/postgres"
	"github.com/synapsehq/synapse-api/pkg/messaging/redis"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig            `mapstructure:"server"`
	Log       LogConfig               `mapstructure:"log"`
	Auth      AuthConfig              `mapstructure:"auth"`
	Storage   StorageConfig           `mapstructure:"storage"`
	Database  postgres.DatabaseConfig `mapstructure:"database"`
	Redis     RedisConfig             `mapstructure:"redis"`
	SMTP      email.SMTPConfig        `mapstructure:"smtp"`
	RateLimit RateLimitConfig         `mapstructure:"rate_limit"`
	Seed      SeedConfig              `mapstructure:"seed"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type AuthConfig struct {
	// RequireAuth gates the JWT middleware on the API routes.
	RequireAuth bool   `mapstructure:"require_auth"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

// StorageConfig selects the repository backend. The in-memory stores are the
// default; postgres is opt-in.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	// EncryptionKey enables at-rest encryption of patient CPF values in the
	// postgres driver. Must be 16, 24 or 32 bytes for AES.
	EncryptionKey string `mapstructure:"encryption_key"`
}

type RedisConfig struct {
	// Enabled turns on appointment event publishing.
	Enabled      bool          `mapstructure:"enabled"`
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// envOverrides are applied on top of the file config, for the values that
// change between deployments.
type envOverrides struct {
	Port        int    `envconfig:"PORT"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	JWTSecret   string `envconfig:"JWT_SECRET"`
	Storage     string `envconfig:"STORAGE_DRIVER"`
	StorageKey  string `envconfig:"ENCRYPTION_KEY"`
	DBHost      string `envconfig:"DB_HOST"`
	DBPort      int    `envconfig:"DB_PORT"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME"`
	RedisURL    string `envconfig:"REDIS_URL"`
	SMTPHost    string `envconfig:"SMTP_HOST"`
	SMTPPort    int    `envconfig:"SMTP_PORT"`
	SMTPUser    string `envconfig:"SMTP_USERNAME"`
	SMTPPass    string `envconfig:"SMTP_PASSWORD"`
	SeedEnabled bool   `envconfig:"SEED"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults plus environment are enough to run.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("synapse", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	applyOverrides(&cfg, &env)

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)
	viper.SetDefault("auth.expiry_hours", 24)
	viper.SetDefault("storage.driver", StorageMemory)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.retry_backoff", "100ms")
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.min_idle_conns", 2)
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("seed.enabled", true)
}

func applyOverrides(cfg *Config, env *envOverrides) {
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.JWTSecret != "" {
		cfg.Auth.JWTSecret = env.JWTSecret
	}
	if env.Storage != "" {
		cfg.Storage.Driver = env.Storage
	}
	if env.StorageKey != "" {
		cfg.Storage.EncryptionKey = env.StorageKey
	}
	if env.DBHost != "" {
		cfg.Database.Host = env.DBHost
	}
	if env.DBPort != 0 {
		cfg.Database.Port = env.DBPort
	}
	if env.DBUser != "" {
		cfg.Database.User = env.DBUser
	}
	if env.DBPassword != "" {
		cfg.Database.Password = env.DBPassword
	}
	if env.DBName != "" {
		cfg.Database.Name = env.DBName
	}
	if env.RedisURL != "" {
		cfg.Redis.URL = env.RedisURL
		cfg.Redis.Enabled = true
	}
	if env.SMTPHost != "" {
		cfg.SMTP.Host = env.SMTPHost
	}
	if env.SMTPPort != 0 {
		cfg.SMTP.Port = env.SMTPPort
	}
	if env.SMTPUser != "" {
		cfg.SMTP.Username = env.SMTPUser
	}
	if env.SMTPPass != "" {
		cfg.SMTP.Password = env.SMTPPass
	}
	if env.SeedEnabled {
		cfg.Seed.Enabled = true
	}
}

func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}
