package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Booking   BookingConfig   `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogConfig настройки клиента каталога (услуги, мастера, салоны)
type CatalogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// RedisConfig настройки кэша ответов каталога
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	CacheTTL int    `toml:"cache_ttl"` // секунды
}

// RateLimitConfig ограничение частоты создания бронирований на пользователя
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

// BookingConfig параметры транзакций бронирования
type BookingConfig struct {
	SerializableRetries int `toml:"serializable_retries"`
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon-booking-service",
		},
		Catalog: CatalogConfig{
			Timeout: 5,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			CacheTTL: 300,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 10,
			Burst:             3,
		},
		Booking: BookingConfig{
			SerializableRetries: 3,
		},
	}
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("CATALOG_URL"); v != "" {
		cfg.Catalog.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Catalog.URL == "" {
		return fmt.Errorf("%w: catalog.url is required", ErrInvalidConfig)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("%w: catalog.timeout must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: ratelimit values must be positive", ErrInvalidConfig)
	}
	if c.Booking.SerializableRetries < 0 {
		return fmt.Errorf("%w: booking.serializable_retries must not be negative", ErrInvalidConfig)
	}
	return nil
}
