package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
// Значения читаются из TOML-файла, затем переопределяются переменными окружения.
type Config struct {
	Server        ServerConfig        `toml:"server" envPrefix:"SERVER_"`
	Database      DatabaseConfig      `toml:"database" envPrefix:"DATABASE_"`
	Logs          LogsConfig          `toml:"logs" envPrefix:"LOGS_"`
	Metrics       MetricsConfig       `toml:"metrics" envPrefix:"METRICS_"`
	Redis         RedisConfig         `toml:"redis" envPrefix:"REDIS_"`
	Notifications NotificationsConfig `toml:"notifications" envPrefix:"NOTIFICATIONS_"`
	Scheduler     SchedulerConfig     `toml:"scheduler" envPrefix:"SCHEDULER_"`
	Salon         SalonConfig         `toml:"salon" envPrefix:"SALON_"`
	Transactions  TransactionsConfig  `toml:"transactions" envPrefix:"TX_"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int      `toml:"read_timeout" env:"READ_TIMEOUT"`         // секунды
	WriteTimeout    int      `toml:"write_timeout" env:"WRITE_TIMEOUT"`       // секунды
	IdleTimeout     int      `toml:"idle_timeout" env:"IDLE_TIMEOUT"`         // секунды
	ShutdownTimeout int      `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"` // секунды
	AllowedOrigins  []string `toml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"HOST"`
	Port            int    `toml:"port" env:"PORT"`
	User            string `toml:"user" env:"USER"`
	Password        string `toml:"password" env:"PASSWORD"`
	DBName          string `toml:"dbname" env:"NAME"`
	SSLMode         string `toml:"sslmode" env:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"` // секунды
	Migrate         bool   `toml:"migrate" env:"MIGRATE"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	File  string `toml:"file" env:"FILE"`
	Level string `toml:"level" env:"LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"ENABLED"`
	Path        string `toml:"path" env:"PATH"`
	ServiceName string `toml:"service_name" env:"SERVICE_NAME"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled" env:"ENABLED"`
	Addr     string `toml:"addr" env:"ADDR"`
	Password string `toml:"password" env:"PASSWORD"`
	DB       int    `toml:"db" env:"DB"`
	SlotsTTL int    `toml:"slots_ttl" env:"SLOTS_TTL"` // секунды
}

type NotificationsConfig struct {
	Enabled     bool    `toml:"enabled" env:"ENABLED"`
	URL         string  `toml:"url" env:"URL"`
	Timeout     int     `toml:"timeout" env:"TIMEOUT"` // секунды
	QueueSize   int     `toml:"queue_size" env:"QUEUE_SIZE"`
	RatePerSec  float64 `toml:"rate_per_sec" env:"RATE_PER_SEC"`
	Burst       int     `toml:"burst" env:"BURST"`
}

type SchedulerConfig struct {
	Enabled             bool `toml:"enabled" env:"ENABLED"`
	ExpireInterval      int  `toml:"expire_interval" env:"EXPIRE_INTERVAL"`   // секунды
	AbandonInterval     int  `toml:"abandon_interval" env:"ABANDON_INTERVAL"` // секунды
	AbandonAfterHours   int  `toml:"abandon_after_hours" env:"ABANDON_AFTER_HOURS"`
	AutoCompleteEnabled bool `toml:"auto_complete" env:"AUTO_COMPLETE"`
	BatchSize           int  `toml:"batch_size" env:"BATCH_SIZE"`
}

type SalonConfig struct {
	Timezone string `toml:"timezone" env:"TIMEZONE"`
}

// Location часовой пояс салона
func (s SalonConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type TransactionsConfig struct {
	MaxRetries  int `toml:"max_retries" env:"MAX_RETRIES"`
	BaseDelayMs int `toml:"base_delay_ms" env:"BASE_DELAY_MS"`
}

// BaseDelay задержка первого повтора
func (t TransactionsConfig) BaseDelay() time.Duration {
	return time.Duration(t.BaseDelayMs) * time.Millisecond
}

// Load читает конфигурацию из файла и переменных окружения
// Файл .env (если есть) загружается до чтения окружения и не перетирает уже заданные переменные.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SALON_SVC_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			Migrate:         true,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "salon_service"},
		Redis:   RedisConfig{SlotsTTL: 300},
		Notifications: NotificationsConfig{
			Timeout:    5,
			QueueSize:  256,
			RatePerSec: 10,
			Burst:      20,
		},
		Scheduler: SchedulerConfig{
			ExpireInterval:    60,
			AbandonInterval:   3600,
			AbandonAfterHours: 72,
			BatchSize:         100,
		},
		Salon:        SalonConfig{Timezone: "Europe/Moscow"},
		Transactions: TransactionsConfig{MaxRetries: 3, BaseDelayMs: 50},
	}
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.User == "" {
		problems = append(problems, "database.user is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.Notifications.Enabled && c.Notifications.URL == "" {
		problems = append(problems, "notifications.url is required when notifications are enabled")
	}
	if c.Scheduler.Enabled && c.Scheduler.ExpireInterval <= 0 {
		problems = append(problems, "scheduler.expire_interval must be positive")
	}
	if c.Scheduler.BatchSize <= 0 {
		problems = append(problems, "scheduler.batch_size must be positive")
	}
	if _, err := c.Salon.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("salon.timezone: %v", err))
	}
	if c.Transactions.MaxRetries < 0 {
		problems = append(problems, "transactions.max_retries must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
