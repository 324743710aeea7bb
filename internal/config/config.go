package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/BurntSushi/toml"
)

// Config конфигурация приложения
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Feed    FeedConfig    `toml:"feed"`
}

// ServerConfig локальный HTTP API для UI (таймауты в секундах)
type ServerConfig struct {
	Host            string `toml:"host"`
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// APIConfig удаленный REST API
// Единственная точка, где задается адрес сервера
type APIConfig struct {
	BaseURL            string `toml:"base_url"`
	Timeout            int    `toml:"timeout"`              // секунды
	RetryMaxAttempts   int    `toml:"retry_max_attempts"`   // только для GET
	RetryInitialDelay  int    `toml:"retry_initial_delay"`  // миллисекунды
	RetryMaxElapsedSec int    `toml:"retry_max_elapsed"`    // секунды
}

// StorageConfig локальное key-value хранилище сессии и черновика
type StorageConfig struct {
	Driver       string `toml:"driver"` // sqlite3 или postgres
	DSN          string `toml:"dsn"`
	MaxOpenConns int    `toml:"max_open_conns"`
}

type FeedConfig struct {
	ParticipantConcurrency int `toml:"participant_concurrency"`
}

// Load читает конфигурацию из TOML файла и подставляет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			HTTPPort:        8090,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-fieldservice",
		},
		API: APIConfig{
			Timeout:            15,
			RetryMaxAttempts:   3,
			RetryInitialDelay:  200,
			RetryMaxElapsedSec: 10,
		},
		Storage: StorageConfig{
			Driver:       "sqlite3",
			DSN:          "fieldservice.db",
			MaxOpenConns: 1,
		},
		Feed: FeedConfig{
			ParticipantConcurrency: 4,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("config: api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("config: api.timeout must be positive")
	}
	if c.API.RetryMaxAttempts < 1 {
		return errors.New("config: api.retry_max_attempts must be at least 1")
	}
	switch c.Storage.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("config: unsupported storage.driver %q", c.Storage.Driver)
	}
	if c.Storage.DSN == "" {
		return errors.New("config: storage.dsn is required")
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: server.http_port %d out of range", c.Server.HTTPPort)
	}
	if c.Feed.ParticipantConcurrency < 1 {
		c.Feed.ParticipantConcurrency = 1
	}
	return nil
}

// Addr адрес локального HTTP сервера
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}
