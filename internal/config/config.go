package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	ExchangeRates ExchangeRatesConfig `toml:"exchange_rates"`
	Pricing       PricingConfig       `toml:"pricing"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
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

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
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

// RedisConfig настройки кэша курсов валют
// URL может быть "redis://..." или просто "host:port"; пустой URL отключает кэш
type RedisConfig struct {
	URL           string `toml:"url"`
	HistoricalTTL int    `toml:"historical_ttl"` // секунды, курс за прошедшую дату
	TodayTTL      int    `toml:"today_ttl"`      // секунды, текущий курс
}

// Enabled проверяет, что кэш включен
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// ExchangeRatesConfig настройки внешнего API курсов валют
type ExchangeRatesConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
	// LookbackDays на сколько дней назад искать последний опубликованный курс (выходные, праздники)
	LookbackDays int `toml:"lookback_days"`
}

// PricingConfig настройки движка цен
type PricingConfig struct {
	// IncludeTentativeInSearch учитывать предварительные бронирования (proposed) при публичном поиске.
	// Не задано - true.
	IncludeTentativeInSearch *bool `toml:"include_tentative_in_search"`
}

// IncludeTentative возвращает итоговое значение include_tentative_in_search
func (c PricingConfig) IncludeTentative() bool {
	return ptr.Value(c.IncludeTentativeInSearch)
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc_rental_service"
	}
	if c.Redis.HistoricalTTL == 0 {
		c.Redis.HistoricalTTL = 30 * 24 * 3600
	}
	if c.Redis.TodayTTL == 0 {
		c.Redis.TodayTTL = 3600
	}
	if c.ExchangeRates.Timeout == 0 {
		c.ExchangeRates.Timeout = 5
	}
	if c.ExchangeRates.LookbackDays == 0 {
		c.ExchangeRates.LookbackDays = 7
	}
	if c.Pricing.IncludeTentativeInSearch == nil {
		c.Pricing.IncludeTentativeInSearch = ptr.Ptr(true)
	}
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns=%d exceeds max_open_conns=%d",
			ErrInvalidConfig, c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.ExchangeRates.URL == "" {
		return fmt.Errorf("%w: exchange_rates.url is required", ErrInvalidConfig)
	}
	return nil
}
