package config

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig             `toml:"server"`
	Database DatabaseConfig           `toml:"database"`
	Logs     LogsConfig               `toml:"logs"`
	Metrics  MetricsConfig            `toml:"metrics"`
	Booking  BookingConfig            `toml:"booking"`
	Pricing  map[string]PricingConfig `toml:"pricing"`
}

// ServerConfig настройки HTTP сервера
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

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig бизнес-политики бронирования
type BookingConfig struct {
	CancelMinNoticeMinutes int `toml:"cancel_min_notice_minutes"`
	MinChargeMinutes       int `toml:"min_charge_minutes"`
}

// PricingConfig тарификация одного типа станции в config.toml
// Ключи bundles — целое число часов в виде строки (ограничение TOML)
type PricingConfig struct {
	HourlyRate float64            `toml:"hourly_rate"`
	Bundles    map[string]float64 `toml:"bundles"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// PriceConfig конвертирует секции [pricing.*] в доменную тарифную сетку
func (c *Config) PriceConfig() (domain.PriceConfig, error) {
	result := make(domain.PriceConfig, len(c.Pricing))

	for typeName, p := range c.Pricing {
		bundles := make(map[int]float64, len(p.Bundles))
		for hoursStr, price := range p.Bundles {
			hours, err := strconv.Atoi(hoursStr)
			if err != nil {
				return nil, fmt.Errorf("config: pricing.%s: invalid bundle key %q: %w", typeName, hoursStr, err)
			}
			if hours <= 0 {
				return nil, fmt.Errorf("config: pricing.%s: bundle hours must be positive, got %d", typeName, hours)
			}
			bundles[hours] = price
		}

		result[domain.StationType(typeName)] = domain.TypePricing{
			HourlyRate: p.HourlyRate,
			Bundles:    bundles,
		}
	}

	return result, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Booking.CancelMinNoticeMinutes == 0 {
		cfg.Booking.CancelMinNoticeMinutes = domain.DefaultCancelMinNoticeMinutes
	}
	if cfg.Booking.MinChargeMinutes == 0 {
		cfg.Booking.MinChargeMinutes = domain.DefaultMinChargeMinutes
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}

	for typeName, p := range cfg.Pricing {
		if p.HourlyRate < 0 {
			return fmt.Errorf("config: pricing.%s: hourly_rate must be non-negative", typeName)
		}
		for hoursStr, price := range p.Bundles {
			if price < 0 {
				return fmt.Errorf("config: pricing.%s: bundle %s price must be non-negative", typeName, hoursStr)
			}
		}
	}

	return nil
}
