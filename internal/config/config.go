package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Config конфигурация сервиса
// Структурная часть читается из config.toml, секреты и фиче-флаги - из окружения
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Gateway  GatewayConfig  `toml:"gateway"`
	Events   EventsConfig   `toml:"events"`

	Secrets Secrets `toml:"-"`
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// GatewayConfig настройки платежного шлюза
type GatewayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// EventsConfig настройки публикации доменных событий
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"` // amqp://...
	Exchange string `toml:"exchange"`
}

// Secrets секреты и фиче-флаги из переменных окружения
// Не храним их в config.toml, чтобы файл можно было коммитить
type Secrets struct {
	WebhookSecret    string `envconfig:"WEBHOOK_SECRET" required:"true"`
	GatewayKeyID     string `envconfig:"GATEWAY_KEY_ID" required:"true"`
	GatewayKeySecret string `envconfig:"GATEWAY_KEY_SECRET" required:"true"`
	RefundsEnabled   bool   `envconfig:"REFUNDS_ENABLED" default:"false"`
}

// Load загружает конфигурацию из TOML файла и окружения
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := envconfig.Process("", &cfg.Secrets); err != nil {
		return nil, fmt.Errorf("config: failed to read secrets from env: %w", err)
	}

	return &cfg, nil
}
