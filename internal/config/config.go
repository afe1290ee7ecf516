package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config конфигурация сервиса (config.toml + переменные окружения)
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Storage       StorageConfig       `toml:"storage"`
	Booking       BookingConfig       `toml:"booking"`
	AccessService AccessServiceConfig `toml:"access_service"`
	Sweeper       SweeperConfig       `toml:"sweeper"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Driver     string            `toml:"driver"` // postgres | memory
	SeedFields []SeedFieldConfig `toml:"seed_fields"`
}

// SeedFieldConfig площадка, которую in-memory хранилище создаёт при старте.
// Если заданы open_time и close_time, окно ставится на все дни недели.
type SeedFieldConfig struct {
	ID          int64   `toml:"id"`
	TenantID    int64   `toml:"tenant_id"`
	Name        string  `toml:"name"`
	SportType   string  `toml:"sport_type"`
	Timezone    string  `toml:"timezone"`
	HourlyPrice float64 `toml:"hourly_price"`
	OpenTime    string  `toml:"open_time"`
	CloseTime   string  `toml:"close_time"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	MaxSlotRangeDays      int `toml:"max_slot_range_days"`
	MaxReservationMinutes int `toml:"max_reservation_minutes"` // 0 = без ограничения
}

type AccessServiceConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type SweeperConfig struct {
	Schedule  string `toml:"schedule"` // cron-выражение
	BatchSize int    `toml:"batch_size"`
}

// Load читает TOML-файл, подмешивает .env и переменные окружения, проставляет значения по умолчанию
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		path = envPath
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
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
		c.Metrics.ServiceName = "field-booking-service"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}
	if c.Booking.MaxSlotRangeDays == 0 {
		c.Booking.MaxSlotRangeDays = 31
	}
	if c.AccessService.Timeout == 0 {
		c.AccessService.Timeout = 5
	}
	if c.Sweeper.Schedule == "" {
		c.Sweeper.Schedule = "@every 5m"
	}
	if c.Sweeper.BatchSize == 0 {
		c.Sweeper.BatchSize = 100
	}
}

// Validate проверяет значения после применения значений по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
		for i, f := range c.Storage.SeedFields {
			if f.ID <= 0 || f.TenantID <= 0 {
				return fmt.Errorf("%w: storage.seed_fields[%d] needs positive id and tenant_id", ErrInvalidConfig, i)
			}
		}
	default:
		return fmt.Errorf("%w: storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Booking.MaxSlotRangeDays < 1 {
		return fmt.Errorf("%w: booking.max_slot_range_days must be positive", ErrInvalidConfig)
	}
	if c.Booking.MaxReservationMinutes < 0 {
		return fmt.Errorf("%w: booking.max_reservation_minutes must not be negative", ErrInvalidConfig)
	}
	if c.AccessService.Enabled && c.AccessService.URL == "" {
		return fmt.Errorf("%w: access_service.url is required when enabled", ErrInvalidConfig)
	}
	if c.Sweeper.BatchSize < 1 {
		return fmt.Errorf("%w: sweeper.batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}
