package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Booking   BookingConfig   `yaml:"booking"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	SSLMode      string `yaml:"ssl_mode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BookingConfig contains booking lifecycle and display settings
type BookingConfig struct {
	// Pending bookings older than this are voided by the cron job.
	PendingTTLMinutes int `yaml:"pending_ttl_minutes"`
	// Multiplier from platform currency to the display currency.
	DisplayCurrencyRate string `yaml:"display_currency_rate"`
	DefaultPageSize     int32  `yaml:"default_page_size"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	VoidExpiredBookings string `yaml:"void_expired_bookings"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes, applies environment overrides
// and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Booking
	if val := os.Getenv("BOOKING_PENDING_TTL_MINUTES"); val != "" {
		fmt.Sscanf(val, "%d", &c.Booking.PendingTTLMinutes)
	}
	if val := os.Getenv("DISPLAY_CURRENCY_RATE"); val != "" {
		c.Booking.DisplayCurrencyRate = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Booking.DisplayCurrencyRate == "" {
		c.Booking.DisplayCurrencyRate = "1"
	}
	rate, err := decimal.NewFromString(c.Booking.DisplayCurrencyRate)
	if err != nil {
		return fmt.Errorf("invalid display currency rate %q: %w", c.Booking.DisplayCurrencyRate, err)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("display currency rate must be positive: %s", rate)
	}

	if c.Booking.PendingTTLMinutes < 0 {
		return fmt.Errorf("pending booking TTL must not be negative: %d", c.Booking.PendingTTLMinutes)
	}
	if c.Booking.PendingTTLMinutes == 0 {
		c.Booking.PendingTTLMinutes = 24 * 60
	}
	if c.Booking.DefaultPageSize <= 0 {
		c.Booking.DefaultPageSize = 20
	}

	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 15
	}

	if c.Scheduler.VoidExpiredBookings == "" {
		c.Scheduler.VoidExpiredBookings = "0 */15 * * * *" // every 15 minutes
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// PendingTTL returns how long a booking may stay pending before it is voided
func (c *Config) PendingTTL() time.Duration {
	return time.Duration(c.Booking.PendingTTLMinutes) * time.Minute
}

// DisplayRate returns the parsed display currency rate. Validate guarantees it parses.
func (c *Config) DisplayRate() decimal.Decimal {
	rate, err := decimal.NewFromString(c.Booking.DisplayCurrencyRate)
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return rate
}
