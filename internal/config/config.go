package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config covers the API binary. The worker reads its own settings from the
// environment; Redis and SMTP live there.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	RateLimitRPS   int `mapstructure:"rate_limit_rps"`
	RateLimitBurst int `mapstructure:"rate_limit_burst"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	ExpiryHours        int    `mapstructure:"expiry_hours"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours"`
}

// BookingConfig drives slot generation and booking validation.
type BookingConfig struct {
	SlotIntervalMinutes int    `mapstructure:"slot_interval_minutes"`
	MinDurationMinutes  int    `mapstructure:"min_duration_minutes"`
	MaxDurationMinutes  int    `mapstructure:"max_duration_minutes"`
	MaxAdvanceDays      int    `mapstructure:"max_advance_days"`
	PeakStart           string `mapstructure:"peak_start"`
	PeakEnd             string `mapstructure:"peak_end"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeout_seconds", 30)
	viper.SetDefault("server.rate_limit_rps", 100)
	viper.SetDefault("server.rate_limit_burst", 200)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("jwt.refresh_expiry_hours", 168)
	viper.SetDefault("booking.slot_interval_minutes", 30)
	viper.SetDefault("booking.min_duration_minutes", 15)
	viper.SetDefault("booking.max_duration_minutes", 240)
	viper.SetDefault("booking.max_advance_days", 90)
	viper.SetDefault("booking.peak_start", "17:00")
	viper.SetDefault("booking.peak_end", "20:00")
}
