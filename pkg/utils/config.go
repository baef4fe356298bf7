package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Gateway  GatewayConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// GatewayConfig describes the external payment gateway host and the
// bounded budgets used when waking and polling it.
type GatewayConfig struct {
	BaseURL               string
	WakeURL               string
	HealthAttempts        int
	HealthIntervalSeconds int
	HealthTimeoutSeconds  int
	StatusPollAttempts    int
	StatusPollSeconds     int
}

type BookingConfig struct {
	PendingTTLMinutes   int
	PendingSweepMinutes int
	IdempotencyTTLHours int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("GATEWAY_HEALTH_ATTEMPTS", 20)
	viper.SetDefault("GATEWAY_HEALTH_INTERVAL_SECONDS", 3)
	viper.SetDefault("GATEWAY_HEALTH_TIMEOUT_SECONDS", 2)
	viper.SetDefault("GATEWAY_STATUS_POLL_ATTEMPTS", 10)
	viper.SetDefault("GATEWAY_STATUS_POLL_SECONDS", 2)
	viper.SetDefault("BOOKING_PENDING_TTL_MINUTES", 30)
	viper.SetDefault("BOOKING_PENDING_SWEEP_MINUTES", 5)
	viper.SetDefault("BOOKING_IDEMPOTENCY_TTL_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Gateway: GatewayConfig{
			BaseURL:               viper.GetString("GATEWAY_BASE_URL"),
			WakeURL:               viper.GetString("GATEWAY_WAKE_URL"),
			HealthAttempts:        viper.GetInt("GATEWAY_HEALTH_ATTEMPTS"),
			HealthIntervalSeconds: viper.GetInt("GATEWAY_HEALTH_INTERVAL_SECONDS"),
			HealthTimeoutSeconds:  viper.GetInt("GATEWAY_HEALTH_TIMEOUT_SECONDS"),
			StatusPollAttempts:    viper.GetInt("GATEWAY_STATUS_POLL_ATTEMPTS"),
			StatusPollSeconds:     viper.GetInt("GATEWAY_STATUS_POLL_SECONDS"),
		},
		Booking: BookingConfig{
			PendingTTLMinutes:   viper.GetInt("BOOKING_PENDING_TTL_MINUTES"),
			PendingSweepMinutes: viper.GetInt("BOOKING_PENDING_SWEEP_MINUTES"),
			IdempotencyTTLHours: viper.GetInt("BOOKING_IDEMPOTENCY_TTL_HOURS"),
		},
	}

	return config, nil
}
