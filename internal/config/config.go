/**
 * @description
 * This package handles the configuration management for the service. It uses
 * the Viper library to read configuration from environment variables (with an
 * optional .env file), providing a centralized way to manage application
 * settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the onboarding service.
// These values are loaded from environment variables.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RedisURL    string `mapstructure:"REDIS_URL"`
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`

	RizeAPIBaseURL string `mapstructure:"RIZE_API_BASE_URL"`
	RizeProgramUID string `mapstructure:"RIZE_PROGRAM_UID"`
	RizeHMACKey    string `mapstructure:"RIZE_HMAC_KEY"`

	SessionSigningKey string `mapstructure:"SESSION_SIGNING_KEY"`
	SessionTTLHours   int    `mapstructure:"SESSION_TTL_HOURS"`

	LoginRateLimitPerMinute int    `mapstructure:"LOGIN_RATE_LIMIT_PER_MINUTE"`
	RedisRateLimitPrefix    string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`

	OnboardingEventExchange string `mapstructure:"ONBOARDING_EVENT_EXCHANGE"`

	SessionPurgeSchedule  string `mapstructure:"SESSION_PURGE_SCHEDULE"`
	CustomerSweepSchedule string `mapstructure:"CUSTOMER_SWEEP_SCHEDULE"`
	CustomerSweepBatch    int    `mapstructure:"CUSTOMER_SWEEP_BATCH"`

	WatchIntervalSeconds int `mapstructure:"WATCH_INTERVAL_SECONDS"`
	WatchMaxAttempts     int `mapstructure:"WATCH_MAX_ATTEMPTS"`
}

// LoadConfig reads configuration from environment variables from the given path.
// It uses Viper to automatically bind environment variables to the Config struct.
func LoadConfig(path string) (config Config, err error) {
	// Tell viper the path to look for the optional .env file.
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	// Enable automatic binding of environment variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RIZE_API_BASE_URL", "https://sandbox.rizefs.com/api/v1")
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("LOGIN_RATE_LIMIT_PER_MINUTE", 10)
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "onboarding:login_limit")
	viper.SetDefault("ONBOARDING_EVENT_EXCHANGE", "rize.onboarding")
	viper.SetDefault("SESSION_PURGE_SCHEDULE", "@hourly")
	viper.SetDefault("CUSTOMER_SWEEP_SCHEDULE", "*/10 * * * *")
	viper.SetDefault("CUSTOMER_SWEEP_BATCH", 100)
	viper.SetDefault("WATCH_INTERVAL_SECONDS", 5)
	viper.SetDefault("WATCH_MAX_ATTEMPTS", 60)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("RIZE_API_BASE_URL")
	_ = viper.BindEnv("RIZE_PROGRAM_UID")
	_ = viper.BindEnv("RIZE_HMAC_KEY")
	_ = viper.BindEnv("SESSION_SIGNING_KEY")
	_ = viper.BindEnv("SESSION_TTL_HOURS")
	_ = viper.BindEnv("LOGIN_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("ONBOARDING_EVENT_EXCHANGE")
	_ = viper.BindEnv("SESSION_PURGE_SCHEDULE")
	_ = viper.BindEnv("CUSTOMER_SWEEP_SCHEDULE")
	_ = viper.BindEnv("CUSTOMER_SWEEP_BATCH")
	_ = viper.BindEnv("WATCH_INTERVAL_SECONDS")
	_ = viper.BindEnv("WATCH_MAX_ATTEMPTS")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	// Unmarshal the configuration into the Config struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	// Platform runtimes commonly inject the listen port via PORT.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	config.RedisURL = strings.TrimSpace(config.RedisURL)
	config.RedisRateLimitPrefix = strings.TrimSpace(config.RedisRateLimitPrefix)
	if config.RedisRateLimitPrefix == "" {
		config.RedisRateLimitPrefix = "onboarding:login_limit"
	}
	if config.SessionTTLHours <= 0 {
		log.Printf("level=warn component=config msg=\"non-positive session ttl configured; using 24h\" hours=%d", config.SessionTTLHours)
		config.SessionTTLHours = 24
	}
	if config.WatchMaxAttempts <= 0 {
		config.WatchMaxAttempts = 60
	}
	if config.WatchIntervalSeconds <= 0 {
		config.WatchIntervalSeconds = 5
	}

	return config, nil
}
