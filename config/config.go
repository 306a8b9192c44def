package config

import (
	"errors"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	Timezone          string `mapstructure:"TIMEZONE"`

	// Document store.
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`

	// LINE Messaging API channel.
	LineChannelSecret string `mapstructure:"LINE_CHANNEL_SECRET"`
	LineChannelToken  string `mapstructure:"LINE_CHANNEL_TOKEN"`

	// Conversation sessions.
	SessionBackend string        `mapstructure:"SESSION_BACKEND"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking reminders.
	ReminderEnabled bool          `mapstructure:"REMINDER_ENABLED"`
	ReminderLead    time.Duration `mapstructure:"REMINDER_LEAD"`

	// First admin, created only while the admins collection is empty.
	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Variable names used by earlier deployments of the bot.
	_ = viper.BindEnv("APP_PORT", "APP_PORT", "PORT")
	_ = viper.BindEnv("DATABASE_URL", "DATABASE_URL", "MONGODB_URI")
	_ = viper.BindEnv("LINE_CHANNEL_SECRET", "LINE_CHANNEL_SECRET", "SECRET_TOKEN")
	_ = viper.BindEnv("LINE_CHANNEL_TOKEN", "LINE_CHANNEL_TOKEN", "ACCESS_TOKEN")

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := AppConfig.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	v.SetDefault("TIMEZONE", "Asia/Bangkok")
	v.SetDefault("DATABASE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_NAME", "RUMA")
	v.SetDefault("LINE_CHANNEL_SECRET", "")
	v.SetDefault("LINE_CHANNEL_TOKEN", "")
	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("REMINDER_ENABLED", false)
	v.SetDefault("REMINDER_LEAD", "30m")
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_EMAIL", "")
}

// Validate reports the first required setting that is missing or malformed.
func (c Config) Validate() error {
	if c.LineChannelSecret == "" || c.LineChannelToken == "" {
		return errors.New("LINE_CHANNEL_SECRET and LINE_CHANNEL_TOKEN are required")
	}
	switch c.DatabaseDriver {
	case "mongo":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the mongo driver")
		}
	case "memory":
	default:
		return errors.New("DATABASE_DRIVER must be mongo or memory")
	}
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return errors.New("SESSION_BACKEND must be memory or redis")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return errors.New("TIMEZONE is not a valid IANA zone: " + c.Timezone)
	}
	return nil
}

// Location returns the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
