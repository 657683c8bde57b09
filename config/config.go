package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	StaffingPort      string `mapstructure:"STAFFING_PORT"`
	ServiceMode       string `mapstructure:"SERVICE_MODE"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB. Each service owns its own database.
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	BookingDatabase  string `mapstructure:"BOOKING_DATABASE"`
	StaffingDatabase string `mapstructure:"STAFFING_DATABASE"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Peer services.
	EmployeeAPIBase string        `mapstructure:"EMPLOYEE_API_BASE"`
	BookingAPIBase  string        `mapstructure:"BOOKING_API_BASE"`
	PeerTimeout     time.Duration `mapstructure:"PEER_TIMEOUT"`

	// Shop calendar.
	DefaultAdminID   string        `mapstructure:"DEFAULT_ADMIN_ID"`
	ClosureWeekday   string        `mapstructure:"CLOSURE_WEEKDAY"`
	ShopOpen         string        `mapstructure:"SHOP_OPEN"`
	ShopClose        string        `mapstructure:"SHOP_CLOSE"`
	ServiceSlots     string        `mapstructure:"SERVICE_SLOTS"`
	TaskDueTime      string        `mapstructure:"TASK_DUE_TIME"`
	CalendarCacheTTL time.Duration `mapstructure:"CALENDAR_CACHE_TTL"`

	// Notifications.
	NotifyAsync         bool   `mapstructure:"NOTIFY_ASYNC"`
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`

	// Tracing.
	OtelEnabled      bool    `mapstructure:"OTEL_ENABLED"`
	OtelEndpoint     string  `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelSamplingRate float64 `mapstructure:"OTEL_SAMPLING_RATIO"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8084")
	viper.SetDefault("STAFFING_PORT", "8083")
	viper.SetDefault("SERVICE_MODE", "all")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("BOOKING_DATABASE", "revamp_booking")
	viper.SetDefault("STAFFING_DATABASE", "revamp_staffing")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("EMPLOYEE_API_BASE", "http://localhost:8083")
	viper.SetDefault("BOOKING_API_BASE", "http://localhost:8084")
	viper.SetDefault("PEER_TIMEOUT", "10s")
	viper.SetDefault("DEFAULT_ADMIN_ID", "ADMIN001")
	viper.SetDefault("CLOSURE_WEEKDAY", "Sunday")
	viper.SetDefault("SHOP_OPEN", "08:00")
	viper.SetDefault("SHOP_CLOSE", "17:00")
	viper.SetDefault("SERVICE_SLOTS", "08:00-11:00,11:00-14:00,14:00-17:00")
	viper.SetDefault("TASK_DUE_TIME", "17:00")
	viper.SetDefault("CALENDAR_CACHE_TTL", "10m")
	viper.SetDefault("NOTIFY_ASYNC", true)
	viper.SetDefault("FIREBASE_CREDENTIALS", "")
	viper.SetDefault("OTEL_ENABLED", false)
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	viper.SetDefault("OTEL_SAMPLING_RATIO", 1.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// RunsBooking reports whether this process hosts the booking service.
func RunsBooking() bool {
	return AppConfig.ServiceMode == "" || AppConfig.ServiceMode == "all" || AppConfig.ServiceMode == "booking"
}

// RunsStaffing reports whether this process hosts the staffing service.
func RunsStaffing() bool {
	return AppConfig.ServiceMode == "" || AppConfig.ServiceMode == "all" || AppConfig.ServiceMode == "staffing"
}
