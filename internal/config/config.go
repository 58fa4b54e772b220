package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Auth modes
const (
	AuthModeToken   = "token"
	AuthModeSession = "session"
)

type Config struct {
	HTTPAddr   string
	GinMode    string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	RedisHost string
	RedisPort string

	AuthMode      string
	SessionSecret string
	JWTSecret     string
	JWTIssuer     string
	JWTTTL        time.Duration

	WeekStart     time.Weekday
	StatsLocation *time.Location

	RateLimitPerMinute int
}

func Load() *Config {
	// Missing .env is fine; real env vars still apply
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskuser"),
		DBPassword: getEnv("DB_PASSWORD", "taskpassword"),
		DBName:     getEnv("DB_NAME", "task_tracker"),
		DBPath:     getEnv("DB_PATH", "task_tracker.db"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		AuthMode:      getEnv("AUTH_MODE", AuthModeToken),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		JWTSecret:     getEnv("JWT_SECRET", "default-jwt-secret-change-me"),
		JWTIssuer:     getEnv("JWT_ISSUER", "task-tracker-api"),
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),

		WeekStart:     getWeekday("WEEK_START", time.Monday),
		StatsLocation: getLocation("STATS_TIMEZONE"),

		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 0),
	}
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn("invalid duration in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return d
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func getWeekday(key string, defaultValue time.Weekday) time.Weekday {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	day, ok := weekdays[value]
	if !ok {
		log.Warn("invalid weekday in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return day
}

func getLocation(key string) *time.Location {
	value := os.Getenv(key)
	if value == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		log.Warn("invalid timezone in environment, using UTC", "key", key, "value", value)
		return time.UTC
	}
	return loc
}
