package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisURL   string
	JWTSecret  string

	// AuthRequired selects verified mode. When false the service trusts
	// caller-supplied phone numbers; development and test only.
	AuthRequired  bool
	AllowedOrigin string

	OTPTTL        time.Duration
	VerifyTimeout time.Duration
	StoreTimeout  time.Duration

	SMSProvider string
	SMSAPIKey   string
	SMSBaseURL  string
	SMSSender   string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "profiles"),
		DBPassword: getEnv("DB_PASSWORD", "profiles_dev_password"),
		DBName:     getEnv("DB_NAME", "profiles"),
		RedisURL:   getEnv("REDIS_URL", "localhost:6379"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),

		AuthRequired:  getBoolEnv("AUTH_REQUIRED", true),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),

		OTPTTL:        getDurationEnv("OTP_TTL", 5*time.Minute),
		VerifyTimeout: getDurationEnv("VERIFY_TIMEOUT", 5*time.Second),
		StoreTimeout:  getDurationEnv("STORE_TIMEOUT", 5*time.Second),

		SMSProvider: getEnv("SMS_PROVIDER", "log"),
		SMSAPIKey:   getEnv("SMS_API_KEY", ""),
		SMSBaseURL:  getEnv("SMS_BASE_URL", ""),
		SMSSender:   getEnv("SMS_SENDER", ""),
	}
}

// DatabaseURL builds the Postgres DSN used by both the pool and migrations.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
