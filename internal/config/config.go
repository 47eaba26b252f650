package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dharmasatrya/faregate/internal/auth"
)

const DefaultBaseURL = "https://api.fareprovider.example/api"

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	BaseURL     string
	Timeout     time.Duration
	Credentials auth.Credentials

	CacheEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	UpstreamRPS   float64
	UpstreamBurst int
}

// Load reads the environment after applying any .env files given (".env"
// when none are). A missing file is not an error; variables already set in
// the process win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return FromEnv(), nil
}

func FromEnv() Config {
	return Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		BaseURL: getEnv("FARE_API_BASE_URL", DefaultBaseURL),
		Timeout: getEnvDuration("FARE_API_TIMEOUT", 30*time.Second),
		Credentials: auth.Credentials{
			Username:        os.Getenv("FARE_API_USERNAME"),
			Password:        os.Getenv("FARE_API_PASSWORD"),
			SubscriptionKey: os.Getenv("FARE_API_SUBSCRIPTION_KEY"),
		},

		CacheEnabled:  getEnvBool("CACHE_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisTTL:      getEnvDuration("REDIS_TTL", 5*time.Minute),

		UpstreamRPS:   getEnvFloat("UPSTREAM_RPS", 5),
		UpstreamBurst: getEnvInt("UPSTREAM_BURST", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
