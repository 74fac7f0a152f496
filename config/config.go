package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Storage backends selectable with STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset. Anyone who knows
// it can mint sessions, so it only suits local development.
const DefaultJWTSecret = "change-me-in-production"

type Config struct {
	Port         string
	StoreBackend string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string

	JWTSecret string
	JWTTTL    time.Duration

	PlacesAPIKey  string
	PlacesBaseURL string

	LogLevel string
	LogFile  string

	RateLimitRPS   float64
	RateLimitBurst int

	RefreshInterval time.Duration
	JaegerEndpoint  string
	StaticDir       string
}

// Load reads .env if present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.WithField("component", "config").Info("No .env file found; using system environment")
	}

	port := getEnv("PORT", ":8080")
	if port[0] != ':' {
		port = ":" + port
	}

	cfg := Config{
		Port:            port,
		StoreBackend:    getEnv("STORE_BACKEND", BackendMemory),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "hostelhub"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:          getEnvAsDuration("JWT_TTL", 12*time.Hour),
		PlacesAPIKey:    os.Getenv("PLACES_API_KEY"),
		PlacesBaseURL:   getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place/nearbysearch/json"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         os.Getenv("LOG_FILE"),
		RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 10),
		RefreshInterval: getEnvAsDuration("REFRESH_INTERVAL", time.Hour),
		JaegerEndpoint:  os.Getenv("JAEGER_ENDPOINT"),
		StaticDir:       getEnv("STATIC_DIR", "static"),
	}
	if cfg.InsecureJWTSecret() {
		logrus.WithField("component", "config").Warn("JWT_SECRET is not set; signing tokens with the built-in development secret")
	}
	return cfg
}

// InsecureJWTSecret reports whether tokens are signed with DefaultJWTSecret.
func (c Config) InsecureJWTSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
