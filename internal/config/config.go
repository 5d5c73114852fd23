package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress    string
	MongoURI         string
	MongoDatabase    string
	RedisAddr        string
	RedisPassword    string
	JWTSecret        string
	JWTExpiration    time.Duration
	MarketAPIBaseURL string
	MarketAPIKey     string
	PriceCacheTTL    time.Duration
	DataDir          string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	return &Config{
		ServerAddress:    getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnv("MONGO_DB", "agrilink"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:    24 * time.Hour,
		MarketAPIBaseURL: getEnv("MARKET_API_BASE_URL", "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"),
		MarketAPIKey:     getEnv("MARKET_API_KEY", ""),
		PriceCacheTTL:    getDurationEnv("PRICE_CACHE_TTL", 15*time.Minute),
		DataDir:          getEnv("DATA_DIR", "./data"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
		log.Printf("invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
