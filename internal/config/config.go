package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the POS frontend needs to reach its backends.
// MainAPIURL covers auth, articles, categories, brands and purchase endpoints;
// CartAPIURL is the dedicated cart service.
type Config struct {
	ServerPort int

	MainAPIURL string
	CartAPIURL string

	SessionDBPath string

	HTTPTimeout time.Duration

	LogLevel string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		ServerPort:    EnvIntDefault("SERVER_PORT", 8080),
		MainAPIURL:    EnvDefault("MAIN_API_URL", "http://localhost:8090"),
		CartAPIURL:    EnvDefault("CART_API_URL", "http://localhost:8091"),
		SessionDBPath: EnvDefault("SESSION_DB_PATH", "frontburger.db"),
		HTTPTimeout:   time.Duration(EnvIntDefault("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		LogLevel:      EnvDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
