package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = "5000"
	DefaultMongoURI       = "mongodb://localhost:27017"
	DefaultMongoDB        = "devconnector"
	DefaultRequestTimeout = 5 * time.Second
)

type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	CORSOrigins    string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// LoadConfig reads .env (if present) and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", DefaultPort),
		MongoURI:    getEnv("MONGO_URI", DefaultMongoURI),
		MongoDB:     getEnv("MONGO_DB", DefaultMongoDB),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", DefaultRequestTimeout.String()))
	if err != nil {
		return cfg, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = timeout

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.MongoURI == "" || c.MongoDB == "" {
		return errors.New("MONGO_URI and MONGO_DB are required")
	}
	return nil
}
