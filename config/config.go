package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	HouseServiceURL string
	UserServiceURL  string
	DefaultCity     string
	DefaultState    string
	PageSize        int
	SessionDBPath   string
	HTTPTimeout     time.Duration
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:            GetEnv("PORT", "3000"),
		Env:             GetEnv("ENV", "development"),
		HouseServiceURL: GetEnv("HOUSE_SERVICE_URL", "http://localhost:8081"),
		UserServiceURL:  GetEnv("USER_SERVICE_URL", "http://localhost:8082"),
		DefaultCity:     GetEnv("DEFAULT_CITY", "Irvine"),
		DefaultState:    GetEnv("DEFAULT_STATE", "CA"),
		PageSize:        getEnvInt("PAGE_SIZE", 12),
		SessionDBPath:   GetEnv("SESSION_DB_PATH", "./data/house-portal.db"),
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
