package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DataDir          string
	ServerPort       string
	LogLevel         string
	NotificationTTL  time.Duration
	PriorityGrouping string
	DefaultPageSize  int
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Info("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DataDir:          getEnv("DATA_DIR", "./data"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		NotificationTTL:  time.Duration(getEnvInt("NOTIFICATION_TTL_SECONDS", 5)) * time.Second,
		PriorityGrouping: getEnv("PRIORITY_GROUPING", "fixed"),
		DefaultPageSize:  getEnvInt("DEFAULT_PAGE_SIZE", 25),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		logrus.WithField("key", key).Warnf("⚠️  Invalid value %q, using %d", value, defaultVal)
		return defaultVal
	}
	return n
}
