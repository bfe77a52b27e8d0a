package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	LogLevel       string
	RoomTTL        time.Duration
	DefaultSeconds int // question countdown when the host supplies none
	DefaultPoints  int // question value when the host supplies none
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RoomTTL:        time.Duration(getEnvInt("ROOM_TTL_MIN", 120)) * time.Minute,
		DefaultSeconds: getEnvInt("DEFAULT_QUESTION_SECONDS", 30),
		DefaultPoints:  getEnvInt("DEFAULT_QUESTION_POINTS", 1),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
