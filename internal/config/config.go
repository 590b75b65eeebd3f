package config

import (
	"os"
	"strconv"

	"artistcollab/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FeedChannel   string

	LogLevel string
	LogJSON  bool

	APIRateLimit       int
	APIRateWindowSecs  int
	AuthRateLimit      int
	AuthRateWindowSecs int
}

// Load reads configuration from the environment (.env is honored when present).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	feedChannel := os.Getenv("FEED_CHANNEL")
	if feedChannel == "" {
		feedChannel = "feed-events"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:            port,
		DatabaseURL:        dbURL,
		JWTSecret:          jwtSecret,
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		FeedChannel:        feedChannel,
		LogLevel:           logLevel,
		LogJSON:            os.Getenv("LOG_JSON") == "true",
		APIRateLimit:       intEnv("API_RATE_LIMIT", 60),
		APIRateWindowSecs:  intEnv("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:      intEnv("AUTH_RATE_LIMIT", 5),
		AuthRateWindowSecs: intEnv("AUTH_RATE_WINDOW_SECONDS", 60),
	}
}

func intEnv(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
