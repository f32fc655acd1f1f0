package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string `validate:"required,numeric"`
	StoreBackend    string `validate:"oneof=memory dynamodb redis postgres"`
	DynamoEndpoint  string
	DynamoTableName string `validate:"required_if=StoreBackend dynamodb"`
	AWSRegion       string
	RedisAddr       string `validate:"required_if=StoreBackend redis"`
	RedisPassword   string
	RedisDB         int `validate:"min=0"`
	DatabaseURL     string `validate:"required_if=StoreBackend postgres"`
	JWTSecret       string
	JWTIssuer       string
	JWTJWKSURL      string `validate:"omitempty,url"`
	CORSAllowOrigin string
	LogLevel        slog.Level
	DevBypassAuth   bool
	TMDBAPIKey      string
	TMDBAccessToken string
	TMDBBaseURL     string `validate:"required,url"`
}

// LoadConfig reads the environment, seeded from a .env file when present.
func LoadConfig() (Config, error) {
	// A missing .env file is fine; real environment variables win.
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(envOrDefault("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}

	cfg := Config{
		ServerPort:      envOrDefault("SERVER_PORT", "8080"),
		StoreBackend:    strings.ToLower(envOrDefault("STORE_BACKEND", "memory")),
		DynamoEndpoint:  os.Getenv("DYNAMODB_ENDPOINT"),
		DynamoTableName: envOrDefault("DYNAMODB_TABLE_NAME", "movieapp-kv"),
		AWSRegion:       envOrDefault("AWS_REGION", "us-east-1"),
		RedisAddr:       envOrDefault("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTIssuer:       os.Getenv("JWT_ISSUER"),
		JWTJWKSURL:      os.Getenv("JWT_JWKS_URL"),
		CORSAllowOrigin: envOrDefault("CORS_ALLOW_ORIGIN", "*"),
		LogLevel:        parseLogLevel(os.Getenv("LOG_LEVEL")),
		DevBypassAuth:   strings.EqualFold(os.Getenv("DEV_BYPASS_AUTH"), "true"),
		TMDBAPIKey:      os.Getenv("TMDB_API_KEY"),
		TMDBAccessToken: os.Getenv("TMDB_ACCESS_TOKEN"),
		TMDBBaseURL:     envOrDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.JWTSecret == "" && cfg.JWTJWKSURL == "" && !cfg.DevBypassAuth {
		return Config{}, fmt.Errorf("JWT_SECRET or JWT_JWKS_URL environment variable is required")
	}

	return cfg, nil
}

// TMDBEnabled reports whether a TMDB credential is configured.
func (c Config) TMDBEnabled() bool {
	return c.TMDBAPIKey != "" || c.TMDBAccessToken != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
