package main

import (
	"log/slog"
	"strings"
	"testing"
)

// clearEnv blanks every variable LoadConfig reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVER_PORT", "STORE_BACKEND", "DYNAMODB_ENDPOINT", "DYNAMODB_TABLE_NAME",
		"AWS_REGION", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "DATABASE_URL",
		"JWT_SECRET", "JWT_ISSUER", "JWT_JWKS_URL", "CORS_ALLOW_ORIGIN", "LOG_LEVEL",
		"DEV_BYPASS_AUTH", "TMDB_API_KEY", "TMDB_ACCESS_TOKEN", "TMDB_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ServerPort != "8080" || cfg.StoreBackend != "memory" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DynamoTableName != "movieapp-kv" || cfg.CORSAllowOrigin != "*" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.TMDBEnabled() {
		t.Fatal("TMDB should be disabled without credentials")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_JWKS_URL", "https://auth.example.com/.well-known/jwks.json")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TMDB_ACCESS_TOKEN", "tok")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.StoreBackend != "redis" || cfg.RedisAddr != "cache:6379" || cfg.RedisDB != 2 {
		t.Fatalf("unexpected redis config: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
	if !cfg.TMDBEnabled() {
		t.Fatal("expected TMDB to be enabled")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"no auth", map[string]string{}, "JWT_SECRET"},
		{"unknown backend", map[string]string{"JWT_SECRET": "s", "STORE_BACKEND": "floppy"}, "StoreBackend"},
		{"postgres without url", map[string]string{"JWT_SECRET": "s", "STORE_BACKEND": "postgres"}, "DatabaseURL"},
		{"bad redis db", map[string]string{"JWT_SECRET": "s", "REDIS_DB": "zero"}, "REDIS_DB"},
		{"bad port", map[string]string{"JWT_SECRET": "s", "SERVER_PORT": "http"}, "ServerPort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfig_DevBypassNeedsNoSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEV_BYPASS_AUTH", "TRUE")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.DevBypassAuth {
		t.Fatal("expected dev bypass to be enabled")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
