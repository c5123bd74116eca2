package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Token configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Recipe suggestion backend
	LLMProvider         string
	LLMAPIKey           string
	LLMBaseURL          string
	LLMModel            string
	LLMTimeout          time.Duration
	SuggestionRateLimit int
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development {
		// .env is optional for local runs
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	switch env {
	case Development, Test:
		loadDevConfig(cfg)
	case CI, Production:
		loadStrictConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg, env); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDevConfig fills every field, falling back to local defaults
func loadDevConfig(cfg *Config) {
	loadCommon(cfg)

	cfg.DBUser = withDefault(cfg.DBUser, "postgres")
	cfg.DBPassword = withDefault(cfg.DBPassword, "postgres")
	cfg.JWTSecret = withDefault(cfg.JWTSecret, "dev-jwt-secret")
}

// loadStrictConfig reads secrets without defaults. Missing values are reported by ValidateConfig.
func loadStrictConfig(cfg *Config) {
	loadCommon(cfg)
}

func loadCommon(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))

	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = lookup("DB_USER", "db_user")
	cfg.DBPassword = lookup("DB_PASSWORD", "db_password")
	cfg.DBName = getEnv("DB_NAME", "fridge")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "fridge.db")

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "redis_password")
	cfg.RedisDB = getInt("REDIS_DB", 0)
	cfg.RedisURL = lookup("REDIS_URL", "redis_url")

	cfg.JWTSecret = lookup("JWT_SECRET", "jwt_secret")
	cfg.TokenTTL = time.Duration(getInt("TOKEN_TTL_SECONDS", 3600)) * time.Second

	cfg.LLMProvider = strings.ToLower(getEnv("LLM_PROVIDER", ProviderDeepSeek))
	cfg.LLMAPIKey = lookup("LLM_API_KEY", "llm_api_key")
	cfg.LLMBaseURL = getEnv("LLM_BASE_URL", "")
	cfg.LLMModel = getEnv("LLM_MODEL", "")
	cfg.LLMTimeout = time.Duration(getInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second
	cfg.SuggestionRateLimit = getInt("SUGGESTION_RATE_LIMIT", 20)

	if cfg.LLMModel == "" {
		switch cfg.LLMProvider {
		case ProviderGemini:
			cfg.LLMModel = "gemini-2.5-flash"
		default:
			cfg.LLMModel = "deepseek-chat"
		}
	}
	if cfg.LLMBaseURL == "" && cfg.LLMProvider == ProviderDeepSeek {
		cfg.LLMBaseURL = "https://api.deepseek.com/v1"
	}
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// lookup prefers the environment variable and falls back to a Docker secret file
func lookup(envName, secretName string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func withDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
