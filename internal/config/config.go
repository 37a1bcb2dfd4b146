package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"shortfall_service/internal/core"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort  int
	Model     ModelConfig
	Postgres  PostgresConfig
	LogLevel  string
	LogFormat string
}

// ModelConfig selects the estimator: a local artifact at Path, or a remote
// v2 inference server at URL.
type ModelConfig struct {
	Path     string
	URL      string
	Name     string
	Version  string
	Timeout  time.Duration
	Encoding string
}

type PostgresConfig struct {
	URL             string
	SavePredictions bool
}

// Load reads a .env file when present, then the environment, with defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		Model: ModelConfig{
			Path:     getEnv("MODEL_PATH", ""),
			URL:      getEnv("MODEL_URL", ""),
			Name:     getEnv("MODEL_NAME", "load-shortfall"),
			Version:  getEnv("MODEL_VERSION", ""),
			Timeout:  getEnvDuration("MODEL_TIMEOUT", 10*time.Second),
			Encoding: getEnv("FEATURE_ENCODING", "raw"),
		},
		Postgres: PostgresConfig{
			URL:             getEnv("POSTGRES_URL", ""),
			SavePredictions: getEnv("SAVE_PREDICTIONS", "false") == "true",
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate checks that the configuration can start the service.
func (c Config) Validate() error {
	if c.Model.Path == "" && c.Model.URL == "" {
		return errors.New("one of MODEL_PATH or MODEL_URL is required")
	}
	if _, err := core.ParseEncoding(c.Model.Encoding); err != nil {
		return fmt.Errorf("FEATURE_ENCODING: %w", err)
	}
	if c.Postgres.SavePredictions && c.Postgres.URL == "" {
		return errors.New("POSTGRES_URL is required when SAVE_PREDICTIONS=true")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
