package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Dictionary DictionaryConfig
	Export     ExportConfig
	Photo      PhotoConfig
	Dispatch   DispatchConfig
}

// ServerConfig holds the daemon's serving surface configuration
type ServerConfig struct {
	GRPCAddr string
}

// DictionaryConfig holds keyword dictionary configuration
type DictionaryConfig struct {
	// Path to an optional YAML file with extra field aliases. Empty means
	// built-in aliases only.
	Path string
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	Dir string
}

// PhotoConfig holds photo URL resolution configuration
type PhotoConfig struct {
	BaseURL string
}

// DispatchConfig holds per-user event dispatch configuration
type DispatchConfig struct {
	QueueSize int
	IdleTTL   time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		Dictionary: DictionaryConfig{
			Path: getEnv("DICTIONARY_PATH", ""),
		},
		Export: ExportConfig{
			Dir: getEnv("EXPORT_DIR", "./exports"),
		},
		Photo: PhotoConfig{
			BaseURL: getEnv("PHOTO_BASE_URL", "https://files.local"),
		},
		Dispatch: DispatchConfig{
			QueueSize: getEnvAsInt("DISPATCH_QUEUE_SIZE", 64),
			IdleTTL:   getEnvAsDuration("DISPATCH_IDLE_TTL", 30*time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.GRPCAddr == "" {
		return NewAppError("CONFIG_ERROR", "GRPC_ADDR is required", ErrInvalidInput)
	}
	if c.Export.Dir == "" {
		return NewAppError("CONFIG_ERROR", "EXPORT_DIR is required", ErrInvalidInput)
	}
	if c.Dispatch.QueueSize <= 0 {
		return NewAppError("CONFIG_ERROR", "DISPATCH_QUEUE_SIZE must be positive", ErrInvalidInput)
	}
	return nil
}
