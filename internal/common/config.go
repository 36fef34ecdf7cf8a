package common

import (
	"os"
	"strconv"
	"time"

	"github.com/mbzesq/npl-vision-2/constants"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	LLM      LLMConfig
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	HTTPAddr       string
	MaxUploadBytes int64
}

// LLMConfig holds extraction-capability configuration.
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
	TextBudget  int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr:       getEnv("HTTP_ADDR", ":8000"),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_MB", constants.MaxUploadBytes/(1024*1024))) * 1024 * 1024,
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.1),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
			TextBudget:  getEnvAsInt("EXTRACTION_TEXT_BUDGET", 4000),
		},
	}
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing.
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

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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
