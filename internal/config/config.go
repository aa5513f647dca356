// Package config loads service settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config represents the complete service configuration
type Config struct {
	Server  ServerConfig
	Paths   PathConfig
	Log     LogConfig
	Dataset DatasetConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port          string
	MaxUploadMB   int64
	CORSOrigins   []string
	StaticDir     string
	ShutdownGrace int
}

// PathConfig holds file system locations
type PathConfig struct {
	DataDir    string
	UploadsDir string
	OutputFile string
	LayoutFile string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Pretty bool
}

// DatasetConfig holds the metadata stamped on every generated document
type DatasetConfig struct {
	Source   string
	Currency string
	Period   string
}

// Load reads the configuration from environment variables. Call
// godotenv.Load first to pick up a .env file.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          getEnvOrDefault("PORT", "3001"),
			MaxUploadMB:   int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)),
			CORSOrigins:   getEnvListOrDefault("CORS_ORIGINS", []string{"*"}),
			StaticDir:     getEnvOrDefault("STATIC_DIR", ""),
			ShutdownGrace: getEnvIntOrDefault("SHUTDOWN_GRACE_SECONDS", 10),
		},
		Paths: PathConfig{
			DataDir:    getEnvOrDefault("DATA_DIR", "data"),
			UploadsDir: getEnvOrDefault("UPLOADS_DIR", "uploads"),
			OutputFile: getEnvOrDefault("OUTPUT_FILE", "public/data.json"),
			LayoutFile: getEnvOrDefault("LAYOUT_FILE", ""),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Pretty: getEnvBoolOrDefault("LOG_PRETTY", true),
		},
		Dataset: DatasetConfig{
			Source:   getEnvOrDefault("DATA_SOURCE", ""),
			Currency: getEnvOrDefault("DATA_CURRENCY", ""),
			Period:   getEnvOrDefault("DATA_PERIOD", ""),
		},
	}
}

// MaxUploadBytes returns the upload limit in bytes.
func (c ServerConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
