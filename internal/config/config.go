package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	Language      string
	MinConfidence float64
	RowOverlap    float64

	DebugImage   bool
	StoreResults bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("BONSCAN_DB_PATH", filepath.Join(cwd, "data", "bonscan.db")),
		OutputDir: getEnv("BONSCAN_OUTPUT_DIR", filepath.Join(cwd, "output")),

		Language:      getEnv("BONSCAN_LANGUAGE", "deu"),
		MinConfidence: getEnvFloat("BONSCAN_MIN_CONFIDENCE", 0),
		RowOverlap:    getEnvFloat("BONSCAN_ROW_OVERLAP", 0.45),

		DebugImage:   getEnvBool("BONSCAN_DEBUG_IMAGE", true),
		StoreResults: getEnvBool("BONSCAN_STORE_RESULTS", false),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
