// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// AWS
	AWSRegion     string
	S3Bucket      string
	S3FarmersKey  string
	S3ProductsKey string

	// Database (optional; the server falls back to the local dataset)
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// SES
	SESSenderEmail string

	// Reference data
	DataDir string

	// Application
	Port     string
	Stage    string
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		AWSRegion:     getEnv("AWS_REGION", "eu-central-1"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3FarmersKey:  getEnv("S3_FARMERS_KEY", "datasets/farmers.json"),
		S3ProductsKey: getEnv("S3_PRODUCTS_KEY", "datasets/products.json"),

		DBHost:     getEnv("DB_HOST", getEnv("BNPL_DB_HOST", "localhost")),
		DBPort:     getEnvInt("DB_PORT", getEnvInt("BNPL_DB_PORT", 5432)),
		DBName:     getEnv("DB_NAME", getEnv("BNPL_DB_NAME", "agri_bnpl")),
		DBUser:     getEnv("DB_USER", getEnv("BNPL_DB_USER", "postgres")),
		DBPassword: getEnv("DB_PASSWORD", getEnv("BNPL_DB_PASSWORD", "")),

		SESSenderEmail: getEnv("SES_SENDER_EMAIL", ""),

		DataDir: getEnv("DATA_DIR", "./data"),

		Port:     getEnv("PORT", "8080"),
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	sslMode := "require" // Use SSL for RDS
	if c.DBHost == "localhost" || c.DBHost == "127.0.0.1" {
		sslMode = "disable" // Disable SSL for local development
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + strconv.Itoa(c.DBPort) + "/" + c.DBName + "?sslmode=" + sslMode
}

// DatasetFromS3 reports whether reference data should be fetched from S3.
func (c *Config) DatasetFromS3() bool {
	return c.S3Bucket != ""
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
