package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration values from environment variables.
// A .env file in the working directory is loaded first when present, so
// local development does not require exporting variables manually.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddrHTTP = getEnv("HTTP_ADDR", config.EndpointAddrHTTP)
	config.GinMode = getEnv("GIN_MODE", config.GinMode)
	config.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", config.CORSAllowedOrigins)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.MaxUploadSizeBytes = getEnvAsInt64("MAX_UPLOAD_SIZE_BYTES", config.MaxUploadSizeBytes)
	config.S3RootUser = getEnv("S3_ROOT_USER", config.S3RootUser)
	config.S3RootPassword = getEnv("S3_ROOT_PASSWORD", config.S3RootPassword)
	config.S3Bucket = getEnv("S3_BUCKET", config.S3Bucket)
	config.S3Region = getEnv("S3_REGION", config.S3Region)
	config.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", config.S3BaseEndpoint)

	if minutes := getEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 0); minutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
	}
}

// getEnv returns the value of the environment variable or the default when
// the variable is unset or empty.
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
