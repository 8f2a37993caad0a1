package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/color-game/palettetool/api"
	"github.com/color-game/palettetool/assembler"
)

const defaultJwtSecret = "your-secret-key-change-this"

// LoadConfig reads .env (if present) and then the environment
func LoadConfig() api.Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return api.Config{
		HTTPPort:         getEnv("HTTP_PORT", ":8080"),
		DatabaseType:     getEnv("DB_TYPE", "sqlite"),
		DatabasePath:     getEnv("DB_PATH", "palettes.db"),
		DatabaseHost:     getEnv("DB_HOST", "localhost"),
		DatabaseUser:     getEnv("DB_USER", "postgres"),
		DatabasePassword: getEnv("DB_PASSWORD", ""),
		DatabaseName:     getEnv("DB_NAME", "palettes"),
		SSLMode:          getEnv("SSL_MODE", "disable"),
		JwtSecret:        getEnv("JWT_SECRET", defaultJwtSecret),
		JwtTokenDuration: getEnvInt("JWT_TOKEN_DURATION", 2592000), // 30 days
		AllowedOrigins:   getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		RetentionDays:    getEnvInt("RETENTION_DAYS", 0),
		ConversionTool:   getEnv("CONVERSION_TOOL", assembler.DefaultTool),
		MaxBodyBytes:     int64(getEnvInt("MAX_BODY_BYTES", 4<<20)),
		DevMode:          getEnvBool("DEV_MODE", true),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvSlice(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
