package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	SaltRound int

	JWTKey             string // signs access tokens
	JWTRefreshKey      string // signs refresh tokens
	AccessTokenTTLMin  int    // access token lifetime in minutes
	RefreshTokenTTLDay int    // refresh token lifetime in days

	EmailSender string
	Password    string // SMTP Password
	FrontendURL string // used in verification/reset links

	MediaApiURL string // remote media upload API; empty means local storage
	MediaApiKey string
	UploadDir   string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "elearn"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		JWTKey:             getEnv("JWT_ACCESS_SECRET", "defaultSecret"),
		JWTRefreshKey:      getEnv("JWT_REFRESH_SECRET", "defaultRefreshSecret"),
		AccessTokenTTLMin:  getEnvInt("ACCESS_TOKEN_TTL_MIN", 60),
		RefreshTokenTTLDay: getEnvInt("REFRESH_TOKEN_TTL_DAYS", 7),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		MediaApiURL: getEnv("MEDIA_API_URL", ""),
		MediaApiKey: getEnv("MEDIA_API_KEY", ""),
		UploadDir:   getEnv("UPLOAD_DIR", "./public/uploads"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_ACCESS_SECRET. Update it in your environment.")
	}
	if AppConfig.JWTRefreshKey == "defaultRefreshSecret" {
		log.Println("Warning: Using default JWT_REFRESH_SECRET. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
