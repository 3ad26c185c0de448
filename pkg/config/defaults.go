// Package config provides centralized default values for the portfolio backend
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database Configuration
	DBDriver                 string
	DBDataSource             string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int

	// Auth Configuration
	JWTSecret       string
	AdminEmail      string
	AdminPassword   string
	SessionTokenTTL time.Duration

	// Media Configuration
	MediaBasePath string
	MediaBaseURL  string
	UploadPrefix  string

	// State Configuration
	StateFilePath string

	// Editor Configuration
	ToastDuration time.Duration

	// Email Configuration
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	NotifyEmailTo string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "3001")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database Configuration
	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBDataSource = getEnvString("DB_DATA_SOURCE", "portfolio.db")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)

	// Auth Configuration
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminEmail = getEnvString("ADMIN_EMAIL", "")
	AdminPassword = getEnvString("ADMIN_PASSWORD", "")
	SessionTokenTTL = getEnvDuration("SESSION_TOKEN_TTL", 24*time.Hour)

	// Media Configuration
	MediaBasePath = getEnvString("MEDIA_BASE_PATH", "media")
	MediaBaseURL = getEnvString("MEDIA_BASE_URL", "http://localhost:3001")
	UploadPrefix = getEnvString("UPLOAD_PREFIX", "/uploads")

	// State Configuration
	StateFilePath = getEnvString("STATE_FILE_PATH", "state.json")

	// Editor Configuration
	ToastDuration = getEnvDuration("TOAST_DURATION", 3*time.Second)

	// Email Configuration
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")
	EmailFrom = getEnvString("EMAIL_FROM", "noreply@portfolio.local")
	EmailFromName = getEnvString("EMAIL_FROM_NAME", "Portfolio")
	NotifyEmailTo = getEnvString("NOTIFY_EMAIL_TO", "")
}
