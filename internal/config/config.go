package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config содержит настройки приложения
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Storage       StorageConfig
	Notifications NotificationsConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// AuthConfig - настройки выдачи токенов
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// OTPTTL - срок действия кода сброса пароля
	OTPTTL time.Duration
	// OTPMaxAttempts - число неверных вводов кода до его отзыва
	OTPMaxAttempts int
}

// StorageConfig - настройки хранилища загруженных документов
type StorageConfig struct {
	DocumentsDir string
}

// NotificationsConfig - настройки уведомлений
type NotificationsConfig struct {
	// AdminRecipientID получает копии административных уведомлений
	AdminRecipientID int64
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "ems"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "ems.db"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
			TokenTTL:       getEnvDuration("JWT_TTL", 60*time.Minute),
			OTPTTL:         getEnvDuration("OTP_TTL", 15*time.Minute),
			OTPMaxAttempts: int(getEnvInt64("OTP_MAX_ATTEMPTS", 5)),
		},
		Storage: StorageConfig{
			DocumentsDir: getEnv("DOCUMENTS_DIR", "/tmp/ems_documents"),
		},
		Notifications: NotificationsConfig{
			AdminRecipientID: getEnvInt64("ADMIN_RECIPIENT_ID", 1),
		},
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
