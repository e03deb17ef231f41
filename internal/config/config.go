package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	Redis    *Redisconfig
	Srv      *Serviceconfig
	App      *Appconfig
	Log      *Loggerconfig
}

type DBconfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	MaxRetries int
}

type RabbitMqconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Redisconfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type Serviceconfig struct {
	AuthServicePort   string
	DriverServicePort string
	OrderServicePort  string
	AdminServicePort  string
}

type Appconfig struct {
	JwtSecret   string
	DocumentDir string
}

type Loggerconfig struct {
	Level string
}

func New() (*Config, error) {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			slog.Warn("using default value", "key", key, "default", def)
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) int {
		valStr := os.Getenv(key)
		if valStr == "" {
			slog.Warn("using default value", "key", key, "default", def)
			return def
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			slog.Warn("cannot parse as int, using default value", "key", key, "default", def)
			return def
		}
		return val
	}

	cnf := &Config{
		DB: &DBconfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "dashdrop_user"),
			Password:   getEnv("DB_PASSWORD", "dashdrop_pass"),
			Database:   getEnv("DB_NAME", "dashdrop_db"),
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 5),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		},
		Redis: &Redisconfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Srv: &Serviceconfig{
			AuthServicePort:   getEnv("AUTH_SERVICE_PORT", "3000"),
			DriverServicePort: getEnv("DRIVER_SERVICE_PORT", "3001"),
			OrderServicePort:  getEnv("ORDER_SERVICE_PORT", "3002"),
			AdminServicePort:  getEnv("ADMIN_SERVICE_PORT", "3004"),
		},
		App: &Appconfig{
			JwtSecret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
			DocumentDir: getEnv("DOCUMENT_DIR", "uploads/documents"),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}
