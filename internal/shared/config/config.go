package config

import (
	"os"
	"strconv"
	"time"
)

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type PayrollConfig struct {
	// GenerationWorkers bounds the per-employee tasks running in one batch.
	GenerationWorkers int
	// GenerateRatePerSecond and GenerateRateBurst throttle the generate endpoint per user.
	GenerateRatePerSecond float64
	GenerateRateBurst     int
}

type Config struct {
	Port               string
	Database           DatabaseConfig
	RedisAddr          string
	KafkaBroker        string
	KafkaConsumerGroup string
	JWTSecret          string
	OutboxPollInterval time.Duration
	Payroll            PayrollConfig
}

// Load reads the process environment. Call godotenv.Load before it so a local
// .env file is honoured.
func Load() Config {
	return Config{
		Port: getEnv("PORT", "3000"),
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "go-payroll-payslip-batch"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		OutboxPollInterval: getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		Payroll: PayrollConfig{
			GenerationWorkers:     getInt("PAYROLL_GENERATION_WORKERS", 4),
			GenerateRatePerSecond: getFloat("GENERATE_RATE_PER_SECOND", 1),
			GenerateRateBurst:     getInt("GENERATE_RATE_BURST", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
