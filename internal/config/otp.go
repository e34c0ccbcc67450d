package config

import (
	"os"
	"strconv"
	"time"
)

// OTP modes
const (
	OTPModeDemo  = "demo"
	OTPModeRedis = "redis"
)

type OTPConfig struct {
	Mode       string
	CodeLength int
	CodeTTL    time.Duration
	DemoCode   string
	KeyPrefix  string
}

func LoadOTPConfig() *OTPConfig {
	return &OTPConfig{
		Mode:       getEnv("OTP_MODE", OTPModeDemo),
		CodeLength: getEnvAsInt("OTP_LENGTH", 6),
		CodeTTL:    getEnvAsDuration("OTP_TTL", 10*time.Minute),
		DemoCode:   getEnv("OTP_DEMO_CODE", "123456"),
		KeyPrefix:  getEnv("OTP_KEY_PREFIX", "otp:"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
