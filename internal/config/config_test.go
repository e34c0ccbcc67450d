package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, uint32(32), cfg.Argon2.KeyLength)
	assert.Equal(t, "50000", cfg.SeedInvestor.String())
	assert.Equal(t, "10000", cfg.SeedEntrepreneur.String())
	assert.Equal(t, "http://localhost:8080/api/v1/documents/shared", cfg.ShareBaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("LEDGER_SEED_INVESTOR", "1250.50")
	t.Setenv("JWT_EXPIRY_HOURS", "2")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "redis", cfg.StorageDriver)
	assert.Equal(t, "1250.5", cfg.SeedInvestor.String())
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
}

func TestLoadOTPConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadOTPConfig()
		assert.Equal(t, OTPModeDemo, cfg.Mode)
		assert.Equal(t, 6, cfg.CodeLength)
		assert.Equal(t, "123456", cfg.DemoCode)
		assert.Equal(t, 10*time.Minute, cfg.CodeTTL)
	})

	t.Run("env overrides and bad values fall back", func(t *testing.T) {
		t.Setenv("OTP_MODE", OTPModeRedis)
		t.Setenv("OTP_TTL", "90s")
		t.Setenv("OTP_LENGTH", "six")

		cfg := LoadOTPConfig()
		assert.Equal(t, OTPModeRedis, cfg.Mode)
		assert.Equal(t, 90*time.Second, cfg.CodeTTL)
		assert.Equal(t, 6, cfg.CodeLength)
	})
}
