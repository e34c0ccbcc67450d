package config

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port             string
	StorageDriver    string
	JWTSecret        string
	JWTExpiry        time.Duration
	Argon2           Argon2Config
	SeedInvestor     decimal.Decimal
	SeedEntrepreneur decimal.Decimal
	ShareBaseURL     string
}

type Argon2Config struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength int
}

var envBindings = map[string]string{
	"server.port":              "PORT",
	"storage.driver":           "STORAGE_DRIVER",
	"database.host":            "DATABASE_HOST",
	"database.port":            "DATABASE_PORT",
	"database.user":            "DATABASE_USER",
	"database.password":        "DATABASE_PASSWORD",
	"database.name":            "DATABASE_NAME",
	"database.ssl_mode":        "DATABASE_SSL_MODE",
	"redis.host":               "REDIS_HOST",
	"redis.port":               "REDIS_PORT",
	"redis.password":           "REDIS_PASSWORD",
	"redis.db":                 "REDIS_DB",
	"jwt.secret_key":           "JWT_SECRET_KEY",
	"jwt.expiry_hours":         "JWT_EXPIRY_HOURS",
	"argon2.time":              "ARGON2_TIME",
	"argon2.memory":            "ARGON2_MEMORY",
	"argon2.threads":           "ARGON2_THREADS",
	"argon2.key_length":        "ARGON2_KEY_LENGTH",
	"argon2.salt_length":       "ARGON2_SALT_LENGTH",
	"ledger.seed_investor":     "LEDGER_SEED_INVESTOR",
	"ledger.seed_entrepreneur": "LEDGER_SEED_ENTREPRENEUR",
	"documents.share_base_url": "DOCUMENT_SHARE_BASE_URL",
}

// Load reads configFile (usually .env) and the environment into viper and
// returns the resolved application settings. A missing file is not an error.
func Load(configFile string) *AppConfig {
	viper.SetConfigFile(configFile)
	viper.AutomaticEnv()

	for key, env := range envBindings {
		viper.BindEnv(key, env)
	}

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("jwt.secret_key", "change-me")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)
	viper.SetDefault("ledger.seed_investor", "50000")
	viper.SetDefault("ledger.seed_entrepreneur", "10000")
	viper.SetDefault("documents.share_base_url", "http://localhost:8080/api/v1/documents/shared")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	return &AppConfig{
		Port:          viper.GetString("server.port"),
		StorageDriver: viper.GetString("storage.driver"),
		JWTSecret:     viper.GetString("jwt.secret_key"),
		JWTExpiry:     time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour,
		Argon2: Argon2Config{
			Time:       uint32(viper.GetInt("argon2.time")),
			Memory:     uint32(viper.GetInt("argon2.memory")),
			Threads:    uint8(viper.GetInt("argon2.threads")),
			KeyLength:  uint32(viper.GetInt("argon2.key_length")),
			SaltLength: viper.GetInt("argon2.salt_length"),
		},
		SeedInvestor:     seedAmount("ledger.seed_investor"),
		SeedEntrepreneur: seedAmount("ledger.seed_entrepreneur"),
		ShareBaseURL:     viper.GetString("documents.share_base_url"),
	}
}

func seedAmount(key string) decimal.Decimal {
	v, err := decimal.NewFromString(viper.GetString(key))
	if err != nil {
		log.Printf("Invalid %s %q, using 0: %v", key, viper.GetString(key), err)
		return decimal.Zero
	}
	return v
}
