// Package config loads process settings from the environment, an optional
// .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/terraincognita07/ruralhealth/internal/security"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	minSecretKeyLength = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port          string
	StorageDriver string
	DBPath        string
	DatabaseURL   string

	SecretKey       string
	SecretGenerated bool
	TokenTTL        time.Duration
	EnforceAuth     bool

	AdminUsername string
	AdminEmail    string
	AdminPassword string

	LogLevel    string
	LogFormat   string
	CORSOrigins string
	TimeZone    string
}

// Load reads the configuration. Environment variables win over the config
// file, which wins over the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	reader := viper.New()
	setDefaults(reader)
	reader.AutomaticEnv()

	configName := "config"
	if name := strings.TrimSpace(os.Getenv("CONFIG_NAME")); name != "" {
		configName = name
	}
	reader.SetConfigName(configName)
	reader.AddConfigPath("config")
	reader.AddConfigPath(".")
	if err := reader.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromReader(reader)
}

func setDefaults(reader *viper.Viper) {
	reader.SetDefault("PORT", "8080")
	reader.SetDefault("STORAGE_DRIVER", DriverMemory)
	reader.SetDefault("DB_PATH", filepath.Join("data", "ruralhealth.db"))
	reader.SetDefault("DATABASE_URL", "")
	reader.SetDefault("SECRET_KEY", "")
	reader.SetDefault("TOKEN_TTL", "168h")
	reader.SetDefault("ENFORCE_AUTH", false)
	reader.SetDefault("ADMIN_USERNAME", "admin")
	reader.SetDefault("ADMIN_EMAIL", "admin@ruralhealthtracker.com")
	reader.SetDefault("ADMIN_PASSWORD", "admin123")
	reader.SetDefault("LOG_LEVEL", "info")
	reader.SetDefault("LOG_FORMAT", "text")
	reader.SetDefault("CORS_ORIGINS", "*")
	reader.SetDefault("TZ", "UTC")
}

func fromReader(reader *viper.Viper) (*Config, error) {
	cfg := &Config{
		StorageDriver: strings.ToLower(strings.TrimSpace(reader.GetString("STORAGE_DRIVER"))),
		DBPath:        strings.TrimSpace(reader.GetString("DB_PATH")),
		DatabaseURL:   strings.TrimSpace(reader.GetString("DATABASE_URL")),
		TokenTTL:      reader.GetDuration("TOKEN_TTL"),
		EnforceAuth:   reader.GetBool("ENFORCE_AUTH"),
		AdminUsername: strings.TrimSpace(reader.GetString("ADMIN_USERNAME")),
		AdminEmail:    strings.TrimSpace(reader.GetString("ADMIN_EMAIL")),
		AdminPassword: reader.GetString("ADMIN_PASSWORD"),
		LogLevel:      strings.ToLower(strings.TrimSpace(reader.GetString("LOG_LEVEL"))),
		LogFormat:     strings.ToLower(strings.TrimSpace(reader.GetString("LOG_FORMAT"))),
		CORSOrigins:   strings.TrimSpace(reader.GetString("CORS_ORIGINS")),
		TimeZone:      strings.TrimSpace(reader.GetString("TZ")),
	}

	port, err := resolvePort(reader.GetString("PORT"))
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be memory, sqlite or postgres, got %q", cfg.StorageDriver)
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be a positive duration, got %q", reader.GetString("TOKEN_TTL"))
	}

	secret, generated, err := resolveSecretKey(reader.GetString("SECRET_KEY"))
	if err != nil {
		return nil, err
	}
	cfg.SecretKey = secret
	cfg.SecretGenerated = generated

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("PORT must be an integer between 1 and 65535, got %q", raw)
	}
	return port, nil
}

// resolveSecretKey generates a key when none is configured. Tokens signed
// with a generated key stop verifying after a restart.
func resolveSecretKey(raw string) (string, bool, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		generated, err := security.NewSecretKey()
		if err != nil {
			return "", false, fmt.Errorf("generate SECRET_KEY: %w", err)
		}
		return generated, true, nil
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", false, errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", false, fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, false, nil
}
