package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Email        EmailConfig
	Confirmation ConfirmationConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	PageSize int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// MinSecretLength is the shortest accepted signing key, in bytes.
const MinSecretLength = 32

type ConfirmationConfig struct {
	Secret string
	TTL    time.Duration
}

// LoadConfig reads path (a dotenv file, optional) and then the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "review-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_ACCESS_TTL", "24h")
	v.SetDefault("JWT_REFRESH_TTL", "720h")
	v.SetDefault("CONFIRMATION_TTL", "72h")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_FROM", "noreply@review-api.local")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Port:     v.GetString("PORT"),
			Debug:    v.GetBool("DEBUG"),
			LogPath:  v.GetString("LOG_PATH"),
			PageSize: v.GetInt("PAGE_SIZE"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			AccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
		},
		Email: EmailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("EMAIL_FROM"),
		},
		Confirmation: ConfirmationConfig{
			Secret: v.GetString("CONFIRMATION_SECRET"),
			TTL:    v.GetDuration("CONFIRMATION_TTL"),
		},
	}

	if config.Confirmation.Secret == "" {
		config.Confirmation.Secret = config.JWT.Secret
	}

	if err := checkSecret("JWT_SECRET", config.JWT.Secret); err != nil {
		return nil, err
	}
	if err := checkSecret("CONFIRMATION_SECRET", config.Confirmation.Secret); err != nil {
		return nil, err
	}

	return config, nil
}

func checkSecret(key, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s is not set", key)
	}
	if len(secret) < MinSecretLength {
		return fmt.Errorf("%s must be at least %d bytes", key, MinSecretLength)
	}
	return nil
}
