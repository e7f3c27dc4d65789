package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type AppConfig struct {
	ServerPort   string
	DSN          string
	Logger       *zap.SugaredLogger
	JWTSecret    string
	TokenTTL     time.Duration
	QuotaWaitMax time.Duration
}

// Load reads the environment (optionally from a .env file) and builds the
// process configuration. Everything downstream receives this by injection;
// there is no package-level config so tests can carry isolated instances.
func Load() (*AppConfig, error) {
	godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	dsn := fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v", os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	logger := zap.Must(zap.NewProduction()).Sugar()

	return &AppConfig{
		ServerPort:   os.Getenv("PORT"),
		DSN:          dsn,
		Logger:       logger,
		JWTSecret:    secret,
		TokenTTL:     time.Hour,
		QuotaWaitMax: 5 * time.Second,
	}, nil
}
