package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name         string `envconfig:"APP_NAME" default:"invoi"`
		ShareBaseURL string `envconfig:"SHARE_BASE_URL" default:"https://invoi.xyz/"`
		LogFile      string `envconfig:"LOG_FILE"`
	}

	Storage struct {
		Driver string `envconfig:"STORAGE_DRIVER" default:"file"`
		// Dir defaults to the user config directory when empty.
		Dir string `envconfig:"STORAGE_DIR"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"invoi"`
	}

	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
		Prefix   string `envconfig:"REDIS_PREFIX" default:"invoi:"`
	}

	Editor struct {
		SaveDelay   time.Duration `envconfig:"SAVE_DELAY" default:"400ms"`
		SaveTimeout time.Duration `envconfig:"SAVE_TIMEOUT" default:"5s"`
	}

	Preview struct {
		Margin float64 `envconfig:"PREVIEW_MARGIN" default:"32"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"./exports"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
