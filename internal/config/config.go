package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from CHESS_* environment variables.
type Config struct {
	Addr           string        `envconfig:"ADDR" default:":3000"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	TickInterval   time.Duration `envconfig:"TICK_INTERVAL" default:"1s"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool          `envconfig:"LOG_DEVELOPMENT" default:"false"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("CHESS", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
