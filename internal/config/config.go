package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config reúne todo lo que lee el servicio desde env.
// Vacío en DB_DSN / REDIS_ADDR / AUTH_BASE_URL significa modo dev (in-memory, hub local, X-Debug-User-ID).
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	DBDSN string `envconfig:"DB_DSN" default:""`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`

	AuthBaseURL string `envconfig:"AUTH_BASE_URL" default:""`
	AuthAPIKey  string `envconfig:"AUTH_API_KEY" default:""`

	UploadURL        string `envconfig:"UPLOAD_URL" default:""`
	UploadAPIKey     string `envconfig:"UPLOAD_API_KEY" default:""`
	UploadRatePerMin int    `envconfig:"UPLOAD_RATE_PER_MIN" default:"20"`

	Timezone    string        `envconfig:"TIMEZONE" default:"UTC"`
	NotifySweep time.Duration `envconfig:"NOTIFY_SWEEP" default:"1m"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	AppName   string `envconfig:"APP_NAME" default:"pet-tracker"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("config: PORT is empty")
	}
	if c.UploadRatePerMin <= 0 {
		return fmt.Errorf("config: UPLOAD_RATE_PER_MIN must be > 0")
	}
	if c.NotifySweep < time.Second {
		return fmt.Errorf("config: NOTIFY_SWEEP must be >= 1s")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resuelve TIMEZONE. Las fechas "YYYY-MM-DD" del calendario se calculan en esta zona.
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", tz, err)
	}
	return loc, nil
}

func (c Config) DevAuth() bool {
	return strings.TrimSpace(c.AuthBaseURL) == ""
}
