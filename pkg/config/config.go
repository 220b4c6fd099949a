package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	SchoolAPI SchoolAPIConfig
	Console   ConsoleConfig
	CORS      CORSConfig
	Log       LogConfig
	Exports   ExportsConfig
}

// SchoolAPIConfig points the adapter at the upstream school API.
type SchoolAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ConsoleConfig tunes page-instance state handling.
type ConsoleConfig struct {
	NotificationTTL time.Duration
	SessionTTL      time.Duration
	SessionSweep    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportsConfig gates the list export endpoints.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.SchoolAPI = SchoolAPIConfig{
		BaseURL: strings.TrimRight(v.GetString("SCHOOL_API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("SCHOOL_API_TIMEOUT"), 10*time.Second),
	}

	cfg.Console = ConsoleConfig{
		NotificationTTL: parseDuration(v.GetString("NOTIFICATION_TTL"), 6*time.Second),
		SessionTTL:      parseDuration(v.GetString("SESSION_TTL"), 30*time.Minute),
		SessionSweep:    parseDuration(v.GetString("SESSION_SWEEP_INTERVAL"), 5*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("SCHOOL_API_BASE_URL", "http://localhost:8000")
	v.SetDefault("SCHOOL_API_TIMEOUT", "10s")

	v.SetDefault("NOTIFICATION_TTL", "6s")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "5m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_EXPORTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
