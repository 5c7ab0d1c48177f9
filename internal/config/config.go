package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mr1hm/go-astrosky/internal/feeds"
)

type Config struct {
	Server    ServerConfig
	GRPC      GRPCConfig
	HTTP      HTTPConfig
	Worker    WorkerConfig
	Feeds     FeedsConfig
	DB        DatabaseConfig
	Logging   LoggingConfig
	Locations LocationsConfig
}

type GRPCConfig struct {
	Enabled bool
	Port    int
}

type ServerConfig struct {
	Host string
	Port int
}

type HTTPConfig struct {
	CORSOrigins  []string
	RateLimitRPS float64
}

type WorkerConfig struct {
	SatelliteWorkers int
}

type FeedsConfig struct {
	N2YOAPIKey       string
	N2YOURL          string
	NOAAKpURL        string
	OpenMeteoURL     string
	Timeout          time.Duration
	WeatherTimeout   time.Duration
	KpPollInterval   time.Duration
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

type LocationsConfig struct {
	// Path is empty when the platform config dir is used.
	Path string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		GRPC: GRPCConfig{
			Enabled: getEnvBool("GRPC_ENABLED", true),
			Port:    getEnvInt("GRPC_PORT", 50051),
		},
		HTTP: HTTPConfig{
			CORSOrigins:  getEnvList("CORS_ORIGINS", []string{"*"}),
			RateLimitRPS: getEnvFloat("RATE_LIMIT_RPS", 5),
		},
		Worker: WorkerConfig{
			SatelliteWorkers: getEnvInt("SATELLITE_WORKERS", 4),
		},
		Feeds: FeedsConfig{
			N2YOAPIKey:       getEnv("N2YO_API_KEY", ""),
			N2YOURL:          getEnv("N2YO_URL", feeds.DefaultN2YOURL),
			NOAAKpURL:        getEnv("NOAA_KP_URL", feeds.DefaultNOAAKpURL),
			OpenMeteoURL:     getEnv("OPEN_METEO_URL", feeds.DefaultOpenMeteoURL),
			Timeout:          getEnvDuration("FEED_TIMEOUT", feeds.DefaultTimeout),
			WeatherTimeout:   getEnvDuration("WEATHER_TIMEOUT", feeds.DefaultWeatherTimeout),
			KpPollInterval:   getEnvDuration("KP_POLL_INTERVAL", 15*time.Minute),
			BreakerThreshold: getEnvInt("BREAKER_THRESHOLD", 3),
			BreakerCooldown:  getEnvDuration("BREAKER_COOLDOWN", time.Minute),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/astrosky.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Locations: LocationsConfig{
			Path: getEnv("LOCATIONS_PATH", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.GRPC.Port < 1 || c.GRPC.Port > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.GRPC.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.HTTP.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.HTTP.RateLimitRPS)
	}
	if err := checkTimeout("feed timeout", c.Feeds.Timeout); err != nil {
		return err
	}
	if err := checkTimeout("weather timeout", c.Feeds.WeatherTimeout); err != nil {
		return err
	}
	if c.Feeds.KpPollInterval < time.Minute {
		return fmt.Errorf("Kp poll interval must be at least 1 minute")
	}
	if c.Feeds.BreakerThreshold < 1 {
		return fmt.Errorf("breaker threshold must be at least 1, got %d", c.Feeds.BreakerThreshold)
	}
	if c.Feeds.BreakerCooldown <= 0 {
		return fmt.Errorf("breaker cooldown must be positive")
	}
	if c.Worker.SatelliteWorkers < 1 {
		return fmt.Errorf("satellite workers must be at least 1, got %d", c.Worker.SatelliteWorkers)
	}

	return nil
}

func checkTimeout(name string, d time.Duration) error {
	if d < time.Second || d > 30*time.Second {
		return fmt.Errorf("%s must be between 1s and 30s, got %s", name, d)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
