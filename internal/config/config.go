package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// Optional credentials. Empty values disable the feature.
	MapTilesAPIKey        string
	GoogleGeocodingAPIKey string

	Port string

	// HTTPTimeout bounds each outbound call; RequestTimeout bounds a whole
	// inbound request including its fan-out.
	HTTPTimeout    time.Duration
	RequestTimeout time.Duration

	// Outbound rate limit shared by all upstream endpoints (0 = unlimited).
	UpstreamRPS   float64
	UpstreamBurst int

	// HealthProbeInterval controls the background upstream probe (0 = disabled).
	HealthProbeInterval time.Duration
	HealthProbeLat      float64
	HealthProbeLon      float64

	LogLevel string

	// DotEnvErr is set when no .env file could be loaded. It is informational.
	DotEnvErr error
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults. A missing API key is not an error here; requests
// report it instead.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := godotenv.Load(); err != nil {
		cfg.DotEnvErr = err
	}

	cfg.OpenWeatherAPIKey = strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY"))
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org")
	cfg.MapTilesAPIKey = strings.TrimSpace(os.Getenv("MAP_TILES_API_KEY"))
	cfg.GoogleGeocodingAPIKey = strings.TrimSpace(os.Getenv("GOOGLE_GEOCODING_API_KEY"))
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getenvDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HealthProbeInterval, err = getenvDuration("HEALTH_PROBE_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.UpstreamRPS, err = getenvFloat("UPSTREAM_RPS", 1); err != nil {
		return nil, err
	}
	cfg.UpstreamBurst = getenvInt("UPSTREAM_BURST", 10)

	// Probe London by default.
	if cfg.HealthProbeLat, err = getenvFloat("HEALTH_PROBE_LAT", 51.5074); err != nil {
		return nil, err
	}
	if cfg.HealthProbeLon, err = getenvFloat("HEALTH_PROBE_LON", -0.1278); err != nil {
		return nil, err
	}
	if cfg.HealthProbeLat < -90 || cfg.HealthProbeLat > 90 || cfg.HealthProbeLon < -180 || cfg.HealthProbeLon > 180 {
		return nil, fmt.Errorf("health probe coordinate out of range: %v,%v", cfg.HealthProbeLat, cfg.HealthProbeLon)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}
	return d, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
