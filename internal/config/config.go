package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default Overpass mirror pool. Independent operators, tried in order.
var defaultOverpassURLs = []string{
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass-api.de/api/interpreter",
	"https://overpass.openstreetmap.ru/api/interpreter",
}

type AppConfig struct {
	// OpenWeather settings.
	OpenWeatherAPIKey string
	UseOneCall        bool   // try One Call 3.0 first, fall back to 2.5 on any error
	Units             string // metric | imperial | standard
	Lang              string

	// Geocoding.
	NominatimURL string
	Country      string // appended to free-text queries to bias results

	// Overpass mirror pool, in failover order.
	OverpassURLs []string

	// Outbound identification required by the Nominatim/Overpass usage policies.
	UserAgent string

	// CacheTTL bounds how long memoized geocode/POI/weather results live.
	CacheTTL time.Duration

	// Weather tile overlays for the map frontend.
	EnableWeatherTiles bool
	TileOpacity        float64

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY"))
	cfg.UseOneCall = getenvBool("OPENWEATHER_USE_ONECALL", true)
	cfg.Units = getenvDefault("OPENWEATHER_UNITS", "metric")
	cfg.Lang = getenvDefault("OPENWEATHER_LANG", "vi")

	switch cfg.Units {
	case "metric", "imperial", "standard":
	default:
		return nil, fmt.Errorf("invalid OPENWEATHER_UNITS %q: must be metric, imperial or standard", cfg.Units)
	}

	cfg.NominatimURL = getenvDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search")
	cfg.Country = getenvDefault("GEOCODE_COUNTRY", "Vietnam")

	if v := os.Getenv("OVERPASS_URLS"); v != "" {
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.OverpassURLs = append(cfg.OverpassURLs, u)
			}
		}
	}
	if len(cfg.OverpassURLs) == 0 {
		cfg.OverpassURLs = defaultOverpassURLs
	}

	cfg.UserAgent = getenvDefault("USER_AGENT", "VN-POI-Map-Plus/1.2 (contact: example@gmail.com)")

	ttlSec := getenvInt("CACHE_TTL", 600)
	if ttlSec <= 0 {
		return nil, fmt.Errorf("invalid CACHE_TTL: must be a positive number of seconds")
	}
	cfg.CacheTTL = time.Duration(ttlSec) * time.Second

	cfg.EnableWeatherTiles = getenvBool("ENABLE_WEATHER_TILES", true)
	cfg.TileOpacity = getenvFloat("WEATHER_TILE_OPACITY", 0.55)
	if cfg.TileOpacity < 0 || cfg.TileOpacity > 1 {
		return nil, fmt.Errorf("invalid WEATHER_TILE_OPACITY: must be between 0 and 1")
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "20s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

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

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true")
	}
	return def
}
