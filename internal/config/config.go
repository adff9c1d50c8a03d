package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Defaults are the named fallback values the dashboard relies on.
type Defaults struct {
	// City is used when no location is given or geolocation lookup fails.
	City string

	// HourlySlots is the length of the hourly strip (3-hour spacing).
	HourlySlots int

	// RecentSearches bounds the search history.
	RecentSearches int

	Backgrounds weather.Backgrounds
}

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// HTTPTimeout bounds each outbound call to the weather API.
	HTTPTimeout time.Duration

	// Client-side request budget toward the weather API.
	RateLimitRPS   float64
	RateLimitBurst int

	// PreferencesDB is the sqlite path for history and favorites. Empty keeps them in memory.
	PreferencesDB string

	// ObservationInterval controls how often favorites' current conditions are recorded.
	ObservationInterval time.Duration

	// Observation log retention.
	StoreMaxHistory int           // max number of observations per city (0 = unlimited)
	StoreMaxAge     time.Duration // max age of observations (0 = unlimited)

	Defaults Defaults

	Port string
}

// DefaultBackground is shown when no image matches the current condition.
const DefaultBackground = "https://images.pexels.com/photos/1118873/pexels-photo-1118873.jpeg"

// DefaultBackgrounds returns the condition category to image table.
func DefaultBackgrounds() weather.Backgrounds {
	clearSky := weather.DayNightImage{
		Day:   "https://images.pexels.com/photos/912110/pexels-photo-912110.jpeg",
		Night: "https://images.pexels.com/photos/1257860/pexels-photo-1257860.jpeg",
	}
	clouds := weather.DayNightImage{
		Day:   "https://images.pexels.com/photos/3560044/pexels-photo-3560044.jpeg",
		Night: "https://images.pexels.com/photos/2885320/pexels-photo-2885320.jpeg",
	}
	rain := weather.DayNightImage{
		Day:   "https://images.pexels.com/photos/1463530/pexels-photo-1463530.jpeg",
		Night: "https://images.pexels.com/photos/1906932/pexels-photo-1906932.jpeg",
	}
	storm := weather.DayNightImage{
		Day:   "https://images.pexels.com/photos/1162251/pexels-photo-1162251.jpeg",
		Night: "https://images.pexels.com/photos/1162251/pexels-photo-1162251.jpeg",
	}
	snow := weather.DayNightImage{
		Day:   "https://images.pexels.com/photos/688660/pexels-photo-688660.jpeg",
		Night: "https://images.pexels.com/photos/773594/pexels-photo-773594.jpeg",
	}
	mist := weather.DayNightImage{
		Day:   "https://images.pexels.com/photos/1743392/pexels-photo-1743392.jpeg",
		Night: "https://images.pexels.com/photos/167699/pexels-photo-167699.jpeg",
	}

	return weather.Backgrounds{
		Default: DefaultBackground,
		ByCategory: map[string]weather.DayNightImage{
			"Clear":        clearSky,
			"Clouds":       clouds,
			"Rain":         rain,
			"Drizzle":      rain,
			"Thunderstorm": storm,
			"Snow":         snow,
			"Mist":         mist,
			"Fog":          mist,
			"Haze":         mist,
		},
	}
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// OpenWeatherMap's free tier allows 60 calls per minute.
	rps, err := strconv.ParseFloat(getenvDefault("RATE_LIMIT_RPS", "1"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q", os.Getenv("RATE_LIMIT_RPS"))
	}
	cfg.RateLimitRPS = rps

	burst, err := getenvInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}
	if burst < 1 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %d: must be at least 1", burst)
	}
	cfg.RateLimitBurst = burst

	cfg.PreferencesDB = os.Getenv("PREFERENCES_DB")

	interval, err := time.ParseDuration(getenvDefault("OBSERVATION_INTERVAL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OBSERVATION_INTERVAL: %w", err)
	}
	cfg.ObservationInterval = interval

	// roughly 24h at 30-minute intervals
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 48); err != nil {
		return nil, err
	}

	maxAge, err := time.ParseDuration(getenvDefault("STORE_MAX_AGE", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	slots, err := getenvInt("HOURLY_SLOTS", 8)
	if err != nil {
		return nil, err
	}

	cfg.Defaults = Defaults{
		City:           getenvDefault("DEFAULT_CITY", "London"),
		HourlySlots:    slots,
		RecentSearches: 5,
		Backgrounds:    DefaultBackgrounds(),
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// WeatherSettings projects the defaults onto the service settings.
func (c *AppConfig) WeatherSettings() weather.Settings {
	return weather.Settings{
		DefaultCity: c.Defaults.City,
		HourlySlots: c.Defaults.HourlySlots,
		Backgrounds: c.Defaults.Backgrounds,
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
