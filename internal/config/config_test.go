package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.OpenWeatherAPIKey)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Minute, cfg.ObservationInterval)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, 48, cfg.StoreMaxHistory)
	assert.Equal(t, "London", cfg.Defaults.City)
	assert.Equal(t, 8, cfg.Defaults.HourlySlots)
	assert.Equal(t, 5, cfg.Defaults.RecentSearches)
	assert.Equal(t, DefaultBackground, cfg.Defaults.Backgrounds.Default)
	assert.Equal(t, "8080", cfg.Port)

	s := cfg.WeatherSettings()
	assert.Equal(t, "London", s.DefaultCity)
	assert.Equal(t, cfg.Defaults.Backgrounds.ByCategory["Fog"], s.Backgrounds.ByCategory["Mist"])
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEFAULT_CITY", "Tokyo")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("STORE_MAX_HISTORY", "96")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("PREFERENCES_DB", "/tmp/prefs.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Tokyo", cfg.Defaults.City)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, 96, cfg.StoreMaxHistory)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.Equal(t, "/tmp/prefs.db", cfg.PreferencesDB)
}

func TestLoadInvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"HTTP_TIMEOUT":         "soon",
		"OBSERVATION_INTERVAL": "10",
		"STORE_MAX_AGE":        "forever",
		"RATE_LIMIT_RPS":       "-1",
		"RATE_LIMIT_BURST":     "0",
		"STORE_MAX_HISTORY":    "not-a-number",
		"HOURLY_SLOTS":         "eight",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
