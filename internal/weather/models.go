package weather

import (
	"fmt"
	"time"
)

// Condition identifies the sky condition of a reading as reported by the data source.
type Condition struct {
	Code        int    `json:"code"`
	Category    string `json:"category"`
	Description string `json:"description"`
	IconID      string `json:"icon"`
}

// Location identifies a place either by city name or by coordinates.
// When both are present the coordinates win.
type Location struct {
	City string   `json:"city,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// HasCoords reports whether the location carries a coordinate pair.
func (l Location) HasCoords() bool {
	return l.Lat != nil && l.Lon != nil
}

// Key returns a canonical string key for logging and indexing.
func (l Location) Key() string {
	if l.HasCoords() {
		return fmt.Sprintf("%.4f,%.4f", *l.Lat, *l.Lon)
	}
	return l.City
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentWeather is the "current conditions" record for one place.
// Temperatures are Celsius, wind speed m/s, visibility metres.
type CurrentWeather struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Coord       Coordinates `json:"coord"`
	Condition   Condition   `json:"condition"`
	Temperature float64     `json:"temperature"`
	FeelsLike   float64     `json:"feelsLike"`
	TempMin     float64     `json:"tempMin"`
	TempMax     float64     `json:"tempMax"`
	Pressure    float64     `json:"pressureHpa"`
	Humidity    float64     `json:"humidityPercent"`
	Visibility  float64     `json:"visibilityM"`
	WindSpeed   float64     `json:"windSpeed"`
	WindDeg     float64     `json:"windDeg"`
	Rain1h      float64     `json:"rain1hMm"`
	Snow1h      float64     `json:"snow1hMm"`
	Sunrise     int64       `json:"sunrise"`
	Sunset      int64       `json:"sunset"`

	// TimezoneOffset is the location's offset from UTC in seconds.
	TimezoneOffset int   `json:"timezoneOffset"`
	Timestamp      int64 `json:"timestamp"`
}

// ForecastSample is one observation of a fixed-interval forecast feed.
type ForecastSample struct {
	Timestamp int64 `json:"timestamp"`

	// DateKey is the local calendar date (YYYY-MM-DD) rendered by the data source.
	DateKey string `json:"dateKey"`

	// LocalTime is the sample time in the location's own offset.
	LocalTime time.Time `json:"localTime"`

	Temperature       float64   `json:"temperature"`
	Humidity          float64   `json:"humidityPercent"`
	WindSpeed         float64   `json:"windSpeed"`
	PrecipProbability float64   `json:"pop"`
	Condition         Condition `json:"condition"`
}

// ForecastCity describes the place a forecast list belongs to.
type ForecastCity struct {
	Name           string      `json:"name"`
	Country        string      `json:"country"`
	Coord          Coordinates `json:"coord"`
	TimezoneOffset int         `json:"timezoneOffset"`
	Sunrise        int64       `json:"sunrise"`
	Sunset         int64       `json:"sunset"`
}

// Forecast is the time-ordered forecast list for one place.
type Forecast struct {
	City    ForecastCity     `json:"city"`
	Samples []ForecastSample `json:"samples"`
}

// DailySummary is one day of the daily forecast.
type DailySummary struct {
	DateKey                 string    `json:"dateKey"`
	RepresentativeTimestamp int64     `json:"dt"`
	MaxTemperature          float64   `json:"maxTemperature"`
	MinTemperature          float64   `json:"minTemperature"`
	Condition               Condition `json:"condition"`
}

// DailyRow is a DailySummary with its weekday and date rendered in the city's zone.
type DailyRow struct {
	DailySummary
	Day  string `json:"day"`
	Date string `json:"date"`
}

// HourlyEntry is one slot of the hourly strip shown above the daily forecast.
type HourlyEntry struct {
	Timestamp         int64     `json:"dt"`
	Time              string    `json:"time"`
	Temperature       string    `json:"temperature"`
	PrecipProbability float64   `json:"pop"`
	Condition         Condition `json:"condition"`
	IconURL           string    `json:"iconUrl"`
}

// Observation is a recorded current-conditions reading for a city.
type Observation struct {
	ID        string         `json:"id"`
	City      string         `json:"city"`
	Timestamp time.Time      `json:"timestamp"` // always UTC
	Current   CurrentWeather `json:"current"`
}

// Dashboard is the full payload rendered by the browser dashboard.
type Dashboard struct {
	Location    string         `json:"location"`
	Current     CurrentWeather `json:"current"`
	Description string         `json:"description"`
	IconURL     string         `json:"iconUrl"`
	Hourly      []HourlyEntry  `json:"hourly"`
	Daily       []DailyRow     `json:"daily"`
	LifeIndex   []string       `json:"lifeIndex"`
	Background  string         `json:"background"`
	IsDay       bool           `json:"isDay"`
	Favorite    bool           `json:"favorite"`
	Sunrise     string         `json:"sunrise"`
	Sunset      string         `json:"sunset"`
	Wind        string         `json:"wind"`
	Notice      string         `json:"notice,omitempty"`
	Attribution string         `json:"attribution"`
}
