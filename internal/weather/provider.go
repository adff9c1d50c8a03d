package weather

import (
	"context"
	"time"
)

// Provider abstracts the weather data source (OpenWeatherMap).
type Provider interface {
	Name() string
	Current(ctx context.Context, loc Location) (CurrentWeather, error)
	Forecast(ctx context.Context, loc Location) (Forecast, error)
}

// SearchHistory is the bounded "recent searches" list.
type SearchHistory interface {
	List() ([]string, error)
	Add(city string) error
}

// Favorites is the unbounded favorite-cities list.
type Favorites interface {
	List() ([]string, error)
	Contains(city string) (bool, error)
	Add(city string) error
	Remove(city string) error
	Toggle(city string) (bool, error)
}

// ObservationStore is the contract the observation log must satisfy.
type ObservationStore interface {
	Save(obs Observation)
	Latest(city string) (Observation, error)
	Range(city string, from, to time.Time) ([]Observation, error)
}
