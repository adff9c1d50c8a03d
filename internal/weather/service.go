package weather

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/i474232898/weather-dashboard/internal/common"
)

// Attribution is shown at the bottom of every dashboard.
const Attribution = "Data provided by OpenWeatherMap"

// Settings carries the named defaults the service falls back on.
type Settings struct {
	DefaultCity string
	HourlySlots int
	Backgrounds Backgrounds
}

// Service orchestrates the data source, the aggregator and the preference lists.
type Service struct {
	provider     Provider
	history      SearchHistory
	favorites    Favorites
	observations ObservationStore
	settings     Settings
	now          func() time.Time
}

// NewService creates a new Service.
func NewService(provider Provider, history SearchHistory, favorites Favorites, observations ObservationStore, settings Settings) *Service {
	return &Service{
		provider:     provider,
		history:      history,
		favorites:    favorites,
		observations: observations,
		settings:     settings,
		now:          time.Now,
	}
}

// DashboardByCity fetches current conditions and then the forecast for city,
// and records the city in the search history on success.
func (s *Service) DashboardByCity(ctx context.Context, city string) (Dashboard, error) {
	city = common.NormalizeCity(city)
	if city == "" {
		return Dashboard{}, fmt.Errorf("%w: city is required", ErrInvalidLocation)
	}
	return s.dashboard(ctx, Location{City: city})
}

// DashboardByCoords is DashboardByCity for a coordinate pair. Any failure falls
// back to the default city and the returned dashboard carries a notice.
func (s *Service) DashboardByCoords(ctx context.Context, lat, lon float64) (Dashboard, error) {
	d, err := s.dashboard(ctx, Location{Lat: &lat, Lon: &lon})
	if err == nil {
		return d, nil
	}

	log.Printf("WARN: coordinate lookup failed for %.4f,%.4f: %v; falling back to %s", lat, lon, err, s.settings.DefaultCity)
	d, err = s.DashboardByCity(ctx, s.settings.DefaultCity)
	if err != nil {
		return Dashboard{}, err
	}
	d.Notice = fmt.Sprintf(msgFallbackPattern, s.settings.DefaultCity)
	return d, nil
}

// DefaultDashboard serves the dashboard when no location was supplied.
func (s *Service) DefaultDashboard(ctx context.Context) (Dashboard, error) {
	return s.DashboardByCity(ctx, s.settings.DefaultCity)
}

func (s *Service) dashboard(ctx context.Context, loc Location) (Dashboard, error) {
	log.Printf("DEBUG: dashboard requested for %s via %s", loc.Key(), s.provider.Name())

	current, err := s.provider.Current(ctx, loc)
	if err != nil {
		return Dashboard{}, fmt.Errorf("current conditions for %s: %w", loc.Key(), err)
	}

	forecast, err := s.provider.Forecast(ctx, loc)
	if err != nil {
		return Dashboard{}, fmt.Errorf("forecast for %s: %w", loc.Key(), err)
	}

	name := current.City
	if name == "" {
		name = loc.City
	}

	isDay := IsDaytime(s.now().Unix(), current.Sunrise, current.Sunset)

	d := Dashboard{
		Location:    name,
		Current:     current,
		Description: DescribeCondition(current.Condition),
		IconURL:     IconURL(current.Condition.IconID, true),
		Hourly:      HourlyForecast(forecast.Samples, s.settings.HourlySlots),
		Daily:       DailyRows(AggregateDaily(forecast.Samples), current.TimezoneOffset),
		LifeIndex:   LifeIndex(current),
		Background:  s.settings.Backgrounds.Image(current.Condition.Category, isDay),
		IsDay:       isDay,
		Sunrise:     FormatClock(LocalTime(current.Sunrise, current.TimezoneOffset)),
		Sunset:      FormatClock(LocalTime(current.Sunset, current.TimezoneOffset)),
		Wind:        WindDirection(current.WindDeg),
		Attribution: Attribution,
	}
	if current.Country != "" {
		d.Location = name + ", " + current.Country
	}

	if name != "" {
		if err := s.history.Add(name); err != nil {
			log.Printf("WARN: could not record %s in search history: %v", name, err)
		}
		fav, err := s.favorites.Contains(name)
		if err != nil {
			log.Printf("WARN: could not read favorites: %v", err)
		}
		d.Favorite = fav
	}

	return d, nil
}

// DailyForecast returns only the aggregated daily forecast for city.
func (s *Service) DailyForecast(ctx context.Context, city string) ([]DailySummary, error) {
	city = common.NormalizeCity(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidLocation)
	}

	forecast, err := s.provider.Forecast(ctx, Location{City: city})
	if err != nil {
		return nil, fmt.Errorf("forecast for %s: %w", city, err)
	}
	return AggregateDaily(forecast.Samples), nil
}

// SearchHistory returns the recent searches, most recent first.
func (s *Service) SearchHistory() ([]string, error) {
	return s.history.List()
}

// Favorites returns the favorite cities in insertion order.
func (s *Service) Favorites() ([]string, error) {
	return s.favorites.List()
}

// AddFavorite adds city to the favorites if it is not already there.
func (s *Service) AddFavorite(city string) error {
	return s.favorites.Add(city)
}

// RemoveFavorite removes city from the favorites.
func (s *Service) RemoveFavorite(city string) error {
	return s.favorites.Remove(city)
}

// ToggleFavorite flips the favorite state of city and returns the new state.
func (s *Service) ToggleFavorite(city string) (bool, error) {
	return s.favorites.Toggle(city)
}

// RecordObservation fetches current conditions for city and appends them to the log.
func (s *Service) RecordObservation(ctx context.Context, city string) error {
	current, err := s.provider.Current(ctx, Location{City: city})
	if err != nil {
		return fmt.Errorf("current conditions for %s: %w", city, err)
	}

	ts := time.Unix(current.Timestamp, 0).UTC()
	if current.Timestamp == 0 {
		ts = s.now().UTC()
	}

	s.observations.Save(Observation{
		City:      city,
		Timestamp: ts,
		Current:   current,
	})
	return nil
}

// LatestObservation delegates to the observation store.
func (s *Service) LatestObservation(city string) (Observation, error) {
	return s.observations.Latest(city)
}

// Observations delegates to the observation store.
func (s *Service) Observations(city string, from, to time.Time) ([]Observation, error) {
	return s.observations.Range(city, from, to)
}
