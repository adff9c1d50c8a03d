package weather_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/preferences"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

type fakeProvider struct {
	mu    sync.Mutex
	calls []string

	// cities known by name; coordinates always fail unless coordsCity is set.
	cities      map[string]weather.CurrentWeather
	coordsCity  string
	forecastErr error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) resolve(loc weather.Location) (weather.CurrentWeather, error) {
	city := loc.City
	if loc.HasCoords() {
		if f.coordsCity == "" {
			return weather.CurrentWeather{}, weather.ErrLocationNotFound
		}
		city = f.coordsCity
	}
	w, ok := f.cities[city]
	if !ok {
		return weather.CurrentWeather{}, weather.ErrLocationNotFound
	}
	return w, nil
}

func (f *fakeProvider) Current(_ context.Context, loc weather.Location) (weather.CurrentWeather, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "current:"+loc.Key())
	f.mu.Unlock()
	return f.resolve(loc)
}

func (f *fakeProvider) Forecast(_ context.Context, loc weather.Location) (weather.Forecast, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "forecast:"+loc.Key())
	f.mu.Unlock()
	if f.forecastErr != nil {
		return weather.Forecast{}, f.forecastErr
	}
	if _, err := f.resolve(loc); err != nil {
		return weather.Forecast{}, err
	}

	var samples []weather.ForecastSample
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		local := base.Add(time.Duration(i*3) * time.Hour)
		samples = append(samples, weather.ForecastSample{
			Timestamp:   local.Unix(),
			DateKey:     local.Format("2006-01-02"),
			LocalTime:   local,
			Temperature: float64(i % 8),
			Condition:   weather.Condition{Code: 800, Category: "Clear", Description: "clear sky", IconID: "01d"},
		})
	}
	return weather.Forecast{Samples: samples}, nil
}

func city(name, country string) weather.CurrentWeather {
	return weather.CurrentWeather{
		City:        name,
		Country:     country,
		Condition:   weather.Condition{Code: 500, Category: "Rain", Description: "light rain", IconID: "10d"},
		Temperature: 12,
		Humidity:    85,
		Visibility:  8000,
		Rain1h:      0.5,
		Sunrise:     0,
		Sunset:      math.MaxInt64,
	}
}

func newService(t *testing.T, p *fakeProvider) (*weather.Service, *preferences.SearchHistory, *preferences.Favorites) {
	t.Helper()
	lists := store.NewMemoryListStore()
	history := preferences.NewSearchHistory(lists, 0)
	favorites := preferences.NewFavorites(lists)
	svc := weather.NewService(p, history, favorites, store.NewMemoryStore(10, 0), weather.Settings{
		DefaultCity: "London",
		HourlySlots: 8,
		Backgrounds: weather.Backgrounds{
			Default:    "default.jpg",
			ByCategory: map[string]weather.DayNightImage{"Rain": {Day: "rain-day.jpg", Night: "rain-night.jpg"}},
		},
	})
	return svc, history, favorites
}

func TestDashboardByCity(t *testing.T) {
	p := &fakeProvider{cities: map[string]weather.CurrentWeather{"Paris": city("Paris", "FR")}}
	svc, history, favorites := newService(t, p)
	require.NoError(t, favorites.Add("Paris"))

	d, err := svc.DashboardByCity(context.Background(), "  Paris ")
	require.NoError(t, err)

	assert.Equal(t, []string{"current:Paris", "forecast:Paris"}, p.calls)
	assert.Equal(t, "Paris, FR", d.Location)
	assert.Equal(t, "Light Rain", d.Description)
	assert.Equal(t, "rain-day.jpg", d.Background)
	assert.True(t, d.IsDay)
	assert.True(t, d.Favorite)
	assert.Len(t, d.Hourly, 8)
	assert.Len(t, d.Daily, weather.DailyForecastDays)
	assert.Equal(t, "2024-05-01", d.Daily[0].DateKey)
	assert.Equal(t, 7.0, d.Daily[0].MaxTemperature)
	assert.Equal(t, 0.0, d.Daily[0].MinTemperature)
	assert.Equal(t, "Wed", d.Daily[0].Day)
	assert.Equal(t, "May 1", d.Daily[0].Date)
	assert.Equal(t, "Sun", d.Daily[4].Day)
	assert.Contains(t, d.LifeIndex, "☔ Rain expected - carry an umbrella.")
	assert.Equal(t, weather.Attribution, d.Attribution)
	assert.Empty(t, d.Notice)

	recent, err := history.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, recent)
}

func TestDashboardByCityErrors(t *testing.T) {
	p := &fakeProvider{cities: map[string]weather.CurrentWeather{"Paris": city("Paris", "FR")}}
	svc, history, _ := newService(t, p)

	_, err := svc.DashboardByCity(context.Background(), " ")
	assert.ErrorIs(t, err, weather.ErrInvalidLocation)

	_, err = svc.DashboardByCity(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, weather.ErrLocationNotFound)
	assert.Equal(t, []string{"current:Atlantis"}, p.calls, "forecast must not be fetched after a failed current lookup")

	p.forecastErr = weather.ErrRateLimited
	_, err = svc.DashboardByCity(context.Background(), "Paris")
	assert.ErrorIs(t, err, weather.ErrRateLimited)

	recent, err := history.List()
	require.NoError(t, err)
	assert.Empty(t, recent, "failed lookups are not recorded")
}

func TestDashboardByCoords(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		p := &fakeProvider{
			cities:     map[string]weather.CurrentWeather{"Oslo": city("Oslo", "NO")},
			coordsCity: "Oslo",
		}
		svc, history, _ := newService(t, p)

		d, err := svc.DashboardByCoords(context.Background(), 59.91, 10.75)
		require.NoError(t, err)
		assert.Equal(t, "Oslo, NO", d.Location)
		assert.Empty(t, d.Notice)

		recent, err := history.List()
		require.NoError(t, err)
		assert.Equal(t, []string{"Oslo"}, recent)
	})

	t.Run("falls back to default city", func(t *testing.T) {
		p := &fakeProvider{cities: map[string]weather.CurrentWeather{"London": city("London", "GB")}}
		svc, _, _ := newService(t, p)

		d, err := svc.DashboardByCoords(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "London, GB", d.Location)
		assert.Equal(t, "Failed to fetch weather data for your location. Defaulting to London.", d.Notice)
	})

	t.Run("fallback failure is returned", func(t *testing.T) {
		svc, _, _ := newService(t, &fakeProvider{})
		_, err := svc.DashboardByCoords(context.Background(), 1, 2)
		assert.True(t, errors.Is(err, weather.ErrLocationNotFound))
	})
}

func TestDefaultDashboard(t *testing.T) {
	p := &fakeProvider{cities: map[string]weather.CurrentWeather{"London": city("London", "GB")}}
	svc, _, _ := newService(t, p)

	d, err := svc.DefaultDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "London, GB", d.Location)
}

func TestDailyForecast(t *testing.T) {
	p := &fakeProvider{cities: map[string]weather.CurrentWeather{"Paris": city("Paris", "FR")}}
	svc, _, _ := newService(t, p)

	days, err := svc.DailyForecast(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Len(t, days, 5)
	assert.Equal(t, []string{"forecast:Paris"}, p.calls)

	_, err = svc.DailyForecast(context.Background(), "")
	assert.ErrorIs(t, err, weather.ErrInvalidLocation)
}

func TestRecordObservation(t *testing.T) {
	cw := city("Paris", "FR")
	cw.Timestamp = time.Now().Unix()
	p := &fakeProvider{cities: map[string]weather.CurrentWeather{"Paris": cw}}
	svc, _, _ := newService(t, p)

	require.NoError(t, svc.RecordObservation(context.Background(), "Paris"))
	assert.Error(t, svc.RecordObservation(context.Background(), "Atlantis"))

	obs, err := svc.LatestObservation("Paris")
	require.NoError(t, err)
	assert.NotEmpty(t, obs.ID)
	assert.Equal(t, 12.0, obs.Current.Temperature)

	from := time.Unix(cw.Timestamp, 0).Add(-time.Minute)
	got, err := svc.Observations("Paris", from, from.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFavoritesPassThrough(t *testing.T) {
	svc, _, _ := newService(t, &fakeProvider{})

	require.NoError(t, svc.AddFavorite("Rome"))
	require.NoError(t, svc.AddFavorite("Oslo"))
	fav, err := svc.ToggleFavorite("Rome")
	require.NoError(t, err)
	assert.False(t, fav)
	require.NoError(t, svc.RemoveFavorite("Nowhere"))

	items, err := svc.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []string{"Oslo"}, items)
}
