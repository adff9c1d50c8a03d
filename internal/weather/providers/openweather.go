package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider. An empty baseURL uses DefaultOpenWeatherBaseURL.
func NewOpenWeatherProvider(httpCfg HTTPClientConfig, apiKey, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owmCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmCoord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type currentPayload struct {
	Coord   owmCoord       `json:"coord"`
	Weather []owmCondition `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Visibility float64 `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Rain struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneH float64 `json:"1h"`
	} `json:"snow"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

type forecastPayload struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []owmCondition `json:"weather"`
		Wind    struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Pop float64 `json:"pop"`
	} `json:"list"`
	City struct {
		Name     string   `json:"name"`
		Country  string   `json:"country"`
		Coord    owmCoord `json:"coord"`
		Timezone int      `json:"timezone"`
		Sunrise  int64    `json:"sunrise"`
		Sunset   int64    `json:"sunset"`
	} `json:"city"`
}

// Current fetches the "current conditions" record for loc.
func (p *OpenWeatherProvider) Current(ctx context.Context, loc weather.Location) (weather.CurrentWeather, error) {
	var payload currentPayload
	if err := p.get(ctx, "/weather", loc, &payload); err != nil {
		return weather.CurrentWeather{}, err
	}

	return weather.CurrentWeather{
		City:           payload.Name,
		Country:        payload.Sys.Country,
		Coord:          weather.Coordinates{Lat: payload.Coord.Lat, Lon: payload.Coord.Lon},
		Condition:      mapCondition(payload.Weather),
		Temperature:    payload.Main.Temp,
		FeelsLike:      payload.Main.FeelsLike,
		TempMin:        payload.Main.TempMin,
		TempMax:        payload.Main.TempMax,
		Pressure:       payload.Main.Pressure,
		Humidity:       payload.Main.Humidity,
		Visibility:     payload.Visibility,
		WindSpeed:      payload.Wind.Speed,
		WindDeg:        payload.Wind.Deg,
		Rain1h:         payload.Rain.OneH,
		Snow1h:         payload.Snow.OneH,
		Sunrise:        payload.Sys.Sunrise,
		Sunset:         payload.Sys.Sunset,
		TimezoneOffset: payload.Timezone,
		Timestamp:      payload.Dt,
	}, nil
}

// Forecast fetches the 3-hour forecast list for loc. Each sample's LocalTime
// and DateKey are rendered in the city's UTC offset.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, loc weather.Location) (weather.Forecast, error) {
	var payload forecastPayload
	if err := p.get(ctx, "/forecast", loc, &payload); err != nil {
		return weather.Forecast{}, err
	}

	offset := payload.City.Timezone
	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		local := weather.LocalTime(item.Dt, offset)
		samples = append(samples, weather.ForecastSample{
			Timestamp:         item.Dt,
			DateKey:           local.Format("2006-01-02"),
			LocalTime:         local,
			Temperature:       item.Main.Temp,
			Humidity:          item.Main.Humidity,
			WindSpeed:         item.Wind.Speed,
			PrecipProbability: item.Pop,
			Condition:         mapCondition(item.Weather),
		})
	}

	return weather.Forecast{
		City: weather.ForecastCity{
			Name:           payload.City.Name,
			Country:        payload.City.Country,
			Coord:          weather.Coordinates{Lat: payload.City.Coord.Lat, Lon: payload.City.Coord.Lon},
			TimezoneOffset: offset,
			Sunrise:        payload.City.Sunrise,
			Sunset:         payload.City.Sunset,
		},
		Samples: samples,
	}, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, path string, loc weather.Location, out any) error {
	if p.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}

	values, err := locationQuery(loc)
	if err != nil {
		return err
	}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// locationQuery prefers coordinates; otherwise OpenWeatherMap's "q" takes the city name.
func locationQuery(loc weather.Location) (url.Values, error) {
	values := url.Values{}
	switch {
	case loc.HasCoords():
		values.Set("lat", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
	case strings.TrimSpace(loc.City) != "":
		values.Set("q", strings.TrimSpace(loc.City))
	default:
		return nil, fmt.Errorf("%w: city or coordinates required", weather.ErrInvalidLocation)
	}
	return values, nil
}

// mapCondition takes the primary condition; OpenWeatherMap lists it first.
func mapCondition(items []owmCondition) weather.Condition {
	if len(items) == 0 {
		return weather.Condition{}
	}
	c := items[0]
	return weather.Condition{
		Code:        c.ID,
		Category:    c.Main,
		Description: c.Description,
		IconID:      c.Icon,
	}
}
