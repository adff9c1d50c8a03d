package httpapi

import (
	"errors"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/invopop/jsonschema"

	"github.com/i474232898/weather-dashboard/internal/preferences"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		var q dashboardQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var (
			d   weather.Dashboard
			err error
		)
		switch {
		case q.Lat != nil && q.Lon != nil:
			d, err = service.DashboardByCoords(c.UserContext(), *q.Lat, *q.Lon)
		case q.City != "":
			d, err = service.DashboardByCity(c.UserContext(), q.City)
		default:
			d, err = service.DefaultDashboard(c.UserContext())
		}
		if err != nil {
			return fetchError(err)
		}
		return c.JSON(d)
	})

	v1.Get("/forecast/daily", func(c *fiber.Ctx) error {
		q := cityQuery{City: utils.CopyString(c.Query("city"))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := service.DailyForecast(c.UserContext(), q.City)
		if err != nil {
			return fetchError(err)
		}
		return c.JSON(fiber.Map{
			"city":  q.City,
			"daily": days,
		})
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		items, err := service.SearchHistory()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read search history")
		}
		return c.JSON(fiber.Map{"history": items})
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		return listFavorites(c, service, fiber.StatusOK)
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var body cityQuery
		if err := bindBody(c, &body); err != nil {
			return err
		}
		if err := service.AddFavorite(body.City); err != nil {
			return preferenceError(err)
		}
		return listFavorites(c, service, fiber.StatusCreated)
	})

	v1.Post("/favorites/toggle", func(c *fiber.Ctx) error {
		var body cityQuery
		if err := bindBody(c, &body); err != nil {
			return err
		}
		fav, err := service.ToggleFavorite(body.City)
		if err != nil {
			return preferenceError(err)
		}
		return c.JSON(fiber.Map{
			"city":     body.City,
			"favorite": fav,
		})
	})

	v1.Delete("/favorites/:city", func(c *fiber.Ctx) error {
		city, err := url.PathUnescape(utils.CopyString(c.Params("city")))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city")
		}
		if err := service.RemoveFavorite(city); err != nil {
			return preferenceError(err)
		}
		return listFavorites(c, service, fiber.StatusOK)
	})

	v1.Get("/observations", func(c *fiber.Ctx) error {
		var req observationQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		observations, err := service.Observations(req.City, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no observations for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch observations")
		}

		return c.JSON(fiber.Map{
			"city":         req.City,
			"from":         req.From,
			"to":           req.To,
			"observations": observations,
		})
	})

	v1.Get("/observations/latest", func(c *fiber.Ctx) error {
		q := cityQuery{City: strings.TrimSpace(utils.CopyString(c.Query("city")))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		obs, err := service.LatestObservation(q.City)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no observations for city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch observations")
		}
		return c.JSON(obs)
	})

	dashboardSchema := jsonschema.Reflect(&weather.Dashboard{})
	v1.Get("/schema/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(dashboardSchema)
	})
}

// fetchError maps data-source failures to HTTP errors. The client only ever
// sees the rate-limit message or the generic one.
func fetchError(err error) error {
	log.Printf("ERROR: weather fetch failed: %v", err)
	switch {
	case errors.Is(err, weather.ErrInvalidLocation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrRateLimited):
		return fiber.NewError(fiber.StatusTooManyRequests, weather.UserMessage(err))
	case errors.Is(err, weather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, weather.UserMessage(err))
	default:
		return fiber.NewError(fiber.StatusBadGateway, weather.UserMessage(err))
	}
}

func preferenceError(err error) error {
	if errors.Is(err, preferences.ErrEmptyCity) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	log.Printf("ERROR: preference update failed: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "failed to update favorites")
}

func listFavorites(c *fiber.Ctx, service *weather.Service, status int) error {
	items, err := service.Favorites()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read favorites")
	}
	return c.Status(status).JSON(fiber.Map{"favorites": items})
}

func bindBody(c *fiber.Ctx, body *cityQuery) error {
	if err := c.BodyParser(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	body.City = strings.TrimSpace(body.City)
	if err := validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// cityQuery identifies a city by name, from a query string or a JSON body.
type cityQuery struct {
	City string `json:"city" validate:"required,max=100"`
}

// dashboardQuery selects a city, a coordinate pair, or neither (default city).
type dashboardQuery struct {
	City string   `validate:"omitempty,max=100"`
	Lat  *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon  *float64 `validate:"omitempty,gte=-180,lte=180"`
}

func (q *dashboardQuery) bind(c *fiber.Ctx) error {
	q.City = strings.TrimSpace(utils.CopyString(c.Query("city")))

	var err error
	if q.Lat, err = parseCoord(c.Query("lat")); err != nil {
		return errors.New("lat must be a number")
	}
	if q.Lon, err = parseCoord(c.Query("lon")); err != nil {
		return errors.New("lon must be a number")
	}
	if (q.Lat == nil) != (q.Lon == nil) {
		return errors.New("lat and lon must be given together")
	}

	return validate.Struct(q)
}

func parseCoord(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// observationQuery holds query parameters for the observations endpoint.
type observationQuery struct {
	City string    `validate:"required"`
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *observationQuery) bind(c *fiber.Ctx) error {
	h.City = strings.TrimSpace(utils.CopyString(c.Query("city")))

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
