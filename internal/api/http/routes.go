package httpapi

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hoangnm/vn-poi-map/internal/config"
	"github.com/hoangnm/vn-poi-map/internal/geocode"
	"github.com/hoangnm/vn-poi-map/internal/overpass"
	"github.com/hoangnm/vn-poi-map/internal/poi"
	"github.com/hoangnm/vn-poi-map/internal/search"
	"github.com/hoangnm/vn-poi-map/internal/weather"
)

var validate = validator.New()

// searchQuery holds the query parameters of a search. A place name or an
// explicit coordinate pair (the map-click flow) identifies the center.
type searchQuery struct {
	Place      string   `validate:"required_without=Lat"`
	Lat        *float64 `validate:"required_with=Lon,omitempty,gte=-90,lte=90"`
	Lon        *float64 `validate:"required_with=Lat,omitempty,gte=-180,lte=180"`
	RadiusM    int      `validate:"gt=0,lte=5000"`
	Categories []string `validate:"min=1"`
	Keyword    string
	Limit      int `validate:"gt=0,lte=100"`
}

func (q searchQuery) toRequest() search.Request {
	return search.Request{
		Place:      q.Place,
		Lat:        q.Lat,
		Lon:        q.Lon,
		RadiusM:    q.RadiusM,
		Categories: q.Categories,
		Keyword:    q.Keyword,
		Limit:      q.Limit,
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, runner *search.Runner, weatherSvc *weather.Service, cfg *config.AppConfig) {
	v1 := app.Group("/api/v1")

	v1.Get("/categories", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"categories": poi.CategorySlugs()})
	})

	v1.Get("/search", func(c *fiber.Ctx) error {
		q, err := parseSearchQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := runner.Run(c.Context(), q.toRequest())
		if err != nil {
			return searchError(err)
		}
		return c.JSON(result)
	})

	v1.Get("/pois/export", func(c *fiber.Ctx) error {
		q, err := parseSearchQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := runner.Run(c.Context(), q.toRequest())
		if err != nil {
			return searchError(err)
		}
		if result.POIs == nil && len(result.Warnings) > 0 {
			return fiber.NewError(fiber.StatusBadGateway, "POI lookup failed; nothing to export")
		}

		var buf bytes.Buffer
		if err := poi.WriteCSV(&buf, result.POIs); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build CSV export")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="poi_results.csv"`)
		return c.Send(buf.Bytes())
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
		lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
		if err1 != nil || err2 != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
		}

		rec, err := weatherSvc.Get(c.Context(), lat, lon)
		switch {
		case errors.Is(err, weather.ErrNoAPIKey):
			return fiber.NewError(fiber.StatusServiceUnavailable, "weather is not configured")
		case err != nil:
			return fiber.NewError(fiber.StatusBadGateway, "weather data unavailable")
		}
		return c.JSON(rec)
	})

	v1.Get("/tiles", func(c *fiber.Ctx) error {
		layers := weather.TileLayers(cfg.OpenWeatherAPIKey, cfg.EnableWeatherTiles, cfg.TileOpacity)
		return c.JSON(fiber.Map{"layers": layers})
	})
}

// searchError maps search failures onto HTTP statuses: an unresolvable place
// is a user-visible 404, anything else bubbles up as a bad-gateway or
// bad-request condition.
func searchError(err error) error {
	switch {
	case errors.Is(err, geocode.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "place not found")
	case errors.Is(err, overpass.ErrAllMirrorsFailed):
		return fiber.NewError(fiber.StatusBadGateway, "spatial service unavailable")
	case errors.Is(err, poi.ErrUnknownCategory):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
}

func parseSearchQuery(c *fiber.Ctx) (searchQuery, error) {
	q := searchQuery{
		Place:   strings.TrimSpace(c.Query("place")),
		Keyword: c.Query("keyword"),
		RadiusM: c.QueryInt("radius", 1000),
		Limit:   c.QueryInt("limit", 20),
	}

	if v := c.Query("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, errors.New("invalid lat")
		}
		q.Lat = &lat
	}
	if v := c.Query("lon"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, errors.New("invalid lon")
		}
		q.Lon = &lon
	}

	categories := c.Query("categories", "cafe")
	for _, s := range strings.Split(categories, ",") {
		if s = strings.TrimSpace(s); s != "" {
			q.Categories = append(q.Categories, s)
		}
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
