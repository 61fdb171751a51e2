package httpapi

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	defaultRequestTimeout = 10 * time.Second
	// probeHistoryWindow is how far back /health?history=true reports.
	probeHistoryWindow    = 24 * time.Hour
)

var validate = validator.New()

// Options carries the optional collaborators of the HTTP layer.
type Options struct {
	// RequestTimeout bounds each request including its upstream fan-out.
	RequestTimeout  time.Duration
	// Health holds the latest background probe results; nil hides them.
	Health          *store.HealthStore
	// MapTilesEnabled reports whether the radar map credential is present.
	MapTilesEnabled bool
	Logger          *zap.SugaredLogger
}

type handler struct {
	service *weather.Service
	opts    Options
	logger  *zap.SugaredLogger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Every data route is
// served both at the root and under /api.
func RegisterRoutes(app *fiber.App, service *weather.Service, opts Options) {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	h := &handler{service: service, opts: opts, logger: opts.Logger}
	if h.logger == nil {
		h.logger = zap.NewNop().Sugar()
	}

	for _, r := range []fiber.Router{app, app.Group("/api")} {
		r.Get("/weather", h.weather)
		r.Get("/air-quality", h.airQuality)
		r.Get("/geocode", h.geocode)
		r.Get("/health", h.health)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (h *handler) weather(c *fiber.Ctx) error {
	q, err := parseCoordQuery(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	snap, err := h.service.Snapshot(ctx, q.coord)
	if err != nil {
		metrics.CountSnapshot("error")
		return h.fail(c, err, "Failed to fetch weather data", "lat", q.coord.Latitude, "lon", q.coord.Longitude)
	}
	metrics.CountSnapshot("ok")

	summary := weather.Summarize(*snap, q.units)
	out := snap.InUnits(q.units)
	out.Summary = summary
	return c.JSON(out)
}

func (h *handler) airQuality(c *fiber.Ctx) error {
	q, err := parseCoordQuery(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	aq, err := h.service.AirQuality(ctx, q.coord)
	if err != nil {
		return h.fail(c, err, "Failed to fetch air quality data", "lat", q.coord.Latitude, "lon", q.coord.Longitude)
	}
	return c.JSON(aq)
}

func (h *handler) geocode(c *fiber.Ctx) error {
	q := searchQuery{Q: strings.TrimSpace(c.Query("q"))}
	if err := validate.Struct(q); err != nil {
		if isRequiredViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "Search query is required")
		}
		return fiber.NewError(fiber.StatusBadRequest, "Search query is too long")
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	locations, err := h.service.Search(ctx, q.Q)
	if err != nil {
		return h.fail(c, err, "Failed to search locations", "q", q.Q)
	}
	return c.JSON(locations)
}

func (h *handler) health(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":    "ok",
		"service":   "weather-dashboard",
		"provider":  h.service.ProviderName(),
		"map_tiles": h.opts.MapTilesEnabled,
	}
	if h.opts.Health == nil {
		return c.JSON(body)
	}

	latest := h.opts.Health.LatestAll()
	body["probes"] = latest
	if c.QueryBool("history") {
		now := time.Now()
		history := make(map[string][]store.ProbeResult, len(latest))
		for _, p := range latest {
			results, err := h.opts.Health.History(p.Provider, now.Add(-probeHistoryWindow), now)
			if err != nil {
				continue
			}
			history[p.Provider] = results
		}
		body["history"] = history
	}
	return c.JSON(body)
}

func (h *handler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.opts.RequestTimeout)
}

// fail logs err with context and converts it to a client-safe fiber error.
// Upstream details never reach the response body.
func (h *handler) fail(c *fiber.Ctx, err error, generic string, kv ...any) error {
	fields := append([]any{"route", c.Path(), "error", err}, kv...)

	var cfgErr *weather.ConfigurationError
	if errors.As(err, &cfgErr) {
		h.logger.Errorw("request failed: configuration", append(fields, "setting", cfgErr.Setting)...)
		return fiber.NewError(fiber.StatusInternalServerError, cfgErr.Error())
	}

	var upErr *weather.UpstreamError
	if errors.As(err, &upErr) {
		fields = append(fields, "provider", upErr.Provider, "endpoint", upErr.Endpoint, "status", upErr.StatusCode)
	}
	h.logger.Errorw("request failed", fields...)
	return fiber.NewError(fiber.StatusInternalServerError, generic)
}

// ErrorHandler renders every error as {"error": "<message>"}. Errors that are
// not *fiber.Error are reported as a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

// coordQueryParams holds the raw query parameters of coordinate routes.
type coordQueryParams struct {
	Lat   string `validate:"required,latitude"`
	Lon   string `validate:"required,longitude"`
	Units string `validate:"omitempty,oneof=metric imperial"`
}

// searchQuery holds query parameters for the geocode endpoint.
type searchQuery struct {
	Q string `validate:"required,max=200"`
}

type coordQuery struct {
	coord weather.Coordinate
	units weather.Units
}

func parseCoordQuery(c *fiber.Ctx) (coordQuery, error) {
	p := coordQueryParams{
		Lat:   strings.TrimSpace(c.Query("lat")),
		Lon:   strings.TrimSpace(c.Query("lon")),
		Units: strings.ToLower(strings.TrimSpace(c.Query("units"))),
	}
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch {
				case fe.Tag() == "required":
					return coordQuery{}, fiber.NewError(fiber.StatusBadRequest, "Latitude and longitude are required")
				case fe.Field() == "Units":
					return coordQuery{}, fiber.NewError(fiber.StatusBadRequest, "Units must be metric or imperial")
				}
			}
		}
		return coordQuery{}, fiber.NewError(fiber.StatusBadRequest, "Invalid latitude or longitude")
	}

	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return coordQuery{}, fiber.NewError(fiber.StatusBadRequest, "Invalid latitude or longitude")
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return coordQuery{}, fiber.NewError(fiber.StatusBadRequest, "Invalid latitude or longitude")
	}

	return coordQuery{
		coord: weather.Coordinate{Latitude: lat, Longitude: lon},
		units: weather.ParseUnits(p.Units),
	}, nil
}

func isRequiredViolation(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}
