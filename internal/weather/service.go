package weather

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service turns upstream payloads into snapshots, location lists and air
// quality readings. It keeps no per-request state and is safe for concurrent use.
type Service struct {
	upstream Upstream
	fallback ReverseGeocoder
	logger   *zap.SugaredLogger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithFallbackGeocoder sets a secondary reverse geocoder used when the
// upstream knows no place name for a coordinate.
func WithFallbackGeocoder(g ReverseGeocoder) ServiceOption {
	return func(s *Service) {
		s.fallback = g
	}
}

// NewService creates a new Service.
func NewService(upstream Upstream, logger *zap.SugaredLogger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Service{
		upstream: upstream,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot fetches current conditions, forecast and reverse geocoding for coord
// concurrently and normalizes them. A failed current or forecast call fails the
// whole snapshot; a failed reverse geocode only degrades the location name.
func (s *Service) Snapshot(ctx context.Context, coord Coordinate) (*WeatherSnapshot, error) {
	var (
		current  RawCurrentConditions
		forecast []RawForecastSample
		location *RawLocation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.upstream.CurrentConditions(gctx, coord)
		if err != nil {
			return fmt.Errorf("current conditions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		forecast, err = s.upstream.Forecast(gctx, coord)
		if err != nil {
			return fmt.Errorf("forecast: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		loc, err := s.upstream.ReverseGeocode(gctx, coord)
		if err != nil {
			s.logger.Warnw("reverse geocoding failed, using fallback name",
				"lat", coord.Latitude, "lon", coord.Longitude, "error", err)
			return nil
		}
		location = loc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if location == nil && current.Name == "" {
		location = s.fallbackLocation(ctx, coord)
	}

	return BuildSnapshot(coord, current, forecast, location), nil
}

func (s *Service) fallbackLocation(ctx context.Context, coord Coordinate) *RawLocation {
	if s.fallback == nil {
		return nil
	}
	loc, err := s.fallback.ReverseGeocode(ctx, coord)
	if err != nil {
		s.logger.Warnw("fallback reverse geocoding failed",
			"lat", coord.Latitude, "lon", coord.Longitude, "error", err)
		return nil
	}
	return loc
}

// Search resolves a place name or postal code into candidate locations.
func (s *Service) Search(ctx context.Context, query string) ([]GeoLocation, error) {
	raw, err := s.upstream.ForwardGeocode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	return NormalizeLocations(raw), nil
}

// NormalizeLocations maps geocoding results onto GeoLocation. The result is
// never nil so it encodes as an empty JSON array.
func NormalizeLocations(raw []RawLocation) []GeoLocation {
	out := make([]GeoLocation, 0, len(raw))
	for _, r := range raw {
		out = append(out, GeoLocation{
			Name:      r.Name,
			Country:   r.Country,
			State:     r.State,
			Latitude:  r.Lat,
			Longitude: r.Lon,
		})
	}
	return out
}

// AirQuality returns the current air pollution reading for coord.
func (s *Service) AirQuality(ctx context.Context, coord Coordinate) (*AirQualityData, error) {
	aq, err := s.upstream.AirQuality(ctx, coord)
	if err != nil {
		return nil, fmt.Errorf("air quality: %w", err)
	}
	aq.Level = DescribeAQI(aq.AQI).Level
	return &aq, nil
}

// Probe performs a cheap current-conditions call to check that the upstream is
// reachable and the credentials are accepted.
func (s *Service) Probe(ctx context.Context, coord Coordinate) error {
	_, err := s.upstream.CurrentConditions(ctx, coord)
	return err
}

// ProviderName reports which upstream backs the service.
func (s *Service) ProviderName() string {
	return s.upstream.Name()
}
