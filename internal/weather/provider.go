package weather

import (
	"context"
)

// Upstream abstracts the weather/geocoding data source (OpenWeatherMap).
// Every method performs a single round trip and never retries.
type Upstream interface {
	Name() string
	CurrentConditions(ctx context.Context, coord Coordinate) (RawCurrentConditions, error)
	Forecast(ctx context.Context, coord Coordinate) ([]RawForecastSample, error)
	// ReverseGeocode returns nil, nil when the provider knows no place for coord.
	ReverseGeocode(ctx context.Context, coord Coordinate) (*RawLocation, error)
	ForwardGeocode(ctx context.Context, query string) ([]RawLocation, error)
	AirQuality(ctx context.Context, coord Coordinate) (AirQualityData, error)
}

// ReverseGeocoder is a secondary place-name source consulted when the
// upstream reverse geocode comes back empty.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, coord Coordinate) (*RawLocation, error)
}
