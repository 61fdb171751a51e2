package providers

import (
	"context"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const googleName = "google"

// GoogleReverseGeocoder resolves place names through the Google Geocoding API.
// It backs up the primary provider when that one has no name for a point.
type GoogleReverseGeocoder struct {
	apiKey string
	lookup func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleReverseGeocoder configures the geocoder package with apiKey. The
// package keeps the key globally, so only one instance should exist per process.
func NewGoogleReverseGeocoder(apiKey string) *GoogleReverseGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleReverseGeocoder{
		apiKey: apiKey,
		lookup: geocoder.GeocodingReverse,
	}
}

func (g *GoogleReverseGeocoder) ReverseGeocode(ctx context.Context, coord weather.Coordinate) (*weather.RawLocation, error) {
	if g.apiKey == "" {
		return nil, &weather.ConfigurationError{Setting: "GOOGLE_GEOCODING_API_KEY"}
	}

	type result struct {
		addresses []geocoder.Address
		err       error
	}
	// The geocoder package has no context support; abandon the call on cancel.
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		addresses, err := g.lookup(geocoder.Location{Latitude: coord.Latitude, Longitude: coord.Longitude})
		done <- result{addresses: addresses, err: err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return nil, &weather.UpstreamError{Provider: googleName, Endpoint: "reverse", Err: ctx.Err()}
	case r = <-done:
	}

	if r.err != nil {
		metrics.ObserveUpstream(googleName, "reverse", "error", time.Since(start).Seconds())
		return nil, &weather.UpstreamError{Provider: googleName, Endpoint: "reverse", Err: r.err}
	}
	metrics.ObserveUpstream(googleName, "reverse", "ok", time.Since(start).Seconds())

	if len(r.addresses) == 0 {
		return nil, nil
	}
	return locationFromAddress(r.addresses[0], coord), nil
}

func locationFromAddress(addr geocoder.Address, coord weather.Coordinate) *weather.RawLocation {
	name := addr.City
	if name == "" {
		name = addr.District
	}
	if name == "" {
		name = addr.County
	}
	if name == "" {
		return nil
	}
	return &weather.RawLocation{
		Name:    name,
		Country: addr.Country,
		State:   addr.State,
		Lat:     coord.Latitude,
		Lon:     coord.Longitude,
	}
}
