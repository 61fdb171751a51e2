package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	openWeatherName    = "openweathermap"
	defaultOpenWeather = "https://api.openweathermap.org"
	searchLimit        = 5
)

// OpenWeatherProvider implements weather.Upstream against OpenWeatherMap's
// free-tier current weather, 5 day/3 hour forecast, air pollution and
// geocoding APIs.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// OpenWeatherOption customizes an OpenWeatherProvider.
type OpenWeatherOption func(*OpenWeatherProvider)

// WithBaseURL points the provider at another host, e.g. a test server.
func WithBaseURL(baseURL string) OpenWeatherOption {
	return func(p *OpenWeatherProvider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRateLimit caps outbound requests across all endpoints. rps <= 0 disables
// the limiter.
func WithRateLimit(rps float64, burst int) OpenWeatherOption {
	return func(p *OpenWeatherProvider) {
		if rps <= 0 {
			p.httpCfg.Limiter = nil
			return
		}
		p.httpCfg.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...OpenWeatherOption) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:    openWeatherName,
		apiKey:  apiKey,
		baseURL: defaultOpenWeather,
		httpCfg: HTTPClientConfig{
			Client: client,
		},
		circuit: newCircuitBreaker(openWeatherName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) CurrentConditions(ctx context.Context, coord weather.Coordinate) (weather.RawCurrentConditions, error) {
	var payload weather.RawCurrentConditions
	err := p.get(ctx, "weather", "/data/2.5/weather", coordValues(coord, true), &payload)
	return payload, err
}

func (p *OpenWeatherProvider) Forecast(ctx context.Context, coord weather.Coordinate) ([]weather.RawForecastSample, error) {
	var payload struct {
		List []weather.RawForecastSample `json:"list"`
	}
	if err := p.get(ctx, "forecast", "/data/2.5/forecast", coordValues(coord, true), &payload); err != nil {
		return nil, err
	}
	return payload.List, nil
}

func (p *OpenWeatherProvider) ReverseGeocode(ctx context.Context, coord weather.Coordinate) (*weather.RawLocation, error) {
	values := coordValues(coord, false)
	values.Set("limit", "1")

	var payload []weather.RawLocation
	if err := p.get(ctx, "reverse", "/geo/1.0/reverse", values, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	return &payload[0], nil
}

func (p *OpenWeatherProvider) ForwardGeocode(ctx context.Context, query string) ([]weather.RawLocation, error) {
	kind, normalized := ClassifyQuery(query)
	if kind == QueryCity {
		values := url.Values{}
		values.Set("q", normalized)
		values.Set("limit", strconv.Itoa(searchLimit))

		var payload []weather.RawLocation
		if err := p.get(ctx, "direct", "/geo/1.0/direct", values, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	}

	values := url.Values{}
	values.Set("zip", normalized)

	// The zip endpoint answers with a single object rather than a list.
	var payload weather.RawLocation
	if err := p.get(ctx, "zip", "/geo/1.0/zip", values, &payload); err != nil {
		var ue *weather.UpstreamError
		if errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound {
			return []weather.RawLocation{}, nil
		}
		return nil, err
	}
	return []weather.RawLocation{payload}, nil
}

func (p *OpenWeatherProvider) AirQuality(ctx context.Context, coord weather.Coordinate) (weather.AirQualityData, error) {
	var payload struct {
		List []struct {
			Main struct {
				AQI int `json:"aqi"`
			} `json:"main"`
			Components weather.AirQualityComponents `json:"components"`
			Dt         int64                        `json:"dt"`
		} `json:"list"`
	}
	if err := p.get(ctx, "air_pollution", "/data/2.5/air_pollution", coordValues(coord, false), &payload); err != nil {
		return weather.AirQualityData{}, err
	}
	if len(payload.List) == 0 {
		return weather.AirQualityData{}, &weather.UpstreamError{Provider: p.name, Endpoint: "air_pollution", Err: weather.ErrNoData}
	}

	first := payload.List[0]
	return weather.AirQualityData{
		AQI:        first.Main.AQI,
		Components: first.Components,
		Dt:         first.Dt,
	}, nil
}

// get checks credentials before touching the network, then issues one GET.
func (p *OpenWeatherProvider) get(ctx context.Context, endpoint, path string, values url.Values, out any) error {
	if p.apiKey == "" {
		return &weather.ConfigurationError{
			Setting: "OPENWEATHER_API_KEY",
			Msg:     "OpenWeatherMap API key not configured",
		}
	}

	buildRequest := func() (*http.Request, error) {
		values.Set("appid", p.apiKey)
		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}
	return getJSON(ctx, p.httpCfg, p.circuit, p.name, endpoint, buildRequest, out)
}

func coordValues(coord weather.Coordinate, metric bool) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	if metric {
		values.Set("units", "metric")
	}
	return values
}

// QueryKind is how a location search string is resolved.
type QueryKind int

const (
	// QueryCity is a free-text place name.
	QueryCity QueryKind = iota
	// QueryUSZip is a bare 5-digit US ZIP code.
	QueryUSZip
	// QueryPostalCode is "<code>,<country code>".
	QueryPostalCode
)

func (k QueryKind) String() string {
	switch k {
	case QueryUSZip:
		return "us_zip"
	case QueryPostalCode:
		return "postal_code"
	default:
		return "city"
	}
}

var (
	usZipPattern      = regexp.MustCompile(`^\d{5}$`)
	postalCodePattern = regexp.MustCompile(`^([\w\s-]+),\s*([A-Za-z]{2})$`)
)

// ClassifyQuery decides whether query is a ZIP/postal code or a city name and
// returns the string to send upstream. Bare 5-digit codes get the US country
// suffix. A "<text>,<CC>" query only counts as a postal code when the code
// part contains a digit, so "Paris,FR" is still a city search.
func ClassifyQuery(query string) (QueryKind, string) {
	q := strings.TrimSpace(query)
	if usZipPattern.MatchString(q) {
		return QueryUSZip, q + ",US"
	}
	if m := postalCodePattern.FindStringSubmatch(q); m != nil && strings.ContainsAny(m[1], "0123456789") {
		return QueryPostalCode, strings.TrimSpace(m[1]) + "," + strings.ToUpper(m[2])
	}
	return QueryCity, q
}
