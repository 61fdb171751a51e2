package weather

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a provider answered successfully but the payload
// carried nothing usable (e.g. an empty air pollution list).
var ErrNoData = errors.New("provider returned no data")

// ConfigurationError reports a missing or invalid setting detected before any
// network call was attempted. It is never worth retrying.
type ConfigurationError struct {
	Setting string
	Msg     string
}

func (e *ConfigurationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s not configured", e.Setting)
}

// UpstreamError wraps a non-2xx status or transport failure from a provider.
type UpstreamError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Provider, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err (or anything it wraps) is a
// ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
