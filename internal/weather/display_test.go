package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/common"
)

func TestSummarize(t *testing.T) {
	snap := WeatherSnapshot{
		Units: UnitsMetric,
		Current: CurrentWeather{
			Temp:       21.6,
			FeelsLike:  20.2,
			WindSpeed:  5,
			WindDeg:    225,
			Visibility: 10000,
			UVI:        0,
			Rain1h:     common.Float(2.54),
		},
		Daily: []DailyWeather{{MoonPhase: 0.5}},
	}

	t.Run("metric", func(t *testing.T) {
		got := Summarize(snap, UnitsMetric)
		assert.Equal(t, "22°C", got.Temperature)
		assert.Equal(t, "20°C", got.FeelsLike)
		assert.Equal(t, "18 km/h", got.Wind)
		assert.Equal(t, "SW", got.WindDirection)
		assert.Equal(t, "10.0 km", got.Visibility)
		assert.Equal(t, "2.5 mm", got.Precipitation)
		assert.Equal(t, "Low", got.UVLevel)
		require.NotNil(t, got.MoonPhase)
		assert.Equal(t, "Full Moon", got.MoonPhase.Name)
	})

	t.Run("imperial", func(t *testing.T) {
		got := Summarize(snap, UnitsImperial)
		assert.Equal(t, "71°F", got.Temperature)
		assert.Equal(t, "11 mph", got.Wind)
		assert.Equal(t, "6.2 mi", got.Visibility)
		assert.Equal(t, "0.10 in", got.Precipitation)
	})

	t.Run("no precipitation or daily", func(t *testing.T) {
		s := snap
		s.Current.Rain1h = nil
		s.Daily = nil
		got := Summarize(s, UnitsMetric)
		assert.Empty(t, got.Precipitation)
		assert.Nil(t, got.MoonPhase)
	})
}
