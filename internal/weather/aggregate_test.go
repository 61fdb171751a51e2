package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(dt time.Time, temp float64) RawForecastSample {
	var s RawForecastSample
	s.Dt = dt.Unix()
	s.Main.Temp = temp
	s.Main.FeelsLike = temp - 1
	s.Main.Humidity = 50
	s.Main.Pressure = 1010
	s.Wind.Speed = 3
	s.Wind.Deg = 180
	s.Weather = []Condition{{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}}
	return s
}

func ptr(v float64) *float64 { return &v }

// threeHourly returns n samples 3 hours apart starting at start.
func threeHourly(start time.Time, n int) []RawForecastSample {
	out := make([]RawForecastSample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sample(start.Add(time.Duration(i)*3*time.Hour), float64(i)))
	}
	return out
}

func TestGroupByDay(t *testing.T) {
	start := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	for n := 1; n <= 40; n++ {
		samples := threeHourly(start, n)
		groups := GroupByDay(samples)

		counts := make(map[string]int)
		for _, s := range samples {
			counts[time.Unix(s.Dt, 0).UTC().Format("2006-01-02")]++
		}

		require.Len(t, groups, len(counts), "n=%d", n)
		total := 0
		for i, g := range groups {
			assert.NotEmpty(t, g.Samples)
			assert.Equal(t, counts[g.Date], len(g.Samples), "n=%d date=%s", n, g.Date)
			if i > 0 {
				assert.Less(t, groups[i-1].Date, g.Date, "groups must stay chronological")
			}
			total += len(g.Samples)
		}
		assert.Equal(t, n, total)

		daily := BucketDaily(samples, RawCurrentConditions{})
		assert.LessOrEqual(t, len(daily), DailyLimit)
	}
}

func TestGroupByDayKeepsFirstSeenOrder(t *testing.T) {
	day1 := time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	samples := []RawForecastSample{sample(day2, 1), sample(day1, 2), sample(day2.Add(3*time.Hour), 3)}
	groups := GroupByDay(samples)

	require.Len(t, groups, 2)
	assert.Equal(t, "2024-03-11", groups[0].Date)
	assert.Equal(t, []float64{1, 3}, []float64{groups[0].Samples[0].Main.Temp, groups[0].Samples[1].Main.Temp})
	assert.Equal(t, "2024-03-10", groups[1].Date)
}

func TestBucketDailyTruncatesToSevenDays(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	samples := make([]RawForecastSample, 0, 9)
	for i := 0; i < 9; i++ {
		samples = append(samples, sample(start.AddDate(0, 0, i), float64(i)))
	}

	daily := BucketDaily(samples, RawCurrentConditions{})

	require.Len(t, daily, DailyLimit)
	assert.Equal(t, samples[0].Dt, daily[0].Dt)
	assert.Equal(t, samples[6].Dt, daily[6].Dt)
}

func TestReduceDaySingleSample(t *testing.T) {
	s := sample(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), 17.5)

	d := ReduceDay([]RawForecastSample{s}, RawCurrentConditions{})

	assert.Equal(t, 17.5, d.Temp.Morn)
	assert.Equal(t, 17.5, d.Temp.Eve)
	assert.Equal(t, 17.5, d.Temp.Night)
	assert.Equal(t, 17.5, d.Temp.Day)
	assert.Equal(t, 17.5, d.Temp.Min)
	assert.Equal(t, 17.5, d.Temp.Max)
	assert.Equal(t, d.FeelsLike.Morn, d.FeelsLike.Night)
	assert.Nil(t, d.Rain3h)
	assert.Nil(t, d.Snow3h)
	assert.Nil(t, d.WindGust)
}

func TestReduceDay(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	samples := []RawForecastSample{
		sample(start, 10),
		sample(start.Add(3*time.Hour), 14),
		sample(start.Add(6*time.Hour), 20),
		sample(start.Add(9*time.Hour), 12),
	}
	samples[0].Main.Humidity = 40
	samples[1].Main.Humidity = 60
	samples[2].Main.Humidity = 80
	samples[3].Main.Humidity = 20
	samples[1].Pop = 0.4
	samples[2].Pop = 0.9
	samples[1].Rain = &Precipitation{ThreeHour: ptr(1.5)}
	samples[3].Rain = &Precipitation{ThreeHour: ptr(0.5)}
	samples[2].Wind.Gust = ptr(7)
	samples[3].Wind.Gust = ptr(11)
	samples[0].Wind.Speed = 2.5
	samples[0].Wind.Deg = 90

	var current RawCurrentConditions
	current.Sys.Sunrise = 1710050000
	current.Sys.Sunset = 1710090000

	d := ReduceDay(samples, current)

	assert.Equal(t, samples[0].Dt, d.Dt)
	assert.Equal(t, int64(1710050000), d.Sunrise)
	assert.Equal(t, int64(1710090000), d.Sunset)
	assert.Equal(t, 10.0, d.Temp.Min)
	assert.Equal(t, 20.0, d.Temp.Max)
	assert.Equal(t, 14.0, d.Temp.Day)
	assert.Equal(t, 10.0, d.Temp.Morn)
	assert.Equal(t, 20.0, d.Temp.Eve)
	assert.Equal(t, 12.0, d.Temp.Night)
	assert.Equal(t, 9.0, d.FeelsLike.Morn)
	assert.Equal(t, 19.0, d.FeelsLike.Eve)
	assert.Equal(t, 11.0, d.FeelsLike.Night)
	assert.Equal(t, 50.0, d.Humidity)
	assert.Equal(t, 0.9, d.Pop)
	require.NotNil(t, d.Rain3h)
	assert.Equal(t, 2.0, *d.Rain3h)
	assert.Nil(t, d.Snow3h)
	require.NotNil(t, d.WindGust)
	assert.Equal(t, 11.0, *d.WindGust)
	assert.Equal(t, 2.5, d.WindSpeed)
	assert.Equal(t, 90.0, d.WindDeg)
	assert.Equal(t, samples[0].Weather, d.Weather)
	assert.Equal(t, CalculateMoonPhase(samples[0].Dt), d.MoonPhase)
	assert.Zero(t, d.UVI)
}

func TestReduceDayZeroPrecipitationIsAbsent(t *testing.T) {
	s := sample(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 5)
	s.Snow = &Precipitation{ThreeHour: ptr(0)}

	d := ReduceDay([]RawForecastSample{s}, RawCurrentConditions{})

	assert.Nil(t, d.Snow3h)
}

func TestHourlyKeepsFirstEight(t *testing.T) {
	samples := threeHourly(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 40)
	samples[2].Rain = &Precipitation{ThreeHour: ptr(0.3)}

	hourly := Hourly(samples)

	require.Len(t, hourly, HourlyLimit)
	for i, h := range hourly {
		assert.Equal(t, samples[i].Dt, h.Dt)
	}
	require.NotNil(t, hourly[2].Rain3h)
	assert.Equal(t, 0.3, *hourly[2].Rain3h)
	assert.Nil(t, hourly[1].Rain3h)

	assert.Len(t, Hourly(samples[:3]), 3)
}

func TestBuildSnapshot(t *testing.T) {
	coord := Coordinate{Latitude: 48.85, Longitude: 2.35}
	var current RawCurrentConditions
	current.Name = "Paris 01"
	current.Timezone = 3600
	current.Sys.Country = "FR"
	current.Main.Temp = 21
	current.Main.Humidity = 65
	current.Wind.Speed = 4
	current.Rain = &Precipitation{OneHour: ptr(0.25)}

	forecast := threeHourly(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 40)

	tests := []struct {
		name     string
		location *RawLocation
		want     string
		country  string
	}{
		{name: "reverse geocoded", location: &RawLocation{Name: "Paris", Country: "FR"}, want: "Paris", country: "FR"},
		{name: "geocode missing", location: nil, want: "Paris 01", country: "FR"},
		{name: "geocode empty", location: &RawLocation{}, want: "Paris 01", country: "FR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := BuildSnapshot(coord, current, forecast, tt.location)

			assert.Equal(t, tt.want, snap.Location.Name)
			assert.Equal(t, tt.country, snap.Location.Country)
			assert.Equal(t, "UTC1", snap.Location.Timezone)
			assert.Equal(t, coord.Latitude, snap.Location.Latitude)
			assert.Len(t, snap.Hourly, HourlyLimit)
			assert.Len(t, snap.Daily, 5)
			assert.NotNil(t, snap.Alerts)
			assert.Empty(t, snap.Alerts)
			assert.Zero(t, snap.Current.UVI)
			require.NotNil(t, snap.Current.Rain1h)
			assert.Equal(t, 0.25, *snap.Current.Rain1h)
			assert.Nil(t, snap.Current.Rain3h)
			assert.NotNil(t, snap.Current.DewPoint)
			assert.Nil(t, snap.Current.WindChill)
			assert.Nil(t, snap.Current.HeatIndex)
		})
	}
}

func TestBuildSnapshotUnknownLocation(t *testing.T) {
	snap := BuildSnapshot(Coordinate{}, RawCurrentConditions{}, nil, nil)

	assert.Equal(t, UnknownLocation, snap.Location.Name)
	assert.Equal(t, "UTC", snap.Location.Timezone)
	assert.Empty(t, snap.Hourly)
	assert.Empty(t, snap.Daily)
}

func TestTimezoneLabel(t *testing.T) {
	assert.Equal(t, "UTC", TimezoneLabel(0))
	assert.Equal(t, "UTC-5", TimezoneLabel(-18000))
	assert.Equal(t, "UTC5.5", TimezoneLabel(19800))
	assert.Equal(t, "UTC9", TimezoneLabel(32400))
}
