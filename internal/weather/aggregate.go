package weather

import (
	"math"
	"strconv"
	"time"
)

const (
	// HourlyLimit is the number of 3-hour samples kept in the hourly series.
	HourlyLimit = 8
	// DailyLimit is the maximum number of day summaries in a snapshot.
	DailyLimit = 7
	// UnknownLocation is the place name used when nothing better is known.
	UnknownLocation = "Unknown"
)

// DayGroup is the forecast samples that fall on one UTC calendar date, in
// input order.
type DayGroup struct {
	Date    string
	Samples []RawForecastSample
}

// GroupByDay partitions samples by the UTC date of their timestamp. Groups are
// returned in order of first appearance; samples keep their relative order.
func GroupByDay(samples []RawForecastSample) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)

	for _, s := range samples {
		key := time.Unix(s.Dt, 0).UTC().Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Date: key})
		}
		groups[i].Samples = append(groups[i].Samples, s)
	}
	return groups
}

// BucketDaily groups samples by day, keeps the first DailyLimit days and
// reduces each to a DailyWeather. Sunrise and sunset come from the current
// conditions since the forecast does not carry them.
func BucketDaily(samples []RawForecastSample, current RawCurrentConditions) []DailyWeather {
	groups := GroupByDay(samples)
	if len(groups) > DailyLimit {
		groups = groups[:DailyLimit]
	}

	daily := make([]DailyWeather, 0, len(groups))
	for _, g := range groups {
		if len(g.Samples) == 0 {
			continue
		}
		daily = append(daily, ReduceDay(g.Samples, current))
	}
	return daily
}

// ReduceDay folds one day's samples into a summary. samples must not be empty.
func ReduceDay(samples []RawForecastSample, current RawCurrentConditions) DailyWeather {
	n := len(samples)
	first, last, mid := samples[0], samples[n-1], samples[n/2]

	var (
		sumTemp, sumHumidity float64
		maxPop, rain, snow   float64
		gust                 *float64
	)
	minTemp, maxTemp := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		sumTemp += s.Main.Temp
		sumHumidity += s.Main.Humidity
		minTemp = math.Min(minTemp, s.Main.Temp)
		maxTemp = math.Max(maxTemp, s.Main.Temp)
		maxPop = math.Max(maxPop, s.Pop)
		rain += threeHourVolume(s.Rain)
		snow += threeHourVolume(s.Snow)
		if s.Wind.Gust != nil && (gust == nil || *s.Wind.Gust > *gust) {
			g := *s.Wind.Gust
			gust = &g
		}
	}

	return DailyWeather{
		Dt:      first.Dt,
		Sunrise: current.Sys.Sunrise,
		Sunset:  current.Sys.Sunset,
		Temp: DailyTemp{
			Day:   sumTemp / float64(n),
			Min:   minTemp,
			Max:   maxTemp,
			Night: last.Main.Temp,
			Eve:   mid.Main.Temp,
			Morn:  first.Main.Temp,
		},
		FeelsLike: DailyFeelsLike{
			Day:   first.Main.FeelsLike,
			Night: last.Main.FeelsLike,
			Eve:   mid.Main.FeelsLike,
			Morn:  first.Main.FeelsLike,
		},
		Pressure:  first.Main.Pressure,
		Humidity:  sumHumidity / float64(n),
		WindSpeed: first.Wind.Speed,
		WindDeg:   first.Wind.Deg,
		WindGust:  gust,
		Pop:       maxPop,
		Rain3h:    nonZero(rain),
		Snow3h:    nonZero(snow),
		Weather:   first.Weather,
		MoonPhase: CalculateMoonPhase(first.Dt),
		UVI:       0,
	}
}

// Hourly converts the first HourlyLimit samples into the hourly series.
func Hourly(samples []RawForecastSample) []HourlyWeather {
	if len(samples) > HourlyLimit {
		samples = samples[:HourlyLimit]
	}
	hourly := make([]HourlyWeather, 0, len(samples))
	for _, s := range samples {
		hourly = append(hourly, HourlyWeather{
			Dt:        s.Dt,
			Temp:      s.Main.Temp,
			FeelsLike: s.Main.FeelsLike,
			Humidity:  s.Main.Humidity,
			Pressure:  s.Main.Pressure,
			WindSpeed: s.Wind.Speed,
			WindDeg:   s.Wind.Deg,
			WindGust:  s.Wind.Gust,
			Pop:       s.Pop,
			Rain3h:    volume(s.Rain, false),
			Snow3h:    volume(s.Snow, false),
			Weather:   s.Weather,
		})
	}
	return hourly
}

// Current flattens the provider's current conditions and adds the derived
// comfort values.
func Current(raw RawCurrentConditions) CurrentWeather {
	c := CurrentWeather{
		Dt:         raw.Dt,
		Sunrise:    raw.Sys.Sunrise,
		Sunset:     raw.Sys.Sunset,
		Temp:       raw.Main.Temp,
		FeelsLike:  raw.Main.FeelsLike,
		Pressure:   raw.Main.Pressure,
		Humidity:   raw.Main.Humidity,
		Clouds:     raw.Clouds.All,
		UVI:        0,
		Visibility: raw.Visibility,
		WindSpeed:  raw.Wind.Speed,
		WindDeg:    raw.Wind.Deg,
		WindGust:   raw.Wind.Gust,
		Rain1h:     volume(raw.Rain, true),
		Rain3h:     volume(raw.Rain, false),
		Snow1h:     volume(raw.Snow, true),
		Snow3h:     volume(raw.Snow, false),
		SeaLevel:   raw.Main.SeaLevel,
		GrndLevel:  raw.Main.GrndLevel,
		Weather:    raw.Weather,
	}
	if dp, ok := DewPoint(raw.Main.Temp, raw.Main.Humidity); ok {
		c.DewPoint = &dp
	}
	if wc, ok := WindChill(raw.Main.Temp, raw.Wind.Speed); ok {
		c.WindChill = &wc
	}
	if hi, ok := HeatIndex(raw.Main.Temp, raw.Main.Humidity); ok {
		c.HeatIndex = &hi
	}
	return c
}

// BuildSnapshot assembles a snapshot from already fetched payloads. location
// may be nil, in which case the name embedded in current is used.
func BuildSnapshot(coord Coordinate, current RawCurrentConditions, forecast []RawForecastSample, location *RawLocation) *WeatherSnapshot {
	loc := SnapshotLocation{
		Name:      UnknownLocation,
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
		Timezone:  TimezoneLabel(current.Timezone),
	}
	if location != nil && location.Name != "" {
		loc.Name = location.Name
	} else if current.Name != "" {
		loc.Name = current.Name
	}
	if location != nil && location.Country != "" {
		loc.Country = location.Country
	} else {
		loc.Country = current.Sys.Country
	}

	return &WeatherSnapshot{
		Units:    UnitsMetric,
		Location: loc,
		Current:  Current(current),
		Hourly:   Hourly(forecast),
		Daily:    BucketDaily(forecast, current),
		Alerts:   []Alert{},
	}
}

// TimezoneLabel renders a UTC offset in seconds as "UTC", "UTC-5", "UTC5.5".
func TimezoneLabel(offsetSeconds int64) string {
	if offsetSeconds == 0 {
		return "UTC"
	}
	return "UTC" + strconv.FormatFloat(float64(offsetSeconds)/3600, 'f', -1, 64)
}

func volume(p *Precipitation, oneHour bool) *float64 {
	if p == nil {
		return nil
	}
	if oneHour {
		return p.OneHour
	}
	return p.ThreeHour
}

func threeHourVolume(p *Precipitation) float64 {
	if v := volume(p, false); v != nil {
		return *v
	}
	return 0
}

func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
