package weather

import (
	"fmt"
	"math"
	"strings"
)

// Units selects the measurement system used for display.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// ParseUnits maps a query value onto Units; anything unrecognized is metric.
func ParseUnits(s string) Units {
	if strings.EqualFold(strings.TrimSpace(s), string(UnitsImperial)) {
		return UnitsImperial
	}
	return UnitsMetric
}

func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

func MSToKMH(ms float64) float64 { return ms * 3.6 }

func MSToMPH(ms float64) float64 { return ms * 2.237 }

func MMToInches(mm float64) float64 { return mm / 25.4 }

func MetersToKM(m float64) float64 { return m / 1000 }

func MetersToMiles(m float64) float64 { return m / 1609 }

// FormatTemperature renders a °C value in the requested units, rounded to a
// whole degree.
func FormatTemperature(c float64, units Units) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%d°F", int(math.Round(CelsiusToFahrenheit(c))))
	}
	return fmt.Sprintf("%d°C", int(math.Round(c)))
}

// FormatWindSpeed renders a m/s value as mph or km/h.
func FormatWindSpeed(ms float64, units Units) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%d mph", int(math.Round(MSToMPH(ms))))
	}
	return fmt.Sprintf("%d km/h", int(math.Round(MSToKMH(ms))))
}

// FormatVisibility renders a distance in meters as miles or kilometres.
func FormatVisibility(m float64, units Units) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%.1f mi", MetersToMiles(m))
	}
	return fmt.Sprintf("%.1f km", MetersToKM(m))
}

// FormatPrecipitation renders a volume in mm as inches or mm.
func FormatPrecipitation(mm float64, units Units) string {
	if units == UnitsImperial {
		return fmt.Sprintf("%.2f in", MMToInches(mm))
	}
	return fmt.Sprintf("%.1f mm", mm)
}

var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection maps a bearing in degrees to an 8-point compass label.
func WindDirection(deg float64) string {
	idx := int(math.Round(deg/45)) % len(compassPoints)
	if idx < 0 {
		idx += len(compassPoints)
	}
	return compassPoints[idx]
}

// UVIndexLevel maps a UV index to its WHO exposure category.
func UVIndexLevel(uvi float64) string {
	switch {
	case uvi <= 2:
		return "Low"
	case uvi <= 5:
		return "Moderate"
	case uvi <= 7:
		return "High"
	case uvi <= 10:
		return "Very High"
	default:
		return "Extreme"
	}
}

// AQILevel describes a value on the provider's 1..5 air quality scale.
type AQILevel struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

var aqiLevels = [...]AQILevel{
	{Level: "Good", Description: "Air quality is satisfactory"},
	{Level: "Fair", Description: "Air quality is acceptable"},
	{Level: "Moderate", Description: "Unhealthy for sensitive groups"},
	{Level: "Poor", Description: "Unhealthy air quality"},
	{Level: "Very Poor", Description: "Very unhealthy air quality"},
}

// DescribeAQI returns the level for aqi, falling back to "Good" when aqi is
// outside 1..5.
func DescribeAQI(aqi int) AQILevel {
	if aqi < 1 || aqi > len(aqiLevels) {
		return aqiLevels[0]
	}
	return aqiLevels[aqi-1]
}

// InUnits returns a copy of s with temperatures, wind speeds and precipitation
// expressed in units. Snapshots are built metric; converting to metric is a
// plain copy. Pressure (hPa) and visibility (m) are left untouched.
func (s WeatherSnapshot) InUnits(units Units) WeatherSnapshot {
	out := s
	out.Hourly = make([]HourlyWeather, len(s.Hourly))
	copy(out.Hourly, s.Hourly)
	out.Daily = make([]DailyWeather, len(s.Daily))
	copy(out.Daily, s.Daily)
	out.Alerts = make([]Alert, len(s.Alerts))
	copy(out.Alerts, s.Alerts)
	if units != UnitsImperial {
		return out
	}

	c := &out.Current
	c.Temp = CelsiusToFahrenheit(c.Temp)
	c.FeelsLike = CelsiusToFahrenheit(c.FeelsLike)
	c.DewPoint = convertOptional(c.DewPoint, CelsiusToFahrenheit)
	c.WindChill = convertOptional(c.WindChill, CelsiusToFahrenheit)
	c.HeatIndex = convertOptional(c.HeatIndex, CelsiusToFahrenheit)
	c.WindSpeed = MSToMPH(c.WindSpeed)
	c.WindGust = convertOptional(c.WindGust, MSToMPH)
	c.Rain1h = convertOptional(c.Rain1h, MMToInches)
	c.Rain3h = convertOptional(c.Rain3h, MMToInches)
	c.Snow1h = convertOptional(c.Snow1h, MMToInches)
	c.Snow3h = convertOptional(c.Snow3h, MMToInches)

	for i := range out.Hourly {
		h := &out.Hourly[i]
		h.Temp = CelsiusToFahrenheit(h.Temp)
		h.FeelsLike = CelsiusToFahrenheit(h.FeelsLike)
		h.WindSpeed = MSToMPH(h.WindSpeed)
		h.WindGust = convertOptional(h.WindGust, MSToMPH)
		h.Rain3h = convertOptional(h.Rain3h, MMToInches)
		h.Snow3h = convertOptional(h.Snow3h, MMToInches)
	}

	for i := range out.Daily {
		d := &out.Daily[i]
		d.Temp = DailyTemp{
			Day:   CelsiusToFahrenheit(d.Temp.Day),
			Min:   CelsiusToFahrenheit(d.Temp.Min),
			Max:   CelsiusToFahrenheit(d.Temp.Max),
			Night: CelsiusToFahrenheit(d.Temp.Night),
			Eve:   CelsiusToFahrenheit(d.Temp.Eve),
			Morn:  CelsiusToFahrenheit(d.Temp.Morn),
		}
		d.FeelsLike = DailyFeelsLike{
			Day:   CelsiusToFahrenheit(d.FeelsLike.Day),
			Night: CelsiusToFahrenheit(d.FeelsLike.Night),
			Eve:   CelsiusToFahrenheit(d.FeelsLike.Eve),
			Morn:  CelsiusToFahrenheit(d.FeelsLike.Morn),
		}
		d.WindSpeed = MSToMPH(d.WindSpeed)
		d.WindGust = convertOptional(d.WindGust, MSToMPH)
		d.Rain3h = convertOptional(d.Rain3h, MMToInches)
		d.Snow3h = convertOptional(d.Snow3h, MMToInches)
	}
	out.Units = units
	return out
}

func convertOptional(v *float64, conv func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	r := conv(*v)
	return &r
}
