package weather

import (
	"math"

	"github.com/i474232898/weather-dashboard/internal/common"
)

// DewPoint estimates the dew point in °C from temperature (°C) and relative
// humidity (%) with the Magnus approximation. ok is false when humidity is not
// positive, where the approximation is undefined.
func DewPoint(temp, humidity float64) (dewPoint float64, ok bool) {
	if humidity <= 0 {
		return 0, false
	}
	const a, b = 17.27, 237.7
	alpha := (a*temp)/(b+temp) + math.Log(humidity/100)
	return common.Round(b*alpha/(a-alpha), 1), true
}

// WindChill returns the Environment Canada wind chill in °C for a temperature
// in °C and a wind speed in m/s. It only applies at or below 10°C with wind
// above 4.8 km/h.
func WindChill(temp, windSpeed float64) (float64, bool) {
	windKmh := MSToKMH(windSpeed)
	if temp > 10 || windKmh <= 4.8 {
		return 0, false
	}
	v := math.Pow(windKmh, 0.16)
	wc := 13.12 + 0.6215*temp - 11.37*v + 0.3965*temp*v
	return common.Round(wc, 1), true
}

// HeatIndex returns the apparent temperature in °C using the Rothfusz
// regression. It only applies at or above 27°C.
func HeatIndex(temp, humidity float64) (float64, bool) {
	if temp < 27 {
		return 0, false
	}
	t := CelsiusToFahrenheit(temp)
	rh := humidity
	hi := -42.379 +
		2.04901523*t +
		10.14333127*rh -
		0.22475541*t*rh -
		0.00683783*t*t -
		0.05481717*rh*rh +
		0.00122874*t*t*rh +
		0.00085282*t*rh*rh -
		0.00000199*t*t*rh*rh
	return common.Round(FahrenheitToCelsius(hi), 1), true
}
