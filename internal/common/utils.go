package common

import "math"

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Float returns a pointer to v, for populating optional fields.
func Float(v float64) *float64 {
	return &v
}
