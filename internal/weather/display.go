package weather

// SnapshotSummary carries ready-to-render labels for the dashboard header.
type SnapshotSummary struct {
	Temperature   string     `json:"temperature"`
	FeelsLike     string     `json:"feels_like"`
	Wind          string     `json:"wind"`
	WindDirection string     `json:"wind_direction"`
	Visibility    string     `json:"visibility"`
	Precipitation string     `json:"precipitation,omitempty"`
	UVLevel       string     `json:"uv_level"`
	MoonPhase     *MoonPhase `json:"moon_phase,omitempty"`
}

// Summarize renders the current conditions of a metric snapshot in units.
func Summarize(s WeatherSnapshot, units Units) *SnapshotSummary {
	c := s.Current
	sum := &SnapshotSummary{
		Temperature:   FormatTemperature(c.Temp, units),
		FeelsLike:     FormatTemperature(c.FeelsLike, units),
		Wind:          FormatWindSpeed(c.WindSpeed, units),
		WindDirection: WindDirection(c.WindDeg),
		Visibility:    FormatVisibility(float64(c.Visibility), units),
		UVLevel:       UVIndexLevel(c.UVI),
	}
	switch {
	case c.Rain1h != nil:
		sum.Precipitation = FormatPrecipitation(*c.Rain1h, units)
	case c.Snow1h != nil:
		sum.Precipitation = FormatPrecipitation(*c.Snow1h, units)
	}
	if len(s.Daily) > 0 {
		phase := MoonPhaseName(s.Daily[0].MoonPhase)
		sum.MoonPhase = &phase
	}
	return sum
}
