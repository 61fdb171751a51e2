package weather

// Coordinate is a point on the globe in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Condition is one entry of the provider's weather condition array.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Precipitation volumes in mm. A nil field means the provider did not report it,
// which is not the same as 0mm.
type Precipitation struct {
	OneHour   *float64 `json:"1h,omitempty"`
	ThreeHour *float64 `json:"3h,omitempty"`
}

// RawCurrentConditions is the provider's current-weather payload.
type RawCurrentConditions struct {
	Dt         int64  `json:"dt"`
	Timezone   int64  `json:"timezone"`
	Name       string `json:"name"`
	Visibility int    `json:"visibility"`
	Main       struct {
		Temp      float64  `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		Pressure  float64  `json:"pressure"`
		Humidity  float64  `json:"humidity"`
		SeaLevel  *float64 `json:"sea_level,omitempty"`
		GrndLevel *float64 `json:"grnd_level,omitempty"`
	} `json:"main"`
	Wind struct {
		Speed float64  `json:"speed"`
		Deg   float64  `json:"deg"`
		Gust  *float64 `json:"gust,omitempty"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Rain *Precipitation `json:"rain,omitempty"`
	Snow *Precipitation `json:"snow,omitempty"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Weather []Condition `json:"weather"`
}

// RawForecastSample is one 3-hour point of the provider's forecast list.
type RawForecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64  `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		Pressure  float64  `json:"pressure"`
		Humidity  float64  `json:"humidity"`
		SeaLevel  *float64 `json:"sea_level,omitempty"`
		GrndLevel *float64 `json:"grnd_level,omitempty"`
	} `json:"main"`
	Wind struct {
		Speed float64  `json:"speed"`
		Deg   float64  `json:"deg"`
		Gust  *float64 `json:"gust,omitempty"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int            `json:"visibility"`
	Pop        float64        `json:"pop"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
	Weather    []Condition    `json:"weather"`
}

// RawLocation is a geocoding result.
type RawLocation struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// GeoLocation is the normalized shape returned by location search.
type GeoLocation struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	State     string  `json:"state,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AirQualityComponents are pollutant concentrations in μg/m3.
type AirQualityComponents struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

// AirQualityData is the provider's air pollution reading. AQI is on a 1 (good)
// to 5 (very poor) scale.
type AirQualityData struct {
	AQI        int                  `json:"aqi"`
	Components AirQualityComponents `json:"components"`
	Dt         int64                `json:"dt"`
	Level      string               `json:"level,omitempty"`
}

// SnapshotLocation names the place a snapshot was built for.
type SnapshotLocation struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// CurrentWeather is the current-conditions section of a snapshot.
type CurrentWeather struct {
	Dt         int64       `json:"dt"`
	Sunrise    int64       `json:"sunrise"`
	Sunset     int64       `json:"sunset"`
	Temp       float64     `json:"temp"`
	FeelsLike  float64     `json:"feels_like"`
	Pressure   float64     `json:"pressure"`
	Humidity   float64     `json:"humidity"`
	Clouds     int         `json:"clouds"`
	UVI        float64     `json:"uvi"`
	Visibility int         `json:"visibility"`
	WindSpeed  float64     `json:"wind_speed"`
	WindDeg    float64     `json:"wind_deg"`
	WindGust   *float64    `json:"wind_gust,omitempty"`
	Rain1h     *float64    `json:"rain_1h,omitempty"`
	Rain3h     *float64    `json:"rain_3h,omitempty"`
	Snow1h     *float64    `json:"snow_1h,omitempty"`
	Snow3h     *float64    `json:"snow_3h,omitempty"`
	SeaLevel   *float64    `json:"sea_level,omitempty"`
	GrndLevel  *float64    `json:"grnd_level,omitempty"`
	DewPoint   *float64    `json:"dew_point,omitempty"`
	WindChill  *float64    `json:"wind_chill,omitempty"`
	HeatIndex  *float64    `json:"heat_index,omitempty"`
	Weather    []Condition `json:"weather"`
}

// HourlyWeather is one forecast sample as exposed in the hourly series.
type HourlyWeather struct {
	Dt        int64       `json:"dt"`
	Temp      float64     `json:"temp"`
	FeelsLike float64     `json:"feels_like"`
	Humidity  float64     `json:"humidity"`
	Pressure  float64     `json:"pressure"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   float64     `json:"wind_deg"`
	WindGust  *float64    `json:"wind_gust,omitempty"`
	Pop       float64     `json:"pop"`
	Rain3h    *float64    `json:"rain_3h,omitempty"`
	Snow3h    *float64    `json:"snow_3h,omitempty"`
	Weather   []Condition `json:"weather"`
}

// DailyTemp holds the temperature reductions of one day.
type DailyTemp struct {
	Day   float64 `json:"day"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

// DailyFeelsLike holds the feels-like values picked for one day.
type DailyFeelsLike struct {
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

// DailyWeather summarizes all forecast samples of one UTC calendar date.
type DailyWeather struct {
	Dt        int64          `json:"dt"`
	Sunrise   int64          `json:"sunrise"`
	Sunset    int64          `json:"sunset"`
	Temp      DailyTemp      `json:"temp"`
	FeelsLike DailyFeelsLike `json:"feels_like"`
	Pressure  float64        `json:"pressure"`
	Humidity  float64        `json:"humidity"`
	WindSpeed float64        `json:"wind_speed"`
	WindDeg   float64        `json:"wind_deg"`
	WindGust  *float64       `json:"wind_gust,omitempty"`
	Pop       float64        `json:"pop"`
	Rain3h    *float64       `json:"rain_3h,omitempty"`
	Snow3h    *float64       `json:"snow_3h,omitempty"`
	Weather   []Condition    `json:"weather"`
	MoonPhase float64        `json:"moon_phase"`
	UVI       float64        `json:"uvi"`
}

// Alert is a severe weather alert. The free data tier never returns any.
type Alert struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// WeatherSnapshot is the normalized weather view for one coordinate. Each call
// to the Service returns a fresh value owned by the caller.
type WeatherSnapshot struct {
	Units    Units            `json:"units"`
	Location SnapshotLocation `json:"location"`
	Current  CurrentWeather   `json:"current"`
	Hourly   []HourlyWeather  `json:"hourly"`
	Daily    []DailyWeather   `json:"daily"`
	Alerts   []Alert          `json:"alerts"`

	// Summary is filled in by the HTTP layer.
	Summary *SnapshotSummary `json:"summary,omitempty"`
}
