// Package weather fetches OpenWeather data through a primary One Call 3.0
// endpoint with a silent fallback to the 2.5 current+forecast pair, and
// reshapes both upstream schemas into one unified record.
package weather

// Source identifies which upstream shape a record was normalized from.
type Source string

const (
	SourceOneCall Source = "onecall_3_0"
	SourceLegacy  Source = "current+forecast_2_5"
)

// Point is a normalized weather observation or hourly forecast entry.
// DtLocal is the upstream UTC epoch shifted by the timezone offset — a
// pseudo-local timestamp for display, not true local wall-clock time.
type Point struct {
	DtLocal   int64    `json:"dt_local"`
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	Humidity  *float64 `json:"humidity,omitempty"`
	WindSpeed *float64 `json:"wind_speed,omitempty"`
	WindDeg   *float64 `json:"wind_deg,omitempty"`
	UVI       *float64 `json:"uvi,omitempty"`
	Pressure  *float64 `json:"pressure,omitempty"`
	Clouds    *float64 `json:"clouds,omitempty"`
	Pop       float64  `json:"pop"`
	Desc      string   `json:"desc,omitempty"`
	Icon      string   `json:"icon,omitempty"`
}

// DayPoint is a normalized daily forecast entry with a temperature range
// instead of a single reading.
type DayPoint struct {
	DtLocal   int64    `json:"dt_local"`
	TMin      *float64 `json:"t_min"`
	TMax      *float64 `json:"t_max"`
	Pop       float64  `json:"pop"`
	Humidity  *float64 `json:"humidity,omitempty"`
	WindSpeed *float64 `json:"wind_speed,omitempty"`
	Desc      string   `json:"desc,omitempty"`
	Icon      string   `json:"icon,omitempty"`
}

// Record is the unified weather view consumed by the presentation layer.
// Hourly holds at most 24 entries; Daily at most 8 from the primary source
// and at most 7 groups from the legacy source.
type Record struct {
	Source   Source     `json:"source"`
	TZOffset int64      `json:"tz_offset"`
	Current  *Point     `json:"current"`
	Hourly   []Point    `json:"hourly"`
	Daily    []DayPoint `json:"daily"`
}

// weatherDesc is the shared weather-description entry of all OpenWeather shapes.
type weatherDesc struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// oneCallPayload is the One Call 3.0 response shape, restricted to the
// fields the normalizer reads.
type oneCallPayload struct {
	TimezoneOffset int64           `json:"timezone_offset"`
	Current        *oneCallCurrent `json:"current"`
	Hourly         []oneCallHour   `json:"hourly"`
	Daily          []oneCallDay    `json:"daily"`
}

type oneCallCurrent struct {
	Dt        int64         `json:"dt"`
	Temp      *float64      `json:"temp"`
	FeelsLike *float64      `json:"feels_like"`
	Humidity  *float64      `json:"humidity"`
	WindSpeed *float64      `json:"wind_speed"`
	WindDeg   *float64      `json:"wind_deg"`
	UVI       *float64      `json:"uvi"`
	Pressure  *float64      `json:"pressure"`
	Clouds    *float64      `json:"clouds"`
	Pop       *float64      `json:"pop"`
	Weather   []weatherDesc `json:"weather"`
}

type oneCallHour struct {
	Dt        int64         `json:"dt"`
	Temp      *float64      `json:"temp"`
	Pop       *float64      `json:"pop"`
	Humidity  *float64      `json:"humidity"`
	WindSpeed *float64      `json:"wind_speed"`
	Weather   []weatherDesc `json:"weather"`
}

type oneCallDay struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"temp"`
	Pop       *float64      `json:"pop"`
	Humidity  *float64      `json:"humidity"`
	WindSpeed *float64      `json:"wind_speed"`
	Weather   []weatherDesc `json:"weather"`
}

// legacyCurrent is the 2.5 current-conditions response shape.
type legacyCurrent struct {
	Dt       int64 `json:"dt"`
	Timezone int64 `json:"timezone"`
	Coord    struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
		Pressure  *float64 `json:"pressure"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Clouds *struct {
		All *float64 `json:"all"`
	} `json:"clouds"`
	Weather []weatherDesc `json:"weather"`
}

// legacyForecast is the 2.5 forecast response: 5 days at 3-hour steps.
type legacyForecast struct {
	List []legacyForecastItem `json:"list"`
}

type legacyForecastItem struct {
	Dt   int64 `json:"dt"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Pop     float64       `json:"pop"`
	Weather []weatherDesc `json:"weather"`
}
