package weather

import "fmt"

// TileLayer describes one OpenWeather raster overlay the map frontend can
// stack on the base map.
type TileLayer struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Attribution string  `json:"attribution"`
	Opacity     float64 `json:"opacity"`
}

// Layer slug → display name, in presentation order.
var tileLayers = []struct {
	slug string
	name string
}{
	{"clouds_new", "Clouds"},
	{"precipitation_new", "Precipitation"},
	{"temp_new", "Temperature"},
	{"wind_new", "Wind"},
	{"pressure_new", "Pressure"},
}

// TileLayers returns the overlay descriptors, or nil when overlays are
// disabled or no API key is configured.
func TileLayers(apiKey string, enabled bool, opacity float64) []TileLayer {
	if !enabled || apiKey == "" {
		return nil
	}

	layers := make([]TileLayer, 0, len(tileLayers))
	for _, l := range tileLayers {
		layers = append(layers, TileLayer{
			Name:        l.name,
			URL:         fmt.Sprintf("https://tile.openweathermap.org/map/%s/{z}/{x}/{y}.png?appid=%s", l.slug, apiKey),
			Attribution: "OpenWeatherMap",
			Opacity:     opacity,
		})
	}
	return layers
}

// compassDirs are the 8-sector wind direction labels.
var compassDirs = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// DegToCompass converts wind direction degrees to an 8-sector compass label.
func DegToCompass(deg float64) string {
	ix := int((deg+22.5)/45) % 8
	if ix < 0 {
		ix += 8
	}
	return compassDirs[ix]
}
