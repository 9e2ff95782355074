package outfit

// GeneralErrorKey is the reserved errors key for flow-level messages.
const GeneralErrorKey = "general"

// RawInput holds the three form fields exactly as the user typed them.
type RawInput struct {
	Weather     string `json:"weather" form:"weather"`
	Temperature string `json:"temperature" form:"temperature"`
	WindSpeed   string `json:"windSpeed" form:"windSpeed"`
}

// RecommendationRequest is the body posted to the recommendation endpoint.
// Nil pointers serialize as JSON null.
type RecommendationRequest struct {
	Weather     string  `json:"weather"`
	Temperature *string `json:"temperature"`
	WindSpeed   *string `json:"windSpeed"`
}

// RecommendationResult is the outfit suggestion returned by the advisor.
type RecommendationResult struct {
	Outfit      string   `json:"outfit,omitempty"`
	Accessories []string `json:"accessories,omitempty"`
	Tips        []string `json:"tips,omitempty"`
}

// Envelope is the uniform success/data/errors wrapper of both endpoints.
type Envelope[T any] struct {
	Success bool              `json:"success"`
	Data    *T                `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Reply couples a decoded envelope with the transport status.
type Reply[T any] struct {
	Status   int
	OK       bool
	Envelope Envelope[T]
}

// Succeeded reports a 2xx status with a truthy success flag.
func (r Reply[T]) Succeeded() bool {
	return r.OK && r.Envelope.Success
}

// ErrorMessage returns the message stored under key, if any.
func (e Envelope[T]) ErrorMessage(key string) string {
	if e.Errors == nil {
		return ""
	}
	return e.Errors[key]
}

// Coordinates is a device position fix.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ForecastDay is one calendar day of the auto-forecast.
type ForecastDay struct {
	Date           string                `json:"date"`
	WeatherText    string                `json:"weather_text,omitempty"`
	WeatherCode    *int                  `json:"weather_code,omitempty"`
	TemperatureMin *float64              `json:"temperature_min,omitempty"`
	TemperatureMax *float64              `json:"temperature_max,omitempty"`
	WindSpeed      *float64              `json:"wind_speed,omitempty"`
	Recommendation *RecommendationResult `json:"recommendation,omitempty"`
}

// ForecastLocation echoes where the forecast was computed.
type ForecastLocation struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`
}

// ForecastResult is the auto-forecast payload; Days is chronological.
type ForecastResult struct {
	Location *ForecastLocation `json:"location,omitempty"`
	Days     []ForecastDay     `json:"days"`
}

// Timezone returns the location timezone or "".
func (f ForecastResult) Timezone() string {
	if f.Location == nil {
		return ""
	}
	return f.Location.Timezone
}
