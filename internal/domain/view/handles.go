package view

import "github.com/yanqian/outfit-assistant/internal/domain/outfit"

// Field identifiers of the recommendation form; also the error slot keys.
const (
	FieldWeather     = "weather"
	FieldTemperature = "temperature"
	FieldWindSpeed   = "windSpeed"
)

// Element is a text region that can be hidden and flagged as an error.
type Element struct {
	Text   string
	Hidden bool
	Error  bool
}

// Input is a form field.
type Input struct {
	Value   string
	Focused bool
}

// Button is a trigger control.
type Button struct {
	Label    string
	Disabled bool
}

// List is an ordered container of text items.
type List struct {
	Items []string
}

// ForecastItem is the display form of one forecast day.
type ForecastItem struct {
	Date        string
	Weather     string
	Wind        string
	Outfit      string
	Accessories string
	Tips        string
}

// ForecastList holds the rendered forecast days.
type ForecastList struct {
	Hidden bool
	Items  []ForecastItem
}

// RecommendView groups every region the recommendation flow touches.
type RecommendView struct {
	Weather     *Input
	Temperature *Input
	WindSpeed   *Input
	Submit      *Button

	Placeholder *Element
	Panel       *Element

	Outfit             *Element
	SummaryWeather     *Element
	SummaryTemperature *Element
	SummaryWind        *Element

	Accessories      *List
	AccessoriesBlock *Element
	Tips             *List
	TipsBlock        *Element

	Errors *ErrorSlots
}

// ForecastView groups every region the auto-forecast flow touches.
type ForecastView struct {
	Status  *Element
	List    *ForecastList
	Refresh *Button
}

// Handles is the whole view. Each flow mutates only its own region.
type Handles struct {
	Recommend *RecommendView
	Forecast  *ForecastView
}

// New builds the view in its initial page-load state.
func New() *Handles {
	return &Handles{
		Recommend: &RecommendView{
			Weather:            &Input{},
			Temperature:        &Input{},
			WindSpeed:          &Input{},
			Submit:             &Button{Label: outfit.SubmitLabel},
			Placeholder:        &Element{Text: outfit.PlaceholderIntro},
			Panel:              &Element{Hidden: true},
			Outfit:             &Element{},
			SummaryWeather:     &Element{},
			SummaryTemperature: &Element{Hidden: true},
			SummaryWind:        &Element{Hidden: true},
			Accessories:        &List{},
			AccessoriesBlock:   &Element{Hidden: true},
			Tips:               &List{},
			TipsBlock:          &Element{Hidden: true},
			Errors:             NewErrorSlots(FieldWeather, FieldTemperature, FieldWindSpeed),
		},
		Forecast: &ForecastView{
			Status:  &Element{},
			List:    &ForecastList{Hidden: true},
			Refresh: &Button{},
		},
	}
}

// RawInput reads the current form values.
func (r *RecommendView) RawInput() outfit.RawInput {
	return outfit.RawInput{
		Weather:     r.Weather.Value,
		Temperature: r.Temperature.Value,
		WindSpeed:   r.WindSpeed.Value,
	}
}

// SetInput overwrites the form values.
func (r *RecommendView) SetInput(in outfit.RawInput) {
	r.Weather.Value = in.Weather
	r.Temperature.Value = in.Temperature
	r.WindSpeed.Value = in.WindSpeed
}

// QuickSelect fills the weather field and moves focus to it.
func (r *RecommendView) QuickSelect(weather string) {
	r.Weather.Value = weather
	r.Weather.Focused = true
	r.Temperature.Focused = false
	r.WindSpeed.Focused = false
}

// SetLoading toggles the submit trigger between busy and ready.
func (r *RecommendView) SetLoading(loading bool) {
	r.Submit.Disabled = loading
	if loading {
		r.Submit.Label = outfit.SubmitBusyLabel
		return
	}
	r.Submit.Label = outfit.SubmitLabel
}

// ShowPlaceholder swaps the result panel for the placeholder message.
func (r *RecommendView) ShowPlaceholder(message string) {
	r.Placeholder.Hidden = false
	r.Panel.Hidden = true
	r.Placeholder.Text = message
}

// SetStatus writes the forecast status line.
func (f *ForecastView) SetStatus(message string, isError bool) {
	f.Status.Text = message
	f.Status.Error = isError
}
