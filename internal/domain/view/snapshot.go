package view

// Snapshot is an immutable copy of the view, safe to hand to other goroutines.
type Snapshot struct {
	Recommend RecommendSnapshot `json:"recommend"`
	Forecast  ForecastSnapshot  `json:"forecast"`
}

// ElementSnapshot mirrors Element.
type ElementSnapshot struct {
	Text   string `json:"text"`
	Hidden bool   `json:"hidden"`
	Error  bool   `json:"error,omitempty"`
}

// InputSnapshot mirrors Input.
type InputSnapshot struct {
	Value   string `json:"value"`
	Focused bool   `json:"focused,omitempty"`
}

// ButtonSnapshot mirrors Button.
type ButtonSnapshot struct {
	Label    string `json:"label,omitempty"`
	Disabled bool   `json:"disabled"`
}

// ListSnapshot is a list plus its visibility wrapper.
type ListSnapshot struct {
	Hidden bool     `json:"hidden"`
	Items  []string `json:"items"`
}

// RecommendSnapshot mirrors RecommendView.
type RecommendSnapshot struct {
	Weather            InputSnapshot     `json:"weather"`
	Temperature        InputSnapshot     `json:"temperature"`
	WindSpeed          InputSnapshot     `json:"windSpeed"`
	Submit             ButtonSnapshot    `json:"submit"`
	Placeholder        ElementSnapshot   `json:"placeholder"`
	Panel              ElementSnapshot   `json:"panel"`
	Outfit             ElementSnapshot   `json:"outfit"`
	SummaryWeather     ElementSnapshot   `json:"summaryWeather"`
	SummaryTemperature ElementSnapshot   `json:"summaryTemperature"`
	SummaryWind        ElementSnapshot   `json:"summaryWind"`
	Accessories        ListSnapshot      `json:"accessories"`
	Tips               ListSnapshot      `json:"tips"`
	Errors             map[string]string `json:"errors"`
}

// ForecastItemSnapshot mirrors ForecastItem.
type ForecastItemSnapshot struct {
	Date        string `json:"date"`
	Weather     string `json:"weather"`
	Wind        string `json:"wind,omitempty"`
	Outfit      string `json:"outfit"`
	Accessories string `json:"accessories,omitempty"`
	Tips        string `json:"tips,omitempty"`
}

// ForecastSnapshot mirrors ForecastView.
type ForecastSnapshot struct {
	Status     ElementSnapshot        `json:"status"`
	ListHidden bool                   `json:"listHidden"`
	Items      []ForecastItemSnapshot `json:"items"`
	Refresh    ButtonSnapshot         `json:"refresh"`
}

// Snapshot copies the current view. Call it from the goroutine that owns h.
func (h *Handles) Snapshot() Snapshot {
	r := h.Recommend
	errs := make(map[string]string, len(r.Errors.slots))
	for field, slot := range r.Errors.slots {
		errs[field] = slot.Text
	}

	f := h.Forecast
	items := make([]ForecastItemSnapshot, 0, len(f.List.Items))
	for _, it := range f.List.Items {
		items = append(items, ForecastItemSnapshot(it))
	}

	return Snapshot{
		Recommend: RecommendSnapshot{
			Weather:            InputSnapshot(*r.Weather),
			Temperature:        InputSnapshot(*r.Temperature),
			WindSpeed:          InputSnapshot(*r.WindSpeed),
			Submit:             ButtonSnapshot(*r.Submit),
			Placeholder:        ElementSnapshot(*r.Placeholder),
			Panel:              ElementSnapshot(*r.Panel),
			Outfit:             ElementSnapshot(*r.Outfit),
			SummaryWeather:     ElementSnapshot(*r.SummaryWeather),
			SummaryTemperature: ElementSnapshot(*r.SummaryTemperature),
			SummaryWind:        ElementSnapshot(*r.SummaryWind),
			Accessories:        listSnapshot(r.Accessories, r.AccessoriesBlock),
			Tips:               listSnapshot(r.Tips, r.TipsBlock),
			Errors:             errs,
		},
		Forecast: ForecastSnapshot{
			Status:     ElementSnapshot(*f.Status),
			ListHidden: f.List.Hidden,
			Items:      items,
			Refresh:    ButtonSnapshot(*f.Refresh),
		},
	}
}

func listSnapshot(list *List, wrapper *Element) ListSnapshot {
	items := make([]string, len(list.Items))
	copy(items, list.Items)
	return ListSnapshot{Hidden: wrapper.Hidden, Items: items}
}
