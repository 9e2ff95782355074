package forecast

import (
	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
	"github.com/yanqian/outfit-assistant/internal/domain/view"
)

// BuildItem turns one forecast day into its display form.
func BuildItem(day outfit.ForecastDay) view.ForecastItem {
	item := view.ForecastItem{
		Date:    outfit.FormatDate(day.Date),
		Weather: outfit.WeatherLine(day),
		Wind:    outfit.FormatWind(day.WindSpeed),
		Outfit:  outfit.ForecastNoOutfit,
	}

	rec := day.Recommendation
	if rec == nil {
		return item
	}
	if rec.Outfit != "" {
		item.Outfit = rec.Outfit
	}
	if text := outfit.FormatList(rec.Accessories, outfit.AccessorySep); text != "" {
		item.Accessories = outfit.AccessoryLabel + text
	}
	if text := outfit.FormatList(rec.Tips, outfit.TipSep); text != "" {
		item.Tips = outfit.TipLabel + text
	}
	return item
}
