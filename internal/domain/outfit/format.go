package outfit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var weekdayNames = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// Float is a convenience for building optional numbers.
func Float(v float64) *float64 {
	return &v
}

// FormatTemperature renders "{round(x)}°C", or "" when x is absent or not finite.
func FormatTemperature(v *float64) string {
	n, ok := finite(v)
	if !ok {
		return ""
	}
	return roundText(n) + "°C"
}

// FormatTemperatureRange renders "max / min", or whichever side is present.
func FormatTemperatureRange(min, max *float64) string {
	minText := FormatTemperature(min)
	maxText := FormatTemperature(max)
	if minText != "" && maxText != "" {
		return maxText + " / " + minText
	}
	if maxText != "" {
		return maxText
	}
	return minText
}

// FormatWind renders the daily maximum wind speed line, or "".
func FormatWind(v *float64) string {
	n, ok := finite(v)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %s m/s", WindLabel, roundText(n))
}

// FormatList joins items with sep; nil or empty yields "".
func FormatList(items []string, sep string) string {
	if len(items) == 0 {
		return ""
	}
	return strings.Join(items, sep)
}

// FormatDate renders a calendar date as "{M}月{D}日周X".
func FormatDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DatePending
	}
	d, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return DatePending
	}
	return fmt.Sprintf("%d月%d日%s", int(d.Month()), d.Day(), weekdayNames[d.Weekday()])
}

// WeatherLine joins the description and temperature range with " · ".
func WeatherLine(day ForecastDay) string {
	parts := make([]string, 0, 2)
	if text := strings.TrimSpace(day.WeatherText); text != "" {
		parts = append(parts, text)
	}
	if rng := FormatTemperatureRange(day.TemperatureMin, day.TemperatureMax); rng != "" {
		parts = append(parts, rng)
	}
	return strings.Join(parts, " · ")
}

func finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// roundText rounds half up like a browser's Math.round.
func roundText(n float64) string {
	r := math.Floor(n+0.5) + 0
	return strconv.FormatFloat(r, 'f', 0, 64)
}
