package weather

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const iconBaseURL = "https://openweathermap.org/img/wn/"

var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// KelvinToCelsius converts an absolute temperature to Celsius.
func KelvinToCelsius(k float64) float64 {
	return k - 273.15
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// FormatTemperature renders a Celsius value as a whole number, e.g. "21°C".
func FormatTemperature(c float64) string {
	return fmt.Sprintf("%d°C", roundHalfUp(c))
}

// LocalTime converts a unix timestamp to the fixed zone at offset seconds east of UTC.
func LocalTime(unix int64, offset int) time.Time {
	return time.Unix(unix, 0).In(time.FixedZone("", offset))
}

// FormatClock renders a time as "3:04 PM".
func FormatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatWeekday renders the abbreviated weekday of a unix time at the given offset.
func FormatWeekday(unix int64, offset int) string {
	return LocalTime(unix, offset).Format("Mon")
}

// FormatMonthDay renders e.g. "Jan 2" for a unix time at the given offset.
func FormatMonthDay(unix int64, offset int) string {
	return LocalTime(unix, offset).Format("Jan 2")
}

// WindDirection maps degrees to an 8-point compass direction.
func WindDirection(deg float64) string {
	i := roundHalfUp(deg/45) % len(compassPoints)
	if i < 0 {
		i += len(compassPoints)
	}
	return compassPoints[i]
}

// IsDaytime reports whether now falls between sunrise and sunset, inclusive.
func IsDaytime(now, sunrise, sunset int64) bool {
	return now >= sunrise && now <= sunset
}

// IconURL returns the image URL for an icon id. Large selects the @2x variant.
func IconURL(iconID string, large bool) string {
	if iconID == "" {
		return ""
	}
	if large {
		return iconBaseURL + iconID + "@2x.png"
	}
	return iconBaseURL + iconID + ".png"
}

// DescribeCondition returns a display-ready description such as "Light Rain".
func DescribeCondition(c Condition) string {
	if c.Description == "" {
		return c.Category
	}
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.English).String(c.Description)
}
