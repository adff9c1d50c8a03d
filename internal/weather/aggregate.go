package weather

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// DailyForecastDays caps the number of days AggregateDaily returns.
	DailyForecastDays = 5

	// MiddayHour is the local hour whose sample stands in for the whole day.
	MiddayHour = 12

	dateKeyLayout = "2006-01-02"
)

// ValidDateKey reports whether key is a YYYY-MM-DD calendar date.
func ValidDateKey(key string) bool {
	if key == "" {
		return false
	}
	_, err := time.Parse(dateKeyLayout, key)
	return err == nil
}

// AggregateDaily buckets a time-ordered forecast list into per-day summaries.
// Days are emitted in the order their key first appears and the result is
// truncated to DailyForecastDays. Samples with an invalid DateKey are dropped.
func AggregateDaily(samples []ForecastSample) []DailySummary {
	groups := orderedmap.New[string, []ForecastSample]()
	for _, s := range samples {
		if !ValidDateKey(s.DateKey) {
			continue
		}
		day, _ := groups.Get(s.DateKey)
		groups.Set(s.DateKey, append(day, s))
	}

	out := make([]DailySummary, 0, min(groups.Len(), DailyForecastDays))
	for pair := groups.Oldest(); pair != nil && len(out) < DailyForecastDays; pair = pair.Next() {
		out = append(out, summarizeDay(pair.Key, pair.Value))
	}
	return out
}

// summarizeDay expects a non-empty group.
func summarizeDay(key string, day []ForecastSample) DailySummary {
	rep := representative(day)
	sum := DailySummary{
		DateKey:                 key,
		RepresentativeTimestamp: rep.Timestamp,
		MaxTemperature:          day[0].Temperature,
		MinTemperature:          day[0].Temperature,
		Condition:               rep.Condition,
	}
	for _, s := range day[1:] {
		sum.MaxTemperature = max(sum.MaxTemperature, s.Temperature)
		sum.MinTemperature = min(sum.MinTemperature, s.Temperature)
	}
	return sum
}

// representative returns the first midday sample, or the first sample when no
// sample falls on MiddayHour.
func representative(day []ForecastSample) ForecastSample {
	for _, s := range day {
		if !s.LocalTime.IsZero() && s.LocalTime.Hour() == MiddayHour {
			return s
		}
	}
	return day[0]
}

// HourlyForecast returns the first n samples formatted for the hourly strip.
func HourlyForecast(samples []ForecastSample, n int) []HourlyEntry {
	if n > len(samples) {
		n = len(samples)
	}
	if n < 0 {
		n = 0
	}
	out := make([]HourlyEntry, 0, n)
	for _, s := range samples[:n] {
		out = append(out, HourlyEntry{
			Timestamp:         s.Timestamp,
			Time:              FormatClock(s.LocalTime),
			Temperature:       FormatTemperature(s.Temperature),
			PrecipProbability: s.PrecipProbability,
			Condition:         s.Condition,
			IconURL:           IconURL(s.Condition.IconID, false),
		})
	}
	return out
}

// DailyRows labels each summary with the weekday and "Jan 2" date of its
// representative timestamp at offset seconds east of UTC.
func DailyRows(days []DailySummary, offset int) []DailyRow {
	rows := make([]DailyRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, DailyRow{
			DailySummary: d,
			Day:          FormatWeekday(d.RepresentativeTimestamp, offset),
			Date:         FormatMonthDay(d.RepresentativeTimestamp, offset),
		})
	}
	return rows
}
