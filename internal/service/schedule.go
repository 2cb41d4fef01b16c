package service

import (
	"strings"
	"time"

	"github.com/unclebandit/campaign-studio-backend/internal/model"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday reports the weekday named by label, ignoring case and surrounding space.
func ParseWeekday(label string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(label))]
	return wd, ok
}

// ResolveDate maps a day label and the slot's position in its batch to a calendar
// date at local midnight in now's location. It never fails: unrecognized labels
// behave like mid_month.
func ResolveDate(dayLabel string, index int, now time.Time) time.Time {
	today := startOfDay(now)
	label := strings.ToLower(strings.TrimSpace(dayLabel))

	if label == model.DayToday {
		return today
	}

	if target, ok := weekdays[label]; ok {
		offset := (int(target) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, offset)
	}

	monthLen := daysIn(today.Year(), today.Month(), today.Location())

	var base, width int
	switch label {
	case model.DayEarlyMonth:
		base, width = 1, 10
	case model.DayLateMonth:
		base, width = 21, monthLen-20
	default:
		base, width = 11, 10
	}

	// Negating math.MinInt overflows, so fold negatives through the remainder.
	offset := index % width
	if offset < 0 {
		offset = -offset
	}
	day := base + offset
	if day > monthLen {
		day = monthLen
	}

	return time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, today.Location())
}

// FormatDate renders t as an ISO 8601 calendar date.
func FormatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

// ParseDate parses an ISO 8601 calendar date as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, strings.TrimSpace(s), loc)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
