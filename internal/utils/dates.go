package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of expirations and candle times
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDate: invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatExpiration renders YYYY-MM-DD as M/D/YYYY. Anything else is returned unchanged.
func FormatExpiration(s string) string {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// NextMonthlyExpiration returns the next standard monthly expiration (third Friday):
// - Third Friday of the current month if we haven't reached the expiration week yet
// - Third Friday of next month if we're in or past the expiration week
func NextMonthlyExpiration(today time.Time) string {
	thirdFriday := thirdFridayOf(today.Year(), today.Month(), today.Location())

	// If current day is in the week of 3rd Friday or past it, use next month's 3rd Friday
	weekStart := thirdFriday.AddDate(0, 0, -7)
	if !today.Before(weekStart) {
		next := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		return thirdFridayOf(next.Year(), next.Month(), today.Location()).Format(DateLayout)
	}

	return thirdFriday.Format(DateLayout)
}

func thirdFridayOf(year int, month time.Month, loc *time.Location) time.Time {
	firstFriday := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	for firstFriday.Weekday() != time.Friday {
		firstFriday = firstFriday.AddDate(0, 0, 1)
	}
	return firstFriday.AddDate(0, 0, 14)
}
