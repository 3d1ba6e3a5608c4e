// Package pickup computes the fulfillment date shown to customers.
//
// Orders are picked up on Friday. Orders placed Monday, Tuesday, or
// Wednesday before 20:00 are ready the same week; anything later rolls
// over to the following Friday.
package pickup

import "time"

const (
	friday = 5
	// Wednesday orders at or after this hour miss the same-week pickup.
	cutoffHour = 20
)

// BusinessDay maps the calendar weekday to 1..7 with Monday=1 and Sunday=7.
func BusinessDay(now time.Time) int {
	wd := int(now.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Offset returns the number of days between now and the pickup date.
func Offset(now time.Time) int {
	day := BusinessDay(now)
	if day <= 2 || (day == 3 && now.Hour() < cutoffHour) {
		return friday - day
	}
	return friday + 7 - day
}

// Date returns the pickup date for an order placed at now, truncated to
// midnight in now's location.
func Date(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+Offset(now), 0, 0, 0, 0, now.Location())
}

// Format renders a pickup date the way it appears in order summaries.
func Format(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
