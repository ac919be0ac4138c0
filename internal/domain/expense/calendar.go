package expense

import "time"

// AddMonths shifts a date forward by whole calendar months, clamping the day
// of month when the target month is shorter: Jan 31 + 1 month is the last
// day of February, never an overflow into March. This mirrors the behavior
// the due-date schedule was designed around and keeps every installment of
// a month-end purchase on a month-end due date.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	m := int(month) + months
	year += (m - 1) / 12
	m = (m-1)%12 + 1
	if m <= 0 {
		m += 12
		year--
	}

	if last := daysIn(year, time.Month(m)); day > last {
		day = last
	}

	return time.Date(year, time.Month(m), day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// TruncateToDay drops the time-of-day component, keeping the location.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// sameMonth reports whether two dates fall in the same calendar month and year.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
