package attendance

import "time"

// WorkingDays counts Monday..Friday dates in [start, end], both inclusive.
// It returns 0 when end is before start.
func WorkingDays(start, end time.Time) int {
	from := truncateDate(start)
	to := truncateDate(end)

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
