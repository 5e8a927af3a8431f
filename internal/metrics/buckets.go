package metrics

import "time"

// Date-bucket filters. The boundaries below double as period-over-period
// comparisons: "today vs yesterday" and "this month vs last month" reuse the
// same constructors with shifted reference dates, so they must stay exact.

// Today matches timestamps on the same calendar day as ref, comparing with
// time-of-day zeroed on both sides.
func Today(ref time.Time) RangeFunc {
	day := dayStart(ref)
	return func(t time.Time) bool {
		return dayStart(t).Equal(day)
	}
}

// ThisWeek matches from the Sunday-aligned start of ref's week through ref.
func ThisWeek(ref time.Time) RangeFunc {
	start := dayStart(ref).AddDate(0, 0, -int(ref.Weekday()))
	return func(t time.Time) bool {
		return !t.Before(start) && !t.After(ref)
	}
}

// ThisMonth matches from the first of ref's month through ref.
func ThisMonth(ref time.Time) RangeFunc {
	start := monthStart(ref)
	return func(t time.Time) bool {
		return !t.Before(start) && !t.After(ref)
	}
}

// LastMonth matches the full calendar month before ref's month, inclusive.
func LastMonth(ref time.Time) RangeFunc {
	end := monthStart(ref)
	start := end.AddDate(0, -1, 0)
	return func(t time.Time) bool {
		return !t.Before(start) && t.Before(end)
	}
}

// Custom matches from the start date (day-aligned) through the end of the end
// date, both inclusive.
func Custom(start, end time.Time) RangeFunc {
	from := dayStart(start)
	to := dayStart(end).AddDate(0, 0, 1)
	return func(t time.Time) bool {
		return !t.Before(from) && t.Before(to)
	}
}

// All matches everything.
func All() RangeFunc {
	return func(time.Time) bool { return true }
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
