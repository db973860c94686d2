package feedback

import "time"

// Cutoff returns the earliest calendar date (inclusive) covered by period,
// expressed as midnight UTC. ok is false for unknown or empty tokens, which
// means no filtering at all.
//
// Month arithmetic follows time.AddDate, so Mar 31 minus one month lands on
// Mar 3 (Feb 31 normalised) rather than being clamped to Feb 28.
func Cutoff(period string, now time.Time) (cutoff time.Time, ok bool) {
	var from time.Time
	switch period {
	case PeriodLastWeek:
		from = now.AddDate(0, 0, -7)
	case PeriodLastMonth:
		from = now.AddDate(0, -1, 0)
	case PeriodLastQuarter:
		from = now.AddDate(0, -3, 0)
	case PeriodYearToDate:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}, false
	}
	return calendarDate(from), true
}

// KnownPeriod reports whether period narrows the result set.
func KnownPeriod(period string) bool {
	_, ok := Cutoff(period, time.Now())
	return ok
}

// FilterByPeriod keeps records dated on or after the period cutoff. The input
// slice is not modified.
func FilterByPeriod(records []Record, period string, now time.Time) []Record {
	cutoff, ok := Cutoff(period, now)
	if !ok {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if OnOrAfter(rec.Date, cutoff) {
			out = append(out, rec)
		}
	}
	return out
}

// OnOrAfter compares calendar dates only; the time of day and location of
// either value are ignored.
func OnOrAfter(date, cutoff time.Time) bool {
	return !calendarDate(date).Before(calendarDate(cutoff))
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD value into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
