package leave

import (
	"time"

	leaveerrors "go-leavedesk/internal/leave/errors"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDate reads a YYYY-MM-DD calendar date as 00:00 UTC.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// DateOf returns the calendar date of instant t as observed in loc, as 00:00 UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return civil(t)
}

func FormatDate(t time.Time) string {
	return civil(t).Format(dateLayout)
}

// civil drops the clock and zone, keeping the wall-clock calendar day.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// chargeableDates lists the Monday..Friday dates in [from, to].
func chargeableDates(from, to time.Time) []time.Time {
	from, to = civil(from), civil(to)

	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// ChargeableDays counts the weekdays in [from, to]; zero when from > to.
func ChargeableDays(from, to time.Time) int {
	return len(chargeableDates(from, to))
}
