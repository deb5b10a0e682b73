package leave

import (
	"time"

	leaveerrors "go-leavedesk/internal/leave/errors"
)

type ValidationResult struct {
	ChargeableDays  int
	ChargeableDates []time.Time
}

// MaxRangeDays bounds a single request, counted in calendar days inclusive.
const MaxRangeDays = 366

// Validate checks a candidate range against today and the requester's
// existing leaves. Checks run in a fixed order and the first failure wins:
// past date, inverted range, range too long, all weekend, then date conflict.
// Rejected leaves do not hold dates.
func Validate(candidate DateRange, today time.Time, existing []LeaveRequest) (ValidationResult, error) {
	from, to := civil(candidate.From), civil(candidate.To)
	today = civil(today)

	if from.Before(today) || to.Before(today) {
		return ValidationResult{}, leaveerrors.ErrPastDate
	}
	if from.After(to) {
		return ValidationResult{}, leaveerrors.ErrInvertedRange
	}
	if to.Sub(from) >= MaxRangeDays*24*time.Hour {
		return ValidationResult{}, leaveerrors.ErrRangeTooLong.WithDetails(map[string]int{"max_days": MaxRangeDays})
	}

	dates := chargeableDates(from, to)
	if len(dates) == 0 {
		return ValidationResult{}, leaveerrors.ErrAllWeekend
	}

	held := heldDates(existing, from, to)
	for _, d := range dates {
		if _, ok := held[d]; ok {
			return ValidationResult{}, leaveerrors.ErrDateConflict.WithDetails(map[string]string{"date": FormatDate(d)})
		}
	}

	return ValidationResult{
		ChargeableDays:  len(dates),
		ChargeableDates: dates,
	}, nil
}

// heldDates collects the weekdays inside [from, to] already claimed by
// pending or approved leaves. Existing ranges are clipped to the window.
func heldDates(existing []LeaveRequest, from, to time.Time) map[time.Time]struct{} {
	held := make(map[time.Time]struct{})
	for _, lr := range existing {
		if lr.Status == StatusRejected {
			continue
		}
		start, end := civil(lr.FromDate), civil(lr.ToDate)
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		for _, d := range chargeableDates(start, end) {
			held[d] = struct{}{}
		}
	}
	return held
}
