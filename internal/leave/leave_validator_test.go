package leave_test

import (
	"errors"
	"testing"
	"time"

	"go-leavedesk/internal/leave"
	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := leave.ParseDate(v)
	assert.NoError(t, err)
	return d
}

func rangeOf(t *testing.T, from, to string) leave.DateRange {
	t.Helper()
	return leave.DateRange{From: mustDate(t, from), To: mustDate(t, to)}
}

func TestValidate(t *testing.T) {
	// 2026-03-02 is a Monday.
	today := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	t.Run("success full week counts five days", func(t *testing.T) {
		res, err := leave.Validate(rangeOf(t, "2026-03-02", "2026-03-08"), today, nil)
		assert.NoError(t, err)
		assert.Equal(t, 5, res.ChargeableDays)
		assert.Len(t, res.ChargeableDates, 5)
	})

	t.Run("success today is allowed", func(t *testing.T) {
		res, err := leave.Validate(rangeOf(t, "2026-03-02", "2026-03-02"), today, nil)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.ChargeableDays)
	})

	t.Run("success friday through monday counts two days", func(t *testing.T) {
		res, err := leave.Validate(rangeOf(t, "2026-03-06", "2026-03-09"), today, nil)
		assert.NoError(t, err)
		assert.Equal(t, 2, res.ChargeableDays)
	})

	t.Run("success weekend overlap with existing leave is not a conflict", func(t *testing.T) {
		existing := []leave.LeaveRequest{{
			FromDate: mustDate(t, "2026-03-07"),
			ToDate:   mustDate(t, "2026-03-08"),
			Status:   leave.StatusApproved,
		}}
		res, err := leave.Validate(rangeOf(t, "2026-03-06", "2026-03-09"), today, existing)
		assert.NoError(t, err)
		assert.Equal(t, 2, res.ChargeableDays)
	})

	t.Run("success rejected leave does not block", func(t *testing.T) {
		existing := []leave.LeaveRequest{{
			FromDate: mustDate(t, "2026-03-03"),
			ToDate:   mustDate(t, "2026-03-05"),
			Status:   leave.StatusRejected,
		}}
		_, err := leave.Validate(rangeOf(t, "2026-03-04", "2026-03-04"), today, existing)
		assert.NoError(t, err)
	})

	t.Run("success repeated calls give the same result", func(t *testing.T) {
		candidate := rangeOf(t, "2026-03-04", "2026-03-10")
		first, err1 := leave.Validate(candidate, today, nil)
		second, err2 := leave.Validate(candidate, today, nil)
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, first, second)
	})

	t.Run("negative from in the past", func(t *testing.T) {
		_, err := leave.Validate(rangeOf(t, "2026-03-01", "2026-03-04"), today, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrPastDate)
	})

	t.Run("negative past date wins over inverted range", func(t *testing.T) {
		_, err := leave.Validate(rangeOf(t, "2026-03-04", "2026-02-27"), today, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrPastDate)
	})

	t.Run("negative inverted range", func(t *testing.T) {
		_, err := leave.Validate(rangeOf(t, "2026-03-10", "2026-03-09"), today, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrInvertedRange)
	})

	t.Run("negative weekend only", func(t *testing.T) {
		_, err := leave.Validate(rangeOf(t, "2026-03-07", "2026-03-08"), today, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrAllWeekend)
	})

	t.Run("negative every day before today", func(t *testing.T) {
		_, err := leave.Validate(rangeOf(t, "2026-02-23", "2026-02-27"), today, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrPastDate)
	})

	t.Run("negative single saturday", func(t *testing.T) {
		_, err := leave.Validate(rangeOf(t, "2026-03-07", "2026-03-07"), today, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrAllWeekend)
	})

	t.Run("success range at the length limit", func(t *testing.T) {
		// 366 hari kalender inklusif
		res, err := leave.Validate(rangeOf(t, "2026-03-02", "2027-03-02"), today, nil)
		assert.NoError(t, err)
		assert.Equal(t, 262, res.ChargeableDays)
	})

	t.Run("negative range one day over the limit", func(t *testing.T) {
		_, err := leave.Validate(rangeOf(t, "2026-03-02", "2027-03-03"), today, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrRangeTooLong)
	})

	t.Run("negative huge range is rejected before walking days", func(t *testing.T) {
		_, err := leave.Validate(rangeOf(t, "2026-03-02", "9999-12-31"), today, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrRangeTooLong)
	})

	t.Run("negative weekend only range too long reports length", func(t *testing.T) {
		_, err := leave.Validate(rangeOf(t, "2026-03-07", "2028-03-07"), today, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrRangeTooLong)
	})

	t.Run("negative conflict with long existing leave is clipped to the window", func(t *testing.T) {
		existing := []leave.LeaveRequest{{
			FromDate: mustDate(t, "2026-03-02"),
			ToDate:   mustDate(t, "9999-12-31"),
			Status:   leave.StatusApproved,
		}}
		_, err := leave.Validate(rangeOf(t, "2026-03-10", "2026-03-10"), today, existing)
		assert.ErrorIs(t, err, leaveerrors.ErrDateConflict)
	})

	t.Run("negative overlaps pending leave", func(t *testing.T) {
		existing := []leave.LeaveRequest{{
			FromDate: mustDate(t, "2026-03-04"),
			ToDate:   mustDate(t, "2026-03-05"),
			Status:   leave.StatusPending,
		}}
		_, err := leave.Validate(rangeOf(t, "2026-03-05", "2026-03-10"), today, existing)
		assert.ErrorIs(t, err, leaveerrors.ErrDateConflict)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, map[string]string{"date": "2026-03-05"}, appErr.Details)
	})

	t.Run("negative overlaps approved leave", func(t *testing.T) {
		existing := []leave.LeaveRequest{{
			FromDate: mustDate(t, "2026-03-09"),
			ToDate:   mustDate(t, "2026-03-09"),
			Status:   leave.StatusApproved,
		}}
		_, err := leave.Validate(rangeOf(t, "2026-03-02", "2026-03-13"), today, existing)
		assert.ErrorIs(t, err, leaveerrors.ErrDateConflict)
	})
}

func TestChargeableDays(t *testing.T) {
	assert.Equal(t, 0, leave.ChargeableDays(mustDate(t, "2026-03-07"), mustDate(t, "2026-03-08")))
	assert.Equal(t, 10, leave.ChargeableDays(mustDate(t, "2026-03-02"), mustDate(t, "2026-03-15")))
	assert.Equal(t, 0, leave.ChargeableDays(mustDate(t, "2026-03-10"), mustDate(t, "2026-03-02")))
}

func TestDateOf(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// 20:00 UTC on the 2nd is already the 3rd in Jakarta.
	instant := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-03", leave.FormatDate(leave.DateOf(instant, jakarta)))
	assert.Equal(t, "2026-03-02", leave.FormatDate(leave.DateOf(instant, time.UTC)))
}

func TestParseDate(t *testing.T) {
	_, err := leave.ParseDate("02/03/2026")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
}
