package leaveerrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

// Error kinds surfaced by the validator and the approval state machine.
const (
	CodePastDate         = "PAST_DATE"
	CodeInvertedRange    = "INVERTED_RANGE"
	CodeAllWeekend       = "ALL_WEEKEND"
	CodeRangeTooLong     = "RANGE_TOO_LONG"
	CodeDateConflict     = "DATE_CONFLICT"
	CodeAlreadyFinal     = "ALREADY_FINAL"
	CodeUnauthorizedRole = "UNAUTHORIZED_ROLE"
)

var (
	ErrPastDate = apperror.New(
		CodePastDate,
		"leave dates cannot be in the past",
		http.StatusUnprocessableEntity,
	)
	ErrInvertedRange = apperror.New(
		CodeInvertedRange,
		"fromDate cannot be after toDate",
		http.StatusUnprocessableEntity,
	)
	ErrAllWeekend = apperror.New(
		CodeAllWeekend,
		"leave period falls entirely on weekends",
		http.StatusUnprocessableEntity,
	)
	ErrRangeTooLong = apperror.New(
		CodeRangeTooLong,
		"leave period cannot be longer than 366 days",
		http.StatusUnprocessableEntity,
	)
	ErrDateConflict = apperror.New(
		CodeDateConflict,
		"leave already requested on one or more of these dates",
		http.StatusConflict,
	)
	ErrAlreadyFinal = apperror.New(
		CodeAlreadyFinal,
		"leave request is already approved or rejected",
		http.StatusConflict,
	)
	ErrUnauthorizedRole = apperror.New(
		CodeUnauthorizedRole,
		"role is not required to act on this leave request",
		http.StatusForbidden,
	)
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidRequesterID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid requester id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave type must be one of casual, sick, earned",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of employee, manager, hr, admin",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be approve or reject",
		http.StatusBadRequest,
	)
	ErrRequesterNotFound = apperror.New(
		apperror.CodeNotFound,
		"requester not found",
		http.StatusNotFound,
	)
	ErrRequesterMismatch = apperror.New(
		apperror.CodeForbidden,
		"leave can only be requested for yourself",
		http.StatusForbidden,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrRoleMismatch = apperror.New(
		apperror.CodeForbidden,
		"actingRole does not match your role",
		http.StatusForbidden,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"you cannot act on your own leave request",
		http.StatusForbidden,
	)
	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester can cancel this leave",
		http.StatusForbidden,
	)
	ErrLeaveAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"you do not have access to this leave",
		http.StatusForbidden,
	)
	ErrNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave can be cancelled",
		http.StatusConflict,
	)
	ErrStaleLeave = apperror.New(
		apperror.CodeConflict,
		"leave was modified concurrently, please retry",
		http.StatusConflict,
	)
)
