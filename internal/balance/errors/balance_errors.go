package balanceerrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave id",
		http.StatusBadRequest,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)

	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave type",
		http.StatusBadRequest,
	)

	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"Chargeable days must be positive",
		http.StatusBadRequest,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	// ErrAlreadyDeducted means the leave has been charged before.
	ErrAlreadyDeducted = apperror.New(
		apperror.CodeConflict,
		"Leave balance already deducted",
		http.StatusConflict,
	)
)
