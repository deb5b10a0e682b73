package usererrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of employee, manager, hr, admin",
		http.StatusBadRequest,
	)

	ErrManagerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Manager not found",
		http.StatusNotFound,
	)

	ErrNotAManager = apperror.New(
		apperror.CodeInvalidInput,
		"Assigned manager must have the manager role",
		http.StatusUnprocessableEntity,
	)

	ErrSelfManager = apperror.New(
		apperror.CodeInvalidInput,
		"A user cannot be their own manager",
		http.StatusUnprocessableEntity,
	)

	ErrTeamAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"Managers can only view their own team",
		http.StatusForbidden,
	)
)
