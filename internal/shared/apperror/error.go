package apperror

import "fmt"

// AppError is a typed failure carrying a stable code and the HTTP status
// it is reported with. Details is optional and is written as-is into the
// error envelope.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    any
	Err        error

	// base is the sentinel this error was derived from via WithDetails.
	base *AppError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel a detailed copy came from, so
// errors.Is(ErrX.WithDetails(d), ErrX) holds.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.base != nil && t == e.base
}

// WithDetails returns a copy of e carrying details. The receiver is left
// untouched.
func (e *AppError) WithDetails(details any) *AppError {
	base := e
	if e.base != nil {
		base = e.base
	}
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		HTTPStatus: e.HTTPStatus,
		Details:    details,
		Err:        e.Err,
		base:       base,
	}
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap keeps err as the cause. A nil err yields nil.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
