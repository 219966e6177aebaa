package attendanceerrors

import (
	"net/http"

	"hrms-lite/internal/shared/apperror"
)

var (
	// ErrEmployeeNotFound is a bad reference in the request body, hence 400.
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidReference,
		"Employee not found",
		http.StatusBadRequest,
	)
	ErrAttendanceAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"Attendance already marked for this date",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be a valid date (YYYY-MM-DD)",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of: Present, Absent",
		http.StatusBadRequest,
	)
)
