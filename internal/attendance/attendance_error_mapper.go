package attendance

import (
	"errors"

	attendanceerrors "hrms-lite/internal/attendance/errors"
	"hrms-lite/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	constraintEmployeeDate = "uq_attendance_employee_date"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintEmployeeDate:
			return attendanceerrors.ErrAttendanceAlreadyMarked.WithCause(err)
		case pgErr.Code == pgForeignKeyViolation:
			// employee deleted between the existence check and the insert
			return attendanceerrors.ErrEmployeeNotFound.WithCause(err)
		}
	}

	return err
}

// describeConflict names the employee or date in a mapped constraint error.
func describeConflict(err error, req MarkAttendanceRequest) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(appErr, attendanceerrors.ErrAttendanceAlreadyMarked):
		return attendanceerrors.ErrAttendanceAlreadyMarked.
			Withf("Attendance already marked for %s", req.Date).
			WithCause(appErr.Err)
	case errors.Is(appErr, attendanceerrors.ErrEmployeeNotFound):
		return attendanceerrors.ErrEmployeeNotFound.
			Withf("Employee with ID %s not found", req.EmployeeID).
			WithCause(appErr.Err)
	}
	return err
}
