package employee

import (
	"errors"
	"strings"

	employeeerrors "hrms-lite/internal/employee/errors"
	"hrms-lite/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation = "23505"

	constraintEmployeeID = "uq_employees_employee_id"
	constraintEmail      = "uq_employees_email"
)

// mapRepositoryError translates storage failures into business errors. The
// unique indexes are the final word on duplicates, so a violation raised by
// a concurrent insert surfaces the same way as the pre-check.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case constraintEmployeeID:
				return employeeerrors.ErrEmployeeIDAlreadyExists.WithCause(err)
			case constraintEmail:
				return employeeerrors.ErrEmailAlreadyExists.WithCause(err)
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraintEmployeeID) {
		return employeeerrors.ErrEmployeeIDAlreadyExists.WithCause(err)
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraintEmail) {
		return employeeerrors.ErrEmailAlreadyExists.WithCause(err)
	}

	return err
}

// describeDuplicate names the conflicting value in a duplicate error.
func describeDuplicate(err error, req CreateEmployeeRequest) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(appErr, employeeerrors.ErrEmployeeIDAlreadyExists):
		return employeeerrors.ErrEmployeeIDAlreadyExists.
			Withf("Employee ID %s already exists", req.EmployeeID).
			WithCause(appErr.Err)
	case errors.Is(appErr, employeeerrors.ErrEmailAlreadyExists):
		return employeeerrors.ErrEmailAlreadyExists.
			Withf("Email %s already exists", req.Email).
			WithCause(appErr.Err)
	}
	return err
}
