package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	attendanceerrors "hrms-lite/internal/attendance/errors"
	"hrms-lite/internal/events"
	"hrms-lite/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	employees map[string]bool
	rows      []Attendance
	createErr error
	nextID    uint
}

func newFakeRepo(employeeIDs ...string) *fakeRepo {
	f := &fakeRepo{employees: map[string]bool{}}
	for _, id := range employeeIDs {
		f.employees[id] = true
	}
	return f
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	a.ID = f.nextID
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeRepo) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	return f.employees[employeeID], nil
}

func (f *fakeRepo) ExistsByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	for _, r := range f.rows {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var out []Attendance
	for _, r := range f.rows {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var out []Attendance
	for _, r := range f.rows {
		if r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, e kafka.OutboxEvent) error {
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit, maxRetries int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestService_Mark(t *testing.T) {
	ctx := context.Background()

	t.Run("success writes row and event", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		repo := newFakeRepo("EMP001")
		outbox := &fakeOutbox{}
		svc := NewServiceWithOutbox(db, repo, outbox)

		res, err := svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})

		assert.NoError(t, err)
		assert.Equal(t, AttendanceResponse{ID: 1, EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"}, res)
		assert.Len(t, outbox.created, 1)
		assert.Equal(t, events.AttendanceTopic, outbox.created[0].Topic)

		var payload events.AttendanceMarkedEvent
		assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &payload))
		assert.Equal(t, uint(1), payload.AttendanceID)
		assert.Equal(t, "2024-01-15", payload.Date)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := NewService(db, newFakeRepo())

		_, err := svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "NOPE", Date: "2024-01-15", Status: "Present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
		assert.EqualError(t, err, "Employee with ID NOPE not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second mark for the same day is rejected", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := newFakeRepo("EMP001")
		svc := NewService(db, repo)

		_, err := svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})
		assert.NoError(t, err)

		_, err = svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Absent"})
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceAlreadyMarked)
		assert.EqualError(t, err, "Attendance already marked for 2024-01-15")
		assert.Len(t, repo.rows, 1)
		assert.Equal(t, StatusPresent, repo.rows[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation at insert", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := newFakeRepo("EMP001")
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}
		repo.createErr = pgErr
		svc := NewService(db, repo)

		_, err := svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceAlreadyMarked)
		assert.EqualError(t, err, "Attendance already marked for 2024-01-15: "+pgErr.Error())
		var cause *pgconn.PgError
		assert.True(t, errors.As(err, &cause))
	})

	t.Run("foreign key violation at insert names the employee", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := newFakeRepo("EMP001")
		repo.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "fk_attendance_employee"}
		svc := NewService(db, repo)

		_, err := svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
		assert.Contains(t, err.Error(), "Employee with ID EMP001 not found")
	})

	t.Run("consecutive days for the same employee both persist", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectCommit()

		repo := newFakeRepo("EMP001")
		svc := NewService(db, repo)

		first, err := svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})
		assert.NoError(t, err)
		second, err := svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-01-16", Status: "Absent"})
		assert.NoError(t, err)

		assert.Equal(t, "2024-01-15", first.Date)
		assert.Equal(t, "2024-01-16", second.Date)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Len(t, repo.rows, 2)

		byEmployee, err := svc.GetByEmployee(ctx, "EMP001")
		assert.NoError(t, err)
		assert.Len(t, byEmployee, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid date and status never open a transaction", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewService(db, newFakeRepo("EMP001"))

		_, err := svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-13-45", Status: "Present"})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)

		_, err = svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-01-15", Status: "present"})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		svc := NewService(db, newFakeRepo("EMP001"))

		_, err := svc.Mark(ctx, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})
		assert.EqualError(t, err, "pool exhausted")
	})
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.rows = []Attendance{
		{ID: 1, EmployeeID: "EMP001", Date: day, Status: StatusPresent},
		{ID: 2, EmployeeID: "EMP002", Date: day, Status: StatusAbsent},
		{ID: 3, EmployeeID: "EMP001", Date: day.AddDate(0, 0, 1), Status: StatusAbsent},
	}
	db, _ := newTestDB(t)
	svc := NewService(db, repo)

	t.Run("by employee", func(t *testing.T) {
		res, err := svc.GetByEmployee(ctx, "EMP001")
		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, uint(1), res[0].ID)
		assert.Equal(t, "2024-01-16", res[1].Date)
	})

	t.Run("unknown employee is an empty list", func(t *testing.T) {
		res, err := svc.GetByEmployee(ctx, "GHOST")
		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("by date", func(t *testing.T) {
		res, err := svc.GetByDate(ctx, "2024-01-15")
		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, "Absent", res[1].Status)
	})

	t.Run("unparseable date", func(t *testing.T) {
		_, err := svc.GetByDate(ctx, "15-01-2024")
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})
}

func TestMapRepositoryError(t *testing.T) {
	assert.ErrorIs(t,
		mapRepositoryError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_attendance_employee"}),
		attendanceerrors.ErrEmployeeNotFound)
	assert.ErrorIs(t,
		mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}),
		attendanceerrors.ErrAttendanceAlreadyMarked)

	other := &pgconn.PgError{Code: "23505", ConstraintName: "something_else"}
	assert.Equal(t, error(other), mapRepositoryError(other))
	assert.NoError(t, mapRepositoryError(nil))
}

func TestDescribeConflict(t *testing.T) {
	req := MarkAttendanceRequest{EmployeeID: "EMP007", Date: "2024-02-01", Status: "Present"}

	dup := describeConflict(mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}), req)
	assert.ErrorIs(t, dup, attendanceerrors.ErrAttendanceAlreadyMarked)
	assert.Contains(t, dup.Error(), "Attendance already marked for 2024-02-01")

	fk := describeConflict(mapRepositoryError(&pgconn.PgError{Code: "23503"}), req)
	assert.ErrorIs(t, fk, attendanceerrors.ErrEmployeeNotFound)
	assert.Contains(t, fk.Error(), "Employee with ID EMP007 not found")

	plain := errors.New("boom")
	assert.Equal(t, plain, describeConflict(plain, req))
}
