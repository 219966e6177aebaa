package attendance

import (
	"context"
	"database/sql"
	"time"

	attendanceerrors "hrms-lite/internal/attendance/errors"
	"hrms-lite/internal/events"
	"hrms-lite/internal/messaging/kafka"
	"hrms-lite/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetByDate(ctx context.Context, date string) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	status := Status(req.Status)
	if !status.Valid() {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !exists {
		s.logger.Warn("mark attendance unknown employee",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
		)
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound.Withf("Employee with ID %s not found", req.EmployeeID)
	}

	marked, err := qtx.ExistsByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if marked {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceAlreadyMarked.Withf("Attendance already marked for %s", req.Date)
	}

	row := &Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     status,
	}
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("mark attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, describeConflict(mapRepositoryError(err), req)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "attendance", row.EmployeeID, events.EventAttendanceMarked, events.AttendanceTopic,
			events.AttendanceMarkedEvent{
				EventType:    events.EventAttendanceMarked,
				RequestID:    rid,
				AttendanceID: row.ID,
				EmployeeID:   row.EmployeeID,
				Date:         req.Date,
				Status:       string(row.Status),
				OccurredAt:   time.Now().UTC(),
			})
		if err != nil {
			return AttendanceResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("mark attendance outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, describeConflict(mapRepositoryError(err), req)
	}

	s.logger.Info("attendance marked",
		zap.String("request_id", rid),
		zap.String("employee_id", row.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", string(row.Status)),
	)

	return mapToResponse(*row), nil
}

// GetByEmployee returns an empty list for unknown employees.
func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get attendance by employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByDate(ctx context.Context, date string) ([]AttendanceResponse, error) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}

	rows, err := s.repo.FindByDate(ctx, day)
	if err != nil {
		s.logger.Error("get attendance by date failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format(time.DateOnly),
		Status:     string(a.Status),
	}
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
