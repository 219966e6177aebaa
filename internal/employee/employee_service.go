package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "hrms-lite/internal/employee/errors"
	"hrms-lite/internal/events"
	"hrms-lite/internal/messaging/kafka"
	"hrms-lite/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// EmployeeListCacheKey is a redis hash holding one field per
// version:skip:limit page. A write bumps EmployeeListVersionKey before
// dropping the hash, so a page loaded before the write lands under a version
// no reader asks for again.
const (
	EmployeeListCacheKey   = "employees:list"
	EmployeeListVersionKey = "employees:list:version"
)

const defaultCacheTTL = time.Hour

func EmployeeListCacheField(version int64, skip, limit int) string {
	return fmt.Sprintf("%d:%d:%d", version, skip, limit)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, skip, limit int) ([]EmployeeResponse, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (EmployeeWithAttendanceResponse, error)
	Delete(ctx context.Context, employeeID string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	cacheTTL time.Duration
	sf       *singleflight.Group
	logger   *zap.Logger
}

// Option customises a service.
type Option func(*service)

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("employee.service")
		}
	}
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, opts ...Option) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, opts...)
}

// NewServiceWithOutbox records employee lifecycle events in the same
// transaction as the change itself.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	opts ...Option,
) Service {
	s := &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		rdb:      rdb,
		cacheTTL: defaultCacheTTL,
		sf:       &singleflight.Group{},
		logger:   zap.L().Named("employee.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create employee check employee_id failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if exists {
		s.logger.Warn("create employee duplicate employee_id",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
		)
		return EmployeeResponse{}, employeeerrors.ErrEmployeeIDAlreadyExists.Withf("Employee ID %s already exists", req.EmployeeID)
	}

	exists, err = qtx.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("create employee check email failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if exists {
		s.logger.Warn("create employee duplicate email",
			zap.String("request_id", rid),
			zap.String("email", req.Email),
		)
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists.Withf("Email %s already exists", req.Email)
	}

	empl := &Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, describeDuplicate(mapRepositoryError(err), req)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", empl.EmployeeID, events.EventEmployeeCreated, events.EmployeeLifecycleTopic,
			events.EmployeeCreatedEvent{
				EventType:  events.EventEmployeeCreated,
				RequestID:  rid,
				EmployeeID: empl.EmployeeID,
				Email:      empl.Email,
				Department: empl.Department,
				OccurredAt: time.Now().UTC(),
			})
		if err != nil {
			s.logger.Error("create employee build event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("request_id", rid),
				zap.String("employee_id", empl.EmployeeID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, describeDuplicate(mapRepositoryError(err), req)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.EmployeeID),
		zap.Uint("id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, skip, limit int) ([]EmployeeResponse, error) {
	if skip < 0 || limit < 0 {
		return nil, employeeerrors.ErrInvalidPagination
	}

	version, cacheable := s.listCacheVersion(ctx)
	field := EmployeeListCacheField(version, skip, limit)

	if cacheable {
		cached, err := s.rdb.HGet(ctx, EmployeeListCacheKey, field).Result()
		if err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read employee list cache failed", zap.String("field", field), zap.Error(err))
		}
	}

	// collapse concurrent misses for the same page into one query
	v, err, _ := s.sf.Do(EmployeeListCacheKey+":"+field, func() (any, error) {
		empls, err := s.repo.FindAll(ctx, skip, limit)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if cacheable {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.HSet(ctx, EmployeeListCacheKey, field, string(data)).Err(); err != nil {
					s.logger.Warn("write employee list cache failed", zap.String("field", field), zap.Error(err))
				} else {
					s.rdb.Expire(ctx, EmployeeListCacheKey, s.cacheTTL)
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Int("skip", skip), zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByEmployeeID(ctx context.Context, employeeID string) (EmployeeWithAttendanceResponse, error) {
	s.logger.Debug("get employee requested", zap.String("employee_id", employeeID))

	empl, err := s.repo.FindByEmployeeIDWithAttendance(ctx, employeeID)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			return EmployeeWithAttendanceResponse{}, employeeerrors.ErrEmployeeNotFound.Withf("Employee with ID %s not found", employeeID)
		}
		s.logger.Error("get employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return EmployeeWithAttendanceResponse{}, mapped
	}

	return mapToDetailResponse(*empl), nil
}

// Delete removes the employee and every attendance row referencing it in one
// transaction.
func (s *service) Delete(ctx context.Context, employeeID string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("delete employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	if !exists {
		return employeeerrors.ErrEmployeeNotFound.Withf("Employee with ID %s not found", employeeID)
	}

	removed, err := qtx.DeleteAttendanceByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("delete employee attendance failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	affected, err := qtx.DeleteByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		// removed by a concurrent request after the lookup
		return employeeerrors.ErrEmployeeNotFound.Withf("Employee with ID %s not found", employeeID)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", employeeID, events.EventEmployeeDeleted, events.EmployeeLifecycleTopic,
			events.EmployeeDeletedEvent{
				EventType:         events.EventEmployeeDeleted,
				RequestID:         rid,
				EmployeeID:        employeeID,
				AttendanceRemoved: removed,
				OccurredAt:        time.Now().UTC(),
			})
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("delete employee outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Int64("attendance_removed", removed),
	)
	return nil
}

// listCacheVersion must be read before the database so a page is never filed
// under a version newer than its snapshot. The cache is skipped when the
// version cannot be read.
func (s *service) listCacheVersion(ctx context.Context) (int64, bool) {
	if s.rdb == nil {
		return 0, false
	}
	version, err := s.rdb.Get(ctx, EmployeeListVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		s.logger.Warn("read employee list cache version failed", zap.Error(err))
		return 0, false
	}
	return version, true
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, EmployeeListVersionKey).Err(); err != nil {
		s.logger.Error("failed to bump employee list cache version",
			zap.Error(err),
			zap.String("key", EmployeeListVersionKey),
		)
	}
	if err := s.rdb.Del(ctx, EmployeeListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", EmployeeListCacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID,
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Email:      empl.Email,
		Department: empl.Department,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func mapToDetailResponse(empl Employee) EmployeeWithAttendanceResponse {
	records := make([]AttendanceRecordResponse, len(empl.AttendanceRecords))
	for i, a := range empl.AttendanceRecords {
		records[i] = AttendanceRecordResponse{
			ID:         a.ID,
			EmployeeID: a.EmployeeID,
			Date:       a.Date.Format(time.DateOnly),
			Status:     a.Status,
		}
	}
	return EmployeeWithAttendanceResponse{
		EmployeeResponse:  mapToResponse(empl),
		AttendanceRecords: records,
	}
}
