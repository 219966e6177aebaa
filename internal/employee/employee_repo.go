package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, skip, limit int) ([]Employee, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	FindByEmployeeIDWithAttendance(ctx context.Context, employeeID string) (*Employee, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DeleteAttendanceByEmployeeID(ctx context.Context, employeeID string) (int64, error)
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn runs statements on the bound transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit("AttendanceRecords").Create(empl).Error
}

// FindAll pages through employees in insertion order.
func (r *repository) FindAll(ctx context.Context, skip, limit int) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		First(&empl).Error
	return &empl, err
}

func (r *repository) FindByEmployeeIDWithAttendance(ctx context.Context, employeeID string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Preload("AttendanceRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("employee_id = ?", employeeID).
		First(&empl).Error
	return &empl, err
}

func (r *repository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DeleteAttendanceByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	res := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&AttendanceRecord{})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	res := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&Employee{})
	return res.RowsAffected, res.Error
}
