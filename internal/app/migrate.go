package app

import (
	"context"
	"database/sql"
	"fmt"

	"hrms-lite/internal/attendance"
	"hrms-lite/internal/employee"
	"hrms-lite/internal/messaging/kafka"

	"gorm.io/gorm"
)

// Migrate creates missing tables, indexes and constraints. Employees go first
// so the attendance foreign key has a target.
func Migrate(ctx context.Context, gormDB *gorm.DB, sqlDB *sql.DB) error {
	if err := gormDB.WithContext(ctx).AutoMigrate(&employee.Employee{}, &attendance.Attendance{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := kafka.EnsureSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("outbox schema: %w", err)
	}
	return nil
}
