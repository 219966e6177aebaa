package attendance

import "time"

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Attendance is one day of one employee. (employee_id, date) is unique and
// rows are never updated.
type Attendance struct {
	ID         uint         `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID string       `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date       time.Time    `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index:idx_attendance_date"`
	Status     Status       `gorm:"column:status;type:varchar(10);not null;check:chk_attendance_status,status IN ('Present','Absent')"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Attendance) TableName() string {
	return "attendance"
}

type EmployeeRef struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	EmployeeID string `gorm:"column:employee_id"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
