package employee

import "time"

type Employee struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID string `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_employees_employee_id"`
	FullName   string `gorm:"column:full_name;type:varchar(100);not null"`
	Email      string `gorm:"column:email;type:varchar(100);not null;uniqueIndex:uq_employees_email"`
	Department string `gorm:"column:department;type:varchar(100);not null"`

	AttendanceRecords []AttendanceRecord `gorm:"foreignKey:EmployeeID;references:EmployeeID;-:migration"`
}

func (Employee) TableName() string {
	return "employees"
}

// AttendanceRecord is the read side of the attendance table as embedded in
// an employee's detail view. The attendance package owns the table.
type AttendanceRecord struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	EmployeeID string    `gorm:"column:employee_id"`
	Date       time.Time `gorm:"column:date;type:date"`
	Status     string    `gorm:"column:status"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}
