package employee

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,max=50,employee_id"`
	FullName   string `json:"full_name" binding:"required,notblank,max=100"`
	Email      string `json:"email" binding:"required,max=100,email"`
	Department string `json:"department" binding:"required,notblank,max=100"`
}

type ListEmployeesQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=0"`
}

type EmployeeResponse struct {
	ID         uint   `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type AttendanceRecordResponse struct {
	ID         uint   `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

type EmployeeWithAttendanceResponse struct {
	EmployeeResponse
	AttendanceRecords []AttendanceRecordResponse `json:"attendance_records"`
}
