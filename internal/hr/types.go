package hr

import "github.com/peopleops/hrctl/internal/routes"

// Employee is an employee record as the backend returns it.
type Employee struct {
	ID                int64       `json:"id"`
	FirstName         string      `json:"firstName"`
	LastName          string      `json:"lastName"`
	Email             string      `json:"email"`
	Role              routes.Role `json:"role,omitempty"`
	Position          string      `json:"position,omitempty"`
	DepartmentID      int64       `json:"departmentId,omitempty"`
	Salary            float64     `json:"salary,omitempty"`
	HireDate          string      `json:"hireDate,omitempty"`
	ProfilePictureURL string      `json:"profilePictureUrl,omitempty"`
}

// Department is a department record.
type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ManagerID   int64  `json:"managerId,omitempty"`
}

// Project is a project record.
type Project struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DepartmentID int64  `json:"departmentId,omitempty"`
	Status       string `json:"status,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

// Payslip is a payroll record for one employee and period.
type Payslip struct {
	ID         int64   `json:"id"`
	EmployeeID int64   `json:"employeeId"`
	Period     string  `json:"period,omitempty"`
	BasicPay   float64 `json:"basicPay,omitempty"`
	Allowances float64 `json:"allowances,omitempty"`
	Deductions float64 `json:"deductions,omitempty"`
	NetPay     float64 `json:"netPay,omitempty"`
	IssuedAt   string  `json:"issuedAt,omitempty"`
}

// Leave statuses the backend recognizes.
const (
	LeaveStatusPending  = "Pending"
	LeaveStatusApproved = "Approved"
	LeaveStatusRejected = "Rejected"
)

// LeaveRequest is a leave record.
type LeaveRequest struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId,omitempty"`
	Type       string `json:"type,omitempty"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Confirmation is the bare acknowledgement some write endpoints answer
// with.
type Confirmation struct {
	Message string `json:"message"`
}

// UploadResult is the response to a profile-picture upload.
type UploadResult struct {
	Message           string `json:"message,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// EmployeesOverview is the dashboard's headline aggregate.
type EmployeesOverview struct {
	TotalEmployees int64 `json:"totalEmployees"`
	NewThisMonth   int64 `json:"newThisMonth"`
	OnLeaveToday   int64 `json:"onLeaveToday"`
}

// DepartmentDistribution is one slice of the per-department headcount
// breakdown.
type DepartmentDistribution struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// LeaveStatusBreakdown counts leave requests by status.
type LeaveStatusBreakdown struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
