package hr

import (
	"context"

	"github.com/peopleops/hrctl/internal/api"
)

// DashboardService wraps the dashboard aggregates. The endpoints are
// read-only, so callers typically hand it a caching client.
type DashboardService struct {
	client *api.Client
}

// NewDashboardService creates a dashboard service over the given
// pipeline.
func NewDashboardService(client *api.Client) *DashboardService {
	return &DashboardService{client: client}
}

// EmployeesOverview fetches the headline employee numbers.
func (s *DashboardService) EmployeesOverview(ctx context.Context) (*EmployeesOverview, error) {
	var out EmployeesOverview
	if err := s.client.Get(ctx, "/dashboard/employees-overview", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EmployeeDistributionByDepartment fetches headcount per department.
func (s *DashboardService) EmployeeDistributionByDepartment(ctx context.Context) ([]DepartmentDistribution, error) {
	var out []DepartmentDistribution
	if err := s.client.Get(ctx, "/dashboard/employee-distribution-by-department", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LeaveStatusBreakdown fetches leave-request counts by status.
func (s *DashboardService) LeaveStatusBreakdown(ctx context.Context) (*LeaveStatusBreakdown, error) {
	var out LeaveStatusBreakdown
	if err := s.client.Get(ctx, "/dashboard/leave-status-breakdown", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
