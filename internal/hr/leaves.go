package hr

import (
	"context"
	"fmt"

	"github.com/peopleops/hrctl/internal/api"
)

// LeaveService wraps the leave-request resource.
type LeaveService struct {
	client *api.Client
}

// NewLeaveService creates a leave service over the shared pipeline.
func NewLeaveService(client *api.Client) *LeaveService {
	return &LeaveService{client: client}
}

// Request files a leave request for the logged-in employee.
func (s *LeaveService) Request(ctx context.Context, req LeaveRequest) (*LeaveRequest, error) {
	var out LeaveRequest
	if err := s.client.Post(ctx, "/leaves/request", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMine fetches the logged-in employee's own leave history.
func (s *LeaveService) GetMine(ctx context.Context) ([]LeaveRequest, error) {
	var out []LeaveRequest
	if err := s.client.Get(ctx, "/leaves/my-leaves", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAll fetches every leave request. Admin/HR only; the backend
// enforces it.
func (s *LeaveService) GetAll(ctx context.Context) ([]LeaveRequest, error) {
	var out []LeaveRequest
	if err := s.client.Get(ctx, "/leaves", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus approves or rejects a leave request.
func (s *LeaveService) UpdateStatus(ctx context.Context, id int64, status string) (*LeaveRequest, error) {
	var out LeaveRequest
	err := s.client.Put(ctx, fmt.Sprintf("/leaves/%d/status", id), map[string]string{
		"status": status,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
