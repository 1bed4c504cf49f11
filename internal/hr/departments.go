package hr

import (
	"context"
	"fmt"

	"github.com/peopleops/hrctl/internal/api"
)

// DepartmentService wraps the department resource.
type DepartmentService struct {
	client *api.Client
}

// NewDepartmentService creates a department service over the shared
// pipeline.
func NewDepartmentService(client *api.Client) *DepartmentService {
	return &DepartmentService{client: client}
}

// GetAll fetches every department record.
func (s *DepartmentService) GetAll(ctx context.Context) ([]Department, error) {
	var out []Department
	if err := s.client.Get(ctx, "/departments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single department record.
func (s *DepartmentService) GetByID(ctx context.Context, id int64) (*Department, error) {
	var out Department
	if err := s.client.Get(ctx, fmt.Sprintf("/departments/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a new department record.
func (s *DepartmentService) Create(ctx context.Context, dep Department) (*Department, error) {
	var out Department
	if err := s.client.Post(ctx, "/departments", dep, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an existing department record.
func (s *DepartmentService) Update(ctx context.Context, id int64, dep Department) (*Department, error) {
	var out Department
	if err := s.client.Put(ctx, fmt.Sprintf("/departments/%d", id), dep, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a department record.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/departments/%d", id), nil)
}
