package hr

import (
	"context"
	"fmt"
	"io"

	"github.com/peopleops/hrctl/internal/api"
)

// EmployeeService wraps the employee resource. It is a transparent
// conduit: payloads pass through verbatim and failures propagate as the
// pipeline classified them.
type EmployeeService struct {
	client *api.Client
}

// NewEmployeeService creates an employee service over the shared pipeline.
func NewEmployeeService(client *api.Client) *EmployeeService {
	return &EmployeeService{client: client}
}

// GetAll fetches every employee record.
func (s *EmployeeService) GetAll(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := s.client.Get(ctx, "/employees", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single employee record.
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*Employee, error) {
	var out Employee
	if err := s.client.Get(ctx, fmt.Sprintf("/employees/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a new employee record.
func (s *EmployeeService) Create(ctx context.Context, emp Employee) (*Employee, error) {
	var out Employee
	if err := s.client.Post(ctx, "/employees", emp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an existing employee record.
func (s *EmployeeService) Update(ctx context.Context, id int64, emp Employee) (*Employee, error) {
	var out Employee
	if err := s.client.Put(ctx, fmt.Sprintf("/employees/%d", id), emp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an employee record.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/employees/%d", id), nil)
}

// ChangePassword changes the logged-in employee's password.
func (s *EmployeeService) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*Confirmation, error) {
	var out Confirmation
	err := s.client.Put(ctx, "/employees/my-profile/change-password", map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadProfilePicture uploads a profile picture for the logged-in
// employee as multipart form data.
func (s *EmployeeService) UploadProfilePicture(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	var out UploadResult
	err := s.client.Upload(ctx, "/employees/my-profile/upload-picture", "picture", filename, r, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
