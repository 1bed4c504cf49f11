package hr

import (
	"context"
	"fmt"

	"github.com/peopleops/hrctl/internal/api"
)

// ProjectService wraps the project resource.
type ProjectService struct {
	client *api.Client
}

// NewProjectService creates a project service over the shared pipeline.
func NewProjectService(client *api.Client) *ProjectService {
	return &ProjectService{client: client}
}

// GetAll fetches every project record.
func (s *ProjectService) GetAll(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := s.client.Get(ctx, "/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates a new project record.
func (s *ProjectService) Create(ctx context.Context, p Project) (*Project, error) {
	var out Project
	if err := s.client.Post(ctx, "/projects", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an existing project record.
func (s *ProjectService) Update(ctx context.Context, id int64, p Project) (*Project, error) {
	var out Project
	if err := s.client.Put(ctx, fmt.Sprintf("/projects/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a project record.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/projects/%d", id), nil)
}
