package hr

import (
	"context"
	"fmt"

	"github.com/peopleops/hrctl/internal/api"
)

// PayslipService wraps the payslip resource.
type PayslipService struct {
	client *api.Client
}

// NewPayslipService creates a payslip service over the shared pipeline.
func NewPayslipService(client *api.Client) *PayslipService {
	return &PayslipService{client: client}
}

// Generate asks the backend to produce a payslip for an employee and
// period. The computation is entirely server-side.
func (s *PayslipService) Generate(ctx context.Context, p Payslip) (*Payslip, error) {
	var out Payslip
	if err := s.client.Post(ctx, "/payslips/generate", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAll fetches every payslip record.
func (s *PayslipService) GetAll(ctx context.Context) ([]Payslip, error) {
	var out []Payslip
	if err := s.client.Get(ctx, "/payslips", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMine fetches the logged-in employee's own payslips.
func (s *PayslipService) GetMine(ctx context.Context) ([]Payslip, error) {
	var out []Payslip
	if err := s.client.Get(ctx, "/payslips/my-payslips", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single payslip record.
func (s *PayslipService) GetByID(ctx context.Context, id int64) (*Payslip, error) {
	var out Payslip
	if err := s.client.Get(ctx, fmt.Sprintf("/payslips/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an existing payslip record.
func (s *PayslipService) Update(ctx context.Context, id int64, p Payslip) (*Payslip, error) {
	var out Payslip
	if err := s.client.Put(ctx, fmt.Sprintf("/payslips/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a payslip record.
func (s *PayslipService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/payslips/%d", id), nil)
}
