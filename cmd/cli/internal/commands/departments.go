package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/peopleops/hrctl/internal/hr"
	"github.com/peopleops/hrctl/internal/routes"
)

// DepartmentsCmd manages department records.
type DepartmentsCmd struct {
	List   DepartmentsListCmd   `cmd:"" help:"List all departments"`
	Show   DepartmentsShowCmd   `cmd:"" help:"Show one department"`
	Create DepartmentsCreateCmd `cmd:"" help:"Create a department"`
	Update DepartmentsUpdateCmd `cmd:"" help:"Update a department"`
	Delete DepartmentsDeleteCmd `cmd:"" help:"Delete a department"`
}

// DepartmentsListCmd lists all departments.
type DepartmentsListCmd struct{}

func (c *DepartmentsListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteDepartments); err != nil {
		return err
	}

	departments, err := hr.NewDepartmentService(app.Client).GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}

	if len(departments) == 0 {
		fmt.Println("No departments found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMANAGER\tDESCRIPTION")
	for _, d := range departments {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", d.ID, d.Name, d.ManagerID, d.Description)
	}
	w.Flush()

	return nil
}

// DepartmentsShowCmd shows one department record.
type DepartmentsShowCmd struct {
	ID int64 `arg:"" help:"Department ID"`
}

func (c *DepartmentsShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteDepartments); err != nil {
		return err
	}

	d, err := hr.NewDepartmentService(app.Client).GetByID(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get department: %w", err)
	}

	fmt.Printf("Name:        %s\n", d.Name)
	if d.Description != "" {
		fmt.Printf("Description: %s\n", d.Description)
	}
	if d.ManagerID != 0 {
		fmt.Printf("Manager:     %d\n", d.ManagerID)
	}

	return nil
}

// DepartmentsCreateCmd creates a department record.
type DepartmentsCreateCmd struct {
	Name        string `arg:"" help:"Department name"`
	Description string `help:"Description"`
	Manager     int64  `help:"Manager employee ID"`
}

func (c *DepartmentsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteDepartments); err != nil {
		return err
	}

	created, err := hr.NewDepartmentService(app.Client).Create(ctx, hr.Department{
		Name:        c.Name,
		Description: c.Description,
		ManagerID:   c.Manager,
	})
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}

	fmt.Printf("Created department %d (%s)\n", created.ID, created.Name)
	return nil
}

// DepartmentsUpdateCmd replaces a department record.
type DepartmentsUpdateCmd struct {
	ID          int64  `arg:"" help:"Department ID"`
	Name        string `help:"Department name" required:""`
	Description string `help:"Description"`
	Manager     int64  `help:"Manager employee ID"`
}

func (c *DepartmentsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteDepartments); err != nil {
		return err
	}

	updated, err := hr.NewDepartmentService(app.Client).Update(ctx, c.ID, hr.Department{
		Name:        c.Name,
		Description: c.Description,
		ManagerID:   c.Manager,
	})
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}

	fmt.Printf("Updated department %d\n", updated.ID)
	return nil
}

// DepartmentsDeleteCmd removes a department record.
type DepartmentsDeleteCmd struct {
	ID int64 `arg:"" help:"Department ID"`
}

func (c *DepartmentsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteDepartments); err != nil {
		return err
	}

	if err := hr.NewDepartmentService(app.Client).Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	fmt.Printf("Deleted department %d\n", c.ID)
	return nil
}
