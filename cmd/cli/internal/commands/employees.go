package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/peopleops/hrctl/internal/hr"
	"github.com/peopleops/hrctl/internal/routes"
)

func newEmployeeService(app *App) *hr.EmployeeService {
	return hr.NewEmployeeService(app.Client)
}

// EmployeesCmd manages employee records.
type EmployeesCmd struct {
	List   EmployeesListCmd   `cmd:"" help:"List all employees"`
	Show   EmployeesShowCmd   `cmd:"" help:"Show one employee"`
	Create EmployeesCreateCmd `cmd:"" help:"Create an employee"`
	Update EmployeesUpdateCmd `cmd:"" help:"Update an employee"`
	Delete EmployeesDeleteCmd `cmd:"" help:"Delete an employee"`
}

// EmployeesListCmd lists all employees.
type EmployeesListCmd struct{}

func (c *EmployeesListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteEmployees); err != nil {
		return err
	}

	employees, err := newEmployeeService(app).GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	if len(employees) == 0 {
		fmt.Println("No employees found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tPOSITION\tDEPT")
	for _, e := range employees {
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%d\n",
			e.ID, e.FirstName, e.LastName, e.Email, e.Role, e.Position, e.DepartmentID)
	}
	w.Flush()

	return nil
}

// EmployeesShowCmd shows one employee record.
type EmployeesShowCmd struct {
	ID int64 `arg:"" help:"Employee ID"`
}

func (c *EmployeesShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteEmployees); err != nil {
		return err
	}

	e, err := newEmployeeService(app).GetByID(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	fmt.Printf("Name:       %s %s\n", e.FirstName, e.LastName)
	fmt.Printf("Email:      %s\n", e.Email)
	fmt.Printf("Role:       %s\n", e.Role)
	if e.Position != "" {
		fmt.Printf("Position:   %s\n", e.Position)
	}
	if e.DepartmentID != 0 {
		fmt.Printf("Department: %d\n", e.DepartmentID)
	}
	if e.HireDate != "" {
		fmt.Printf("Hired:      %s\n", e.HireDate)
	}

	return nil
}

// EmployeesCreateCmd creates an employee record.
type EmployeesCreateCmd struct {
	FirstName  string  `help:"First name" required:""`
	LastName   string  `help:"Last name" required:""`
	Email      string  `help:"Email" required:""`
	Position   string  `help:"Job position"`
	Department int64   `help:"Department ID"`
	Salary     float64 `help:"Base salary"`
	HireDate   string  `help:"Hire date (YYYY-MM-DD)"`
}

func (c *EmployeesCreateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteEmployees); err != nil {
		return err
	}

	created, err := newEmployeeService(app).Create(ctx, hr.Employee{
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Position:     c.Position,
		DepartmentID: c.Department,
		Salary:       c.Salary,
		HireDate:     c.HireDate,
	})
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	fmt.Printf("Created employee %d (%s %s)\n", created.ID, created.FirstName, created.LastName)
	return nil
}

// EmployeesUpdateCmd replaces an employee record.
type EmployeesUpdateCmd struct {
	ID         int64   `arg:"" help:"Employee ID"`
	FirstName  string  `help:"First name" required:""`
	LastName   string  `help:"Last name" required:""`
	Email      string  `help:"Email" required:""`
	Position   string  `help:"Job position"`
	Department int64   `help:"Department ID"`
	Salary     float64 `help:"Base salary"`
}

func (c *EmployeesUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteEmployees); err != nil {
		return err
	}

	updated, err := newEmployeeService(app).Update(ctx, c.ID, hr.Employee{
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Position:     c.Position,
		DepartmentID: c.Department,
		Salary:       c.Salary,
	})
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	fmt.Printf("Updated employee %d\n", updated.ID)
	return nil
}

// EmployeesDeleteCmd removes an employee record.
type EmployeesDeleteCmd struct {
	ID int64 `arg:"" help:"Employee ID"`
}

func (c *EmployeesDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteEmployees); err != nil {
		return err
	}

	if err := newEmployeeService(app).Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	fmt.Printf("Deleted employee %d\n", c.ID)
	return nil
}
