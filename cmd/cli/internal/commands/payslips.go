package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/peopleops/hrctl/internal/hr"
	"github.com/peopleops/hrctl/internal/routes"
)

// PayslipsCmd manages payroll records. The "mine" subcommand is the
// employee's own view; the rest are payroll-desk operations.
type PayslipsCmd struct {
	List     PayslipsListCmd     `cmd:"" help:"List all payslips"`
	Mine     PayslipsMineCmd     `cmd:"" help:"List your own payslips"`
	Show     PayslipsShowCmd     `cmd:"" help:"Show one payslip"`
	Generate PayslipsGenerateCmd `cmd:"" help:"Generate a payslip"`
	Update   PayslipsUpdateCmd   `cmd:"" help:"Update a payslip"`
	Delete   PayslipsDeleteCmd   `cmd:"" help:"Delete a payslip"`
}

func printPayslips(slips []hr.Payslip) {
	if len(slips) == 0 {
		fmt.Println("No payslips found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tPERIOD\tBASIC\tALLOWANCES\tDEDUCTIONS\tNET")
	for _, p := range slips {
		fmt.Fprintf(w, "%d\t%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.ID, p.EmployeeID, p.Period, p.BasicPay, p.Allowances, p.Deductions, p.NetPay)
	}
	w.Flush()
}

// PayslipsListCmd lists all payslips.
type PayslipsListCmd struct{}

func (c *PayslipsListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RoutePayroll); err != nil {
		return err
	}

	slips, err := hr.NewPayslipService(app.Client).GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list payslips: %w", err)
	}

	printPayslips(slips)
	return nil
}

// PayslipsMineCmd lists the logged-in employee's own payslips.
type PayslipsMineCmd struct{}

func (c *PayslipsMineCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteMyPayslips); err != nil {
		return err
	}

	slips, err := hr.NewPayslipService(app.Client).GetMine(ctx)
	if err != nil {
		return fmt.Errorf("failed to list payslips: %w", err)
	}

	printPayslips(slips)
	return nil
}

// PayslipsShowCmd shows one payslip. Employees see their own through
// the employee view; payroll staff through the payroll view.
type PayslipsShowCmd struct {
	ID int64 `arg:"" help:"Payslip ID"`
}

func (c *PayslipsShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}

	view := routes.RoutePayslipDisplay
	if app.Auth.HasRole(routes.RoleEmployee) {
		view = routes.RouteEmployeePayslip
	}
	if err := app.Navigate(view); err != nil {
		return err
	}

	p, err := hr.NewPayslipService(app.Client).GetByID(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get payslip: %w", err)
	}

	fmt.Printf("Payslip:    %d\n", p.ID)
	fmt.Printf("Employee:   %d\n", p.EmployeeID)
	fmt.Printf("Period:     %s\n", p.Period)
	fmt.Printf("Basic pay:  %.2f\n", p.BasicPay)
	fmt.Printf("Allowances: %.2f\n", p.Allowances)
	fmt.Printf("Deductions: %.2f\n", p.Deductions)
	fmt.Printf("Net pay:    %.2f\n", p.NetPay)
	if p.IssuedAt != "" {
		fmt.Printf("Issued:     %s\n", p.IssuedAt)
	}

	return nil
}

// PayslipsGenerateCmd asks the backend to compute a payslip.
type PayslipsGenerateCmd struct {
	Employee   int64   `help:"Employee ID" required:""`
	Period     string  `help:"Pay period (YYYY-MM)" required:""`
	Basic      float64 `help:"Basic pay"`
	Allowances float64 `help:"Allowances"`
	Deductions float64 `help:"Deductions"`
}

func (c *PayslipsGenerateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RoutePayroll); err != nil {
		return err
	}

	p, err := hr.NewPayslipService(app.Client).Generate(ctx, hr.Payslip{
		EmployeeID: c.Employee,
		Period:     c.Period,
		BasicPay:   c.Basic,
		Allowances: c.Allowances,
		Deductions: c.Deductions,
	})
	if err != nil {
		return fmt.Errorf("failed to generate payslip: %w", err)
	}

	fmt.Printf("Generated payslip %d for employee %d, net pay %.2f\n", p.ID, p.EmployeeID, p.NetPay)
	return nil
}

// PayslipsUpdateCmd replaces a payslip record.
type PayslipsUpdateCmd struct {
	ID         int64   `arg:"" help:"Payslip ID"`
	Basic      float64 `help:"Basic pay"`
	Allowances float64 `help:"Allowances"`
	Deductions float64 `help:"Deductions"`
}

func (c *PayslipsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RoutePayroll); err != nil {
		return err
	}

	p, err := hr.NewPayslipService(app.Client).Update(ctx, c.ID, hr.Payslip{
		BasicPay:   c.Basic,
		Allowances: c.Allowances,
		Deductions: c.Deductions,
	})
	if err != nil {
		return fmt.Errorf("failed to update payslip: %w", err)
	}

	fmt.Printf("Updated payslip %d, net pay %.2f\n", p.ID, p.NetPay)
	return nil
}

// PayslipsDeleteCmd removes a payslip record.
type PayslipsDeleteCmd struct {
	ID int64 `arg:"" help:"Payslip ID"`
}

func (c *PayslipsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RoutePayroll); err != nil {
		return err
	}

	if err := hr.NewPayslipService(app.Client).Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}

	fmt.Printf("Deleted payslip %d\n", c.ID)
	return nil
}
