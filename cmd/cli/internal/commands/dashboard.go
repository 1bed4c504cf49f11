package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/peopleops/hrctl/internal/hr"
	"github.com/peopleops/hrctl/internal/routes"
)

// DashboardCmd shows the HR overview aggregates. It runs over the
// caching client since the numbers are read-mostly.
type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteHrDashboard); err != nil {
		return err
	}

	svc := hr.NewDashboardService(app.CachingClient())

	overview, err := svc.EmployeesOverview(ctx)
	if err != nil {
		return fmt.Errorf("failed to load overview: %w", err)
	}

	fmt.Printf("Employees:      %d\n", overview.TotalEmployees)
	fmt.Printf("New this month: %d\n", overview.NewThisMonth)
	fmt.Printf("On leave today: %d\n", overview.OnLeaveToday)
	fmt.Println()

	distribution, err := svc.EmployeeDistributionByDepartment(ctx)
	if err != nil {
		return fmt.Errorf("failed to load department distribution: %w", err)
	}

	if len(distribution) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DEPARTMENT\tHEADCOUNT")
		for _, d := range distribution {
			fmt.Fprintf(w, "%s\t%d\n", d.Department, d.Count)
		}
		w.Flush()
		fmt.Println()
	}

	leave, err := svc.LeaveStatusBreakdown(ctx)
	if err != nil {
		return fmt.Errorf("failed to load leave breakdown: %w", err)
	}

	fmt.Printf("Leave requests: %d pending, %d approved, %d rejected\n",
		leave.Pending, leave.Approved, leave.Rejected)

	return nil
}
