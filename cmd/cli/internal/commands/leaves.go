package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/peopleops/hrctl/internal/hr"
	"github.com/peopleops/hrctl/internal/routes"
)

// LeavesCmd manages leave requests. "request" and "mine" are employee
// operations; "list", "approve" and "reject" belong to the leave desk.
type LeavesCmd struct {
	Request LeavesRequestCmd `cmd:"" help:"File a leave request"`
	Mine    LeavesMineCmd    `cmd:"" help:"List your own leave requests"`
	List    LeavesListCmd    `cmd:"" help:"List all leave requests"`
	Approve LeavesApproveCmd `cmd:"" help:"Approve a leave request"`
	Reject  LeavesRejectCmd  `cmd:"" help:"Reject a leave request"`
}

func printLeaves(leaves []hr.LeaveRequest) {
	if len(leaves) == 0 {
		fmt.Println("No leave requests found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tTYPE\tFROM\tTO\tSTATUS")
	for _, l := range leaves {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			l.ID, l.EmployeeID, l.Type, l.StartDate, l.EndDate, l.Status)
	}
	w.Flush()
}

// LeavesRequestCmd files a leave request for the logged-in employee.
type LeavesRequestCmd struct {
	Type   string `help:"Leave type (e.g. Annual, Sick)" required:""`
	From   string `help:"Start date (YYYY-MM-DD)" required:""`
	To     string `help:"End date (YYYY-MM-DD)" required:""`
	Reason string `help:"Reason for the request"`
}

func (c *LeavesRequestCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteMyLeave); err != nil {
		return err
	}

	filed, err := hr.NewLeaveService(app.Client).Request(ctx, hr.LeaveRequest{
		Type:      c.Type,
		StartDate: c.From,
		EndDate:   c.To,
		Reason:    c.Reason,
	})
	if err != nil {
		return fmt.Errorf("failed to file leave request: %w", err)
	}

	fmt.Printf("Filed leave request %d (%s)\n", filed.ID, filed.Status)
	return nil
}

// LeavesMineCmd lists the logged-in employee's leave history.
type LeavesMineCmd struct{}

func (c *LeavesMineCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteMyLeave); err != nil {
		return err
	}

	leaves, err := hr.NewLeaveService(app.Client).GetMine(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leave requests: %w", err)
	}

	printLeaves(leaves)
	return nil
}

// LeavesListCmd lists every leave request.
type LeavesListCmd struct{}

func (c *LeavesListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteLeaveManagement); err != nil {
		return err
	}

	leaves, err := hr.NewLeaveService(app.Client).GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leave requests: %w", err)
	}

	printLeaves(leaves)
	return nil
}

func setLeaveStatus(ctx context.Context, globals *Globals, id int64, status string) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteLeaveManagement); err != nil {
		return err
	}

	updated, err := hr.NewLeaveService(app.Client).UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	fmt.Printf("Leave request %d is now %s\n", updated.ID, updated.Status)
	return nil
}

// LeavesApproveCmd approves a leave request.
type LeavesApproveCmd struct {
	ID int64 `arg:"" help:"Leave request ID"`
}

func (c *LeavesApproveCmd) Run(ctx context.Context, globals *Globals) error {
	return setLeaveStatus(ctx, globals, c.ID, hr.LeaveStatusApproved)
}

// LeavesRejectCmd rejects a leave request.
type LeavesRejectCmd struct {
	ID int64 `arg:"" help:"Leave request ID"`
}

func (c *LeavesRejectCmd) Run(ctx context.Context, globals *Globals) error {
	return setLeaveStatus(ctx, globals, c.ID, hr.LeaveStatusRejected)
}
