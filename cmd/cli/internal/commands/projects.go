package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/peopleops/hrctl/internal/hr"
	"github.com/peopleops/hrctl/internal/routes"
)

// ProjectsCmd manages project records.
type ProjectsCmd struct {
	List   ProjectsListCmd   `cmd:"" help:"List all projects"`
	Create ProjectsCreateCmd `cmd:"" help:"Create a project"`
	Update ProjectsUpdateCmd `cmd:"" help:"Update a project"`
	Delete ProjectsDeleteCmd `cmd:"" help:"Delete a project"`
}

// ProjectsListCmd lists all projects.
type ProjectsListCmd struct{}

func (c *ProjectsListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteProjects); err != nil {
		return err
	}

	projects, err := hr.NewProjectService(app.Client).GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tDEPT\tSTART\tEND")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, p.Name, p.Status, p.DepartmentID, p.StartDate, p.EndDate)
	}
	w.Flush()

	return nil
}

// ProjectsCreateCmd creates a project record.
type ProjectsCreateCmd struct {
	Name        string `arg:"" help:"Project name"`
	Description string `help:"Description"`
	Department  int64  `help:"Owning department ID"`
	Status      string `help:"Project status"`
	StartDate   string `help:"Start date (YYYY-MM-DD)"`
	EndDate     string `help:"End date (YYYY-MM-DD)"`
}

func (c *ProjectsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteProjects); err != nil {
		return err
	}

	created, err := hr.NewProjectService(app.Client).Create(ctx, hr.Project{
		Name:         c.Name,
		Description:  c.Description,
		DepartmentID: c.Department,
		Status:       c.Status,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("Created project %d (%s)\n", created.ID, created.Name)
	return nil
}

// ProjectsUpdateCmd replaces a project record.
type ProjectsUpdateCmd struct {
	ID          int64  `arg:"" help:"Project ID"`
	Name        string `help:"Project name" required:""`
	Description string `help:"Description"`
	Department  int64  `help:"Owning department ID"`
	Status      string `help:"Project status"`
	StartDate   string `help:"Start date (YYYY-MM-DD)"`
	EndDate     string `help:"End date (YYYY-MM-DD)"`
}

func (c *ProjectsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteProjects); err != nil {
		return err
	}

	updated, err := hr.NewProjectService(app.Client).Update(ctx, c.ID, hr.Project{
		Name:         c.Name,
		Description:  c.Description,
		DepartmentID: c.Department,
		Status:       c.Status,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
	})
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	fmt.Printf("Updated project %d\n", updated.ID)
	return nil
}

// ProjectsDeleteCmd removes a project record.
type ProjectsDeleteCmd struct {
	ID int64 `arg:"" help:"Project ID"`
}

func (c *ProjectsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	if err := app.Navigate(routes.RouteProjects); err != nil {
		return err
	}

	if err := hr.NewProjectService(app.Client).Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	fmt.Printf("Deleted project %d\n", c.ID)
	return nil
}
