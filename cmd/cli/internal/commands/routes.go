package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/peopleops/hrctl/internal/routes"
)

// RoutesCmd inspects the navigation table and its guard decisions.
type RoutesCmd struct {
	List  RoutesListCmd  `cmd:"" help:"List the route table"`
	Check RoutesCheckCmd `cmd:"" help:"Show the guard decision for a path"`
}

// RoutesListCmd prints every route and its access policy.
type RoutesListCmd struct{}

func (c *RoutesListCmd) Run(ctx context.Context, globals *Globals) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tNAME\tAUTH\tROLES")

	for _, r := range routes.Flatten() {
		auth := ""
		if r.Policy.RequiresAuth {
			auth = "yes"
		}

		roleNames := make([]string, 0, len(r.Policy.AllowedRoles))
		for _, role := range r.Policy.AllowedRoles {
			roleNames = append(roleNames, string(role))
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Path, r.Policy.Name, auth, strings.Join(roleNames, ","))
	}

	w.Flush()
	return nil
}

// RoutesCheckCmd evaluates the guard for a path, either for the current
// session or for a hypothetical role.
type RoutesCheckCmd struct {
	Path string `arg:"" help:"Route path, e.g. /app/payroll"`
	As   string `help:"Evaluate as this role instead of the current session"`
}

func (c *RoutesCheckCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}

	policy := routes.Resolve(c.Path)

	var (
		role          routes.Role
		authenticated bool
	)
	if c.As != "" {
		role, err = routes.ParseRole(c.As)
		if err != nil {
			return err
		}
		authenticated = true
	} else {
		authenticated = app.Auth.IsAuthenticated()
		if rec := app.Auth.CurrentSession(); rec != nil {
			role = rec.User.Role
		}
	}

	decision := routes.Evaluate(policy, role, authenticated)

	fmt.Printf("Path:   %s\n", c.Path)
	fmt.Printf("Route:  %s\n", policy.Name)
	if decision.Allowed {
		fmt.Println("Access: allowed")
		return nil
	}

	fmt.Println("Access: denied")
	fmt.Printf("Sent to %s (%s)\n", decision.Redirect, routes.PathFor(decision.Redirect))
	return nil
}
