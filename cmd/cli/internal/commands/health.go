package commands

import (
	"context"
	"fmt"
)

// HealthCmd probes the backend without touching the session.
type HealthCmd struct{}

func (c *HealthCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}

	if err := app.Client.CheckHealth(ctx); err != nil {
		return fmt.Errorf("backend at %s is unhealthy: %w", app.Client.BaseURL(), err)
	}

	fmt.Printf("Backend at %s is healthy.\n", app.Client.BaseURL())
	return nil
}
