package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/peopleops/hrctl/cmd/cli/internal/commands"
	"github.com/peopleops/hrctl/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Login         commands.LoginCmd         `cmd:"" help:"Sign in to the HR platform"`
		Logout        commands.LogoutCmd        `cmd:"" help:"Sign out and clear the local session"`
		Register      commands.RegisterCmd      `cmd:"" help:"Create an account"`
		RegisterAdmin commands.RegisterAdminCmd `cmd:"" name:"register-admin" help:"Create a user as an administrator"`
		Whoami        commands.WhoamiCmd        `cmd:"" help:"Show the signed-in user"`
		Profile       commands.ProfileCmd       `cmd:"" help:"Manage your profile"`
		Employees     commands.EmployeesCmd     `cmd:"" help:"Manage employees"`
		Departments   commands.DepartmentsCmd   `cmd:"" help:"Manage departments"`
		Projects      commands.ProjectsCmd      `cmd:"" help:"Manage projects"`
		Payslips      commands.PayslipsCmd      `cmd:"" help:"Manage payslips"`
		Leaves        commands.LeavesCmd        `cmd:"" help:"Manage leave requests"`
		Dashboard     commands.DashboardCmd     `cmd:"" help:"Show dashboard aggregates"`
		Routes        commands.RoutesCmd        `cmd:"" help:"Inspect route access policies"`
		Health        commands.HealthCmd        `cmd:"" help:"Check backend availability"`

		Server    string `help:"Backend API base URL" env:"HRCTL_API_URL"`
		ConfigDir string `help:"Directory holding session and config files" env:"HRCTL_CONFIG_DIR"`
		Debug     bool   `help:"Enable debug mode."`
		Version   kong.VersionFlag
	}
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	logger.Setup(cli.Debug)

	err := cmd.Run(&commands.Globals{
		Server:    cli.Server,
		ConfigDir: cli.ConfigDir,
		Debug:     cli.Debug,
		Version:   version,
	})
	cmd.FatalIfErrorf(err)
}
