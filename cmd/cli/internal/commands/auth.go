package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peopleops/hrctl/internal/auth"
	"github.com/peopleops/hrctl/internal/routes"
)

type LoginCmd struct {
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password" required:"" env:"HRCTL_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	app.Nav.setCurrent(routes.RouteLogin)

	rec, err := app.Auth.Login(ctx, auth.Credentials{Email: l.Email, Password: l.Password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Signed in as %s %s <%s> (%s)\n",
		rec.User.FirstName, rec.User.LastName, rec.User.Email, rec.User.Role)
	fmt.Printf("Landing view: %s\n", routes.PathFor(routes.LandingRoute(rec.User.Role)))

	return nil
}

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}

	if err := app.Auth.Logout(ctx); err != nil {
		return err
	}

	fmt.Println("Signed out.")
	return nil
}

type RegisterCmd struct {
	FirstName string `help:"First name" required:""`
	LastName  string `help:"Last name" required:""`
	Email     string `help:"Account email" required:""`
	Password  string `help:"Account password" required:"" env:"HRCTL_PASSWORD"`
	Position  string `help:"Job position"`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}
	app.Nav.setCurrent(routes.RouteRegister)

	outcome, err := app.Auth.Register(ctx, auth.Registration{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Position:  r.Position,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	// The backend either signed the new account straight in or answered
	// with a confirmation to relay.
	switch {
	case outcome.Session != nil:
		fmt.Printf("Registered and signed in as %s\n", outcome.Session.User.Email)
	default:
		fmt.Println(outcome.Confirmation)
	}

	return nil
}

type RegisterAdminCmd struct {
	FirstName string `help:"First name" required:""`
	LastName  string `help:"Last name" required:""`
	Email     string `help:"Account email" required:""`
	Password  string `help:"Initial password" required:""`
	Position  string `help:"Job position"`
}

func (r *RegisterAdminCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}

	if err := app.Navigate(routes.RouteCreateUser); err != nil {
		return err
	}

	outcome, err := app.Auth.RegisterAdmin(ctx, auth.Registration{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Position:  r.Position,
	})
	if err != nil {
		return fmt.Errorf("user creation failed: %w", err)
	}

	fmt.Println(outcome.Confirmation)
	return nil
}

type WhoamiCmd struct {
	Refresh bool `help:"Fetch the latest profile from the backend" default:"true" negatable:""`
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}

	if !app.Auth.IsAuthenticated() {
		return fmt.Errorf("not signed in")
	}

	rec := app.Auth.CurrentSession()
	if rec == nil {
		return fmt.Errorf("not signed in")
	}

	if err := app.Navigate(profileRoute(rec.User.Role)); err != nil {
		return err
	}

	user := &rec.User
	if w.Refresh {
		user, err = app.Auth.RefreshProfile(ctx)
		if err != nil {
			return fmt.Errorf("failed to refresh profile: %w", err)
		}
	}

	fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	fmt.Printf("Role:     %s\n", user.Role)
	if user.Position != "" {
		fmt.Printf("Position: %s\n", user.Position)
	}
	if user.ProfilePictureURL != "" {
		fmt.Printf("Picture:  %s\n", user.ProfilePictureURL)
	}

	return nil
}

type ProfileCmd struct {
	Update         ProfileUpdateCmd         `cmd:"" help:"Edit your profile"`
	ChangePassword ProfileChangePasswordCmd `cmd:"" name:"change-password" help:"Change your password"`
	UploadPicture  ProfileUploadPictureCmd  `cmd:"" name:"upload-picture" help:"Upload a profile picture"`
}

type ProfileUpdateCmd struct {
	FirstName string `help:"First name"`
	LastName  string `help:"Last name"`
	Position  string `help:"Job position"`
}

func (p *ProfileUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}

	rec := app.Auth.CurrentSession()
	if rec == nil {
		return fmt.Errorf("not signed in")
	}
	if err := app.Navigate(profileRoute(rec.User.Role)); err != nil {
		return err
	}

	user, err := app.Auth.UpdateProfile(ctx, auth.ProfileUpdate{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Position:  p.Position,
	})
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	fmt.Printf("Profile updated: %s %s", user.FirstName, user.LastName)
	if user.Position != "" {
		fmt.Printf(" (%s)", user.Position)
	}
	fmt.Println()

	return nil
}

type ProfileChangePasswordCmd struct {
	Old string `help:"Current password" required:""`
	New string `help:"New password" required:""`
}

func (p *ProfileChangePasswordCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}

	rec := app.Auth.CurrentSession()
	if rec == nil {
		return fmt.Errorf("not signed in")
	}
	if err := app.Navigate(profileRoute(rec.User.Role)); err != nil {
		return err
	}

	conf, err := newEmployeeService(app).ChangePassword(ctx, p.Old, p.New)
	if err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Println(conf.Message)
	return nil
}

type ProfileUploadPictureCmd struct {
	File string `help:"Path to the image file" arg:"" type:"existingfile"`
}

func (p *ProfileUploadPictureCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := NewApp(globals)
	if err != nil {
		return err
	}

	rec := app.Auth.CurrentSession()
	if rec == nil {
		return fmt.Errorf("not signed in")
	}
	if err := app.Navigate(profileRoute(rec.User.Role)); err != nil {
		return err
	}

	f, err := os.Open(p.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", p.File, err)
	}
	defer f.Close()

	res, err := newEmployeeService(app).UploadProfilePicture(ctx, filepath.Base(p.File), f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	updated := rec.User
	updated.ProfilePictureURL = res.ProfilePictureURL
	if err := app.Auth.ApplyProfile(updated); err != nil {
		return err
	}

	fmt.Printf("Profile picture updated: %s\n", res.ProfilePictureURL)
	return nil
}

// profileRoute maps a role to its profile view.
func profileRoute(role routes.Role) string {
	if role == routes.RoleEmployee {
		return routes.RouteEmployeeProfile
	}
	return routes.RouteAdminProfile
}
