package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/peopleops/hrctl/internal/api"
	"github.com/peopleops/hrctl/internal/auth"
	"github.com/peopleops/hrctl/internal/config"
	"github.com/peopleops/hrctl/internal/logger"
	"github.com/peopleops/hrctl/internal/routes"
	"github.com/peopleops/hrctl/internal/session"
)

type Globals struct {
	Server    string
	ConfigDir string
	Debug     bool
	Version   string
}

// terminalNavigator is the CLI's navigation surface. A redirect from the
// pipeline lands the user agent on the named route, which for a terminal
// means telling the user where they ended up.
type terminalNavigator struct {
	mu      sync.Mutex
	current string
}

func (n *terminalNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *terminalNavigator) RedirectTo(route string) {
	n.mu.Lock()
	n.current = route
	n.mu.Unlock()
	fmt.Fprintf(os.Stderr, "Session ended; sign in again with \"hrctl login\" (%s)\n", routes.PathFor(route))
}

func (n *terminalNavigator) setCurrent(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = route
}

// App wires the session store, pipeline, controller and services for one
// command invocation.
type App struct {
	Store  *session.Store
	Client *api.Client
	Auth   *auth.Controller
	Nav    *terminalNavigator

	baseDir string
	cfg     *config.File
	globals *Globals
}

// NewApp resolves configuration and builds the shared client stack.
func NewApp(g *Globals) (*App, error) {
	baseDir := g.ConfigDir
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".hrctl")
	}

	store, err := session.NewStore(baseDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, err
	}
	if cfg.Debug && !g.Debug {
		logger.Setup(true)
	}

	baseURL := config.ResolveBaseURL(g.Server, cfg, g.Version)
	log.Debug().Str("baseURL", baseURL).Msg("backend endpoint resolved")

	nav := &terminalNavigator{current: routes.RouteHome}
	client := api.New(api.Config{BaseURL: baseURL, Debug: g.Debug}, store, nav)

	return &App{
		Store:   store,
		Client:  client,
		Auth:    auth.NewController(store, client),
		Nav:     nav,
		baseDir: baseDir,
		cfg:     cfg,
		globals: g,
	}, nil
}

// CachingClient returns a client with an in-memory HTTP cache for
// read-mostly endpoints.
func (a *App) CachingClient() *api.Client {
	return api.NewCaching(api.Config{
		BaseURL: a.Client.BaseURL(),
		Debug:   a.globals.Debug,
	}, a.Store, a.Nav)
}

// Navigate consults the guard before a command opens its view. A denied
// navigation is surfaced as an error naming where the user was sent
// instead.
func (a *App) Navigate(name string) error {
	path := routes.PathFor(name)
	if path == "" {
		return fmt.Errorf("unknown route %q", name)
	}

	policy := routes.Resolve(path)
	authenticated := a.Auth.IsAuthenticated()

	var role routes.Role
	if rec := a.Auth.CurrentSession(); rec != nil {
		role = rec.User.Role
	}

	decision := routes.Evaluate(policy, role, authenticated)
	if decision.Allowed {
		a.Nav.setCurrent(name)
		return nil
	}

	if decision.Redirect == routes.RouteLogin {
		a.Nav.setCurrent(routes.RouteLogin)
		return fmt.Errorf("not signed in: run \"hrctl login\" first")
	}

	a.Nav.setCurrent(decision.Redirect)
	return fmt.Errorf("role %s cannot open %s; your landing view is %s",
		role, path, routes.PathFor(decision.Redirect))
}
