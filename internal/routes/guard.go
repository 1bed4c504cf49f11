package routes

import (
	"slices"

	"github.com/rs/zerolog/log"
)

// Decision is the outcome of evaluating a navigation against a policy.
type Decision struct {
	Allowed bool
	// Redirect is the named route to land on instead when the
	// navigation is not allowed through unmodified.
	Redirect string
}

// LandingRoute returns the default route a role is sent to when denied
// access elsewhere. Employees land on their leave dashboard; every
// privileged role lands on the HR dashboard.
func LandingRoute(role Role) string {
	switch role {
	case RoleEmployee:
		return RouteMyLeave
	case RoleAdmin, RoleHR, RoleManager:
		return RouteHrDashboard
	default:
		return RouteHome
	}
}

// Evaluate decides whether a navigation to a route with the given policy
// may proceed. authenticated reports whether a session is present and
// role is that session's role (ignored when authenticated is false).
// Rules apply in order, first match wins.
func Evaluate(p Policy, role Role, authenticated bool) Decision {
	if p.RequiresAuth && !authenticated {
		log.Debug().Str("route", p.Name).Msg("unauthenticated navigation, redirecting to login")
		return Decision{Redirect: RouteLogin}
	}

	if authenticated && len(p.AllowedRoles) > 0 && !slices.Contains(p.AllowedRoles, role) {
		landing := LandingRoute(role)
		log.Debug().
			Str("route", p.Name).
			Str("role", string(role)).
			Str("landing", landing).
			Msg("role not allowed, redirecting to landing route")
		return Decision{Redirect: landing}
	}

	if p.RedirectTo != "" {
		return Decision{Redirect: p.RedirectTo}
	}

	return Decision{Allowed: true}
}
