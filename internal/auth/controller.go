package auth

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/peopleops/hrctl/internal/api"
	"github.com/peopleops/hrctl/internal/routes"
	"github.com/peopleops/hrctl/internal/session"
)

// MissingFieldError reports a required identity field that was empty
// before any network call was made.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Credentials are the login inputs.
type Credentials struct {
	Email    string
	Password string
}

// Registration are the sign-up inputs.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Position  string
}

// ProfileUpdate lists the editable profile fields. Zero-valued fields
// are left as stored.
type ProfileUpdate struct {
	FirstName         string
	LastName          string
	Position          string
	ProfilePictureURL string
}

// apply merges the non-empty fields over u and returns the merged user
// together with the request body carrying exactly the edited fields.
func (p ProfileUpdate) apply(u session.User) (session.User, map[string]string) {
	body := map[string]string{}
	if v := strings.TrimSpace(p.FirstName); v != "" {
		u.FirstName = v
		body["firstName"] = v
	}
	if v := strings.TrimSpace(p.LastName); v != "" {
		u.LastName = v
		body["lastName"] = v
	}
	if v := strings.TrimSpace(p.Position); v != "" {
		u.Position = v
		body["position"] = v
	}
	if v := strings.TrimSpace(p.ProfilePictureURL); v != "" {
		u.ProfilePictureURL = v
		body["profilePictureUrl"] = v
	}
	return u, body
}

// Outcome is the result of a registration. Exactly one field is set: the
// backend either auto-logs the new account in, or returns a bare
// confirmation for the caller to present.
type Outcome struct {
	Session      *session.Record
	Confirmation string
}

// sessionResponse is the token-plus-user contract the auth endpoints
// answer with on success.
type sessionResponse struct {
	Token   string        `json:"token"`
	User    *session.User `json:"user"`
	Message string        `json:"message"`
}

// Controller orchestrates the session store and the HTTP pipeline for
// authentication operations.
type Controller struct {
	store  *session.Store
	client *api.Client
}

// NewController creates an auth controller.
func NewController(store *session.Store, client *api.Client) *Controller {
	return &Controller{store: store, client: client}
}

// CurrentSession returns the stored session, or nil when absent. It
// delegates to the store on every call so it never serves a stale view.
func (c *Controller) CurrentSession() *session.Record {
	rec, err := c.store.Read()
	if err != nil {
		return nil
	}
	return rec
}

// Login authenticates against the backend and persists the session.
// Any failure leaves the store without a record from this attempt.
func (c *Controller) Login(ctx context.Context, creds Credentials) (*session.Record, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	password := strings.TrimSpace(creds.Password)

	if email == "" {
		return nil, &MissingFieldError{Field: "email"}
	}
	if password == "" {
		return nil, &MissingFieldError{Field: "password"}
	}

	var resp sessionResponse
	err := c.client.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		c.discardAttempt()
		return nil, err
	}

	if resp.Token == "" || resp.User == nil {
		c.discardAttempt()
		return nil, &api.Error{
			Kind:   api.KindMalformedResponse,
			Method: http.MethodPost,
			Path:   "/auth/login",
		}
	}

	rec := &session.Record{Token: resp.Token, User: *resp.User}
	if err := c.store.Save(rec); err != nil {
		c.discardAttempt()
		return nil, err
	}

	log.Info().Str("email", rec.User.Email).Str("role", string(rec.User.Role)).Msg("logged in")

	return rec, nil
}

// Register creates an account. The backend may auto-login (token and user
// in the response) or answer with a bare confirmation; both are terminal
// outcomes the caller must handle.
func (c *Controller) Register(ctx context.Context, details Registration) (*Outcome, error) {
	if err := validateRegistration(details); err != nil {
		return nil, err
	}

	var resp sessionResponse
	err := c.client.Post(ctx, "/auth/register", registrationBody(details), &resp)
	if err != nil {
		return nil, err
	}

	return c.registrationOutcome("/auth/register", resp)
}

// RegisterAdmin creates an account through the administrative endpoint.
// The caller must hold the Admin role; the backend enforces it.
func (c *Controller) RegisterAdmin(ctx context.Context, details Registration) (*Outcome, error) {
	if err := validateRegistration(details); err != nil {
		return nil, err
	}

	var resp sessionResponse
	err := c.client.Post(ctx, "/auth/register-admin", registrationBody(details), &resp)
	if err != nil {
		return nil, err
	}

	// Admin-created accounts never replace the administrator's own
	// session, whatever the response carries.
	if resp.Message != "" {
		return &Outcome{Confirmation: resp.Message}, nil
	}
	if resp.User != nil {
		return &Outcome{Confirmation: fmt.Sprintf("user %s created", resp.User.Email)}, nil
	}
	return nil, &api.Error{
		Kind:   api.KindMalformedResponse,
		Method: http.MethodPost,
		Path:   "/auth/register-admin",
	}
}

func (c *Controller) registrationOutcome(path string, resp sessionResponse) (*Outcome, error) {
	switch {
	case resp.Token != "" && resp.User != nil:
		rec := &session.Record{Token: resp.Token, User: *resp.User}
		if err := c.store.Save(rec); err != nil {
			return nil, err
		}
		log.Info().Str("email", rec.User.Email).Msg("registered and logged in")
		return &Outcome{Session: rec}, nil
	case resp.Message != "":
		return &Outcome{Confirmation: resp.Message}, nil
	default:
		return nil, &api.Error{Kind: api.KindMalformedResponse, Method: http.MethodPost, Path: path}
	}
}

// Logout clears the stored session. The backend is notified best-effort
// so it can invalidate the credential server-side; that notification's
// failure is swallowed. Logout is a local guarantee.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.store.Clear(); err != nil {
		return err
	}

	notifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.client.Post(notifyCtx, "/auth/logout", nil, nil); err != nil {
		log.Debug().Err(err).Msg("server-side logout notification failed")
	}

	log.Info().Msg("logged out")

	return nil
}

// RefreshProfile fetches the current user's profile from the role's own
// resource and merges it into the stored record without touching the
// token.
func (c *Controller) RefreshProfile(ctx context.Context) (*session.User, error) {
	rec, err := c.store.Read()
	if err != nil {
		return nil, err
	}

	user, err := c.fetchProfile(ctx, rec.User.Role)
	if err != nil {
		return nil, err
	}

	return user, c.ApplyProfile(*user)
}

// fetchProfile dispatches on the closed role set: an employee's profile
// lives at a different resource than an administrative user's.
func (c *Controller) fetchProfile(ctx context.Context, role routes.Role) (*session.User, error) {
	switch role {
	case routes.RoleEmployee:
		var user session.User
		if err := c.client.Get(ctx, "/employees/my-profile", &user); err != nil {
			return nil, err
		}
		return &user, nil
	case routes.RoleAdmin, routes.RoleHR, routes.RoleManager:
		var resp struct {
			User *session.User `json:"user"`
		}
		if err := c.client.Get(ctx, "/auth/me", &resp); err != nil {
			return nil, err
		}
		if resp.User == nil {
			return nil, &api.Error{Kind: api.KindMalformedResponse, Method: http.MethodGet, Path: "/auth/me"}
		}
		return resp.User, nil
	default:
		return nil, fmt.Errorf("no profile resource for role %q", role)
	}
}

// UpdateProfile submits edited profile fields to the current role's
// profile resource and, once the backend confirms, merges them into the
// stored record field by field. Fields not mentioned, and the token,
// are untouched. With nothing to edit it is a no-op.
func (c *Controller) UpdateProfile(ctx context.Context, fields ProfileUpdate) (*session.User, error) {
	rec, err := c.store.Read()
	if err != nil {
		return nil, err
	}

	merged, body := fields.apply(rec.User)
	if len(body) == 0 {
		return &rec.User, nil
	}

	var path string
	switch rec.User.Role {
	case routes.RoleEmployee:
		path = "/employees/my-profile"
	case routes.RoleAdmin, routes.RoleHR, routes.RoleManager:
		path = "/auth/me"
	default:
		return nil, fmt.Errorf("no profile resource for role %q", rec.User.Role)
	}

	if err := c.client.Put(ctx, path, body, nil); err != nil {
		return nil, err
	}

	rec.User = merged
	if err := c.store.Save(rec); err != nil {
		return nil, err
	}

	log.Info().Int("fields", len(body)).Msg("profile updated")

	return &rec.User, nil
}

// ApplyProfile replaces the stored profile snapshot, keeping the token.
// Used after profile refresh and after profile-edit confirmation.
func (c *Controller) ApplyProfile(user session.User) error {
	rec, err := c.store.Read()
	if err != nil {
		return err
	}

	rec.User = user
	return c.store.Save(rec)
}

// IsAuthenticated reports whether a session with a live token is stored.
// An undecodable or expired token triggers the same teardown as an
// explicit logout. Expiry is enforced lazily, on demand.
func (c *Controller) IsAuthenticated() bool {
	rec, err := c.store.Read()
	if err != nil {
		return false
	}

	exp, err := tokenExpiry(rec.Token)
	if err != nil {
		log.Warn().Err(err).Msg("stored token undecodable, tearing down session")
		c.discardAttempt()
		return false
	}

	if !exp.IsZero() && exp.Before(time.Now()) {
		log.Info().Time("expired", exp).Msg("stored token expired, tearing down session")
		c.discardAttempt()
		return false
	}

	return true
}

// HasRole reports whether the current session's role is one of the given
// roles. Without a session it is false unconditionally.
func (c *Controller) HasRole(roleOrRoles ...routes.Role) bool {
	rec := c.CurrentSession()
	if rec == nil {
		return false
	}
	return slices.Contains(roleOrRoles, rec.User.Role)
}

// discardAttempt guarantees no stale or partial record survives a failed
// authentication path.
func (c *Controller) discardAttempt() {
	if err := c.store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear session")
	}
}

func validateRegistration(details Registration) error {
	fields := []struct {
		name  string
		value string
	}{
		{"firstName", details.FirstName},
		{"lastName", details.LastName},
		{"email", details.Email},
		{"password", details.Password},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &MissingFieldError{Field: f.name}
		}
	}
	return nil
}

func registrationBody(details Registration) map[string]string {
	body := map[string]string{
		"firstName": strings.TrimSpace(details.FirstName),
		"lastName":  strings.TrimSpace(details.LastName),
		"email":     strings.ToLower(strings.TrimSpace(details.Email)),
		"password":  details.Password,
	}
	if details.Position != "" {
		body["position"] = details.Position
	}
	return body
}
