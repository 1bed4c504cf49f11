package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/peopleops/hrctl/internal/routes"
	"github.com/peopleops/hrctl/internal/session"
)

// Navigator is the navigation surface the pipeline redirects through when
// a session is torn down. The CLI provides the implementation; views are
// outside this client's scope.
type Navigator interface {
	// Current returns the named route the user agent is on.
	Current() string
	// RedirectTo moves the user agent to a named route.
	RedirectTo(route string)
}

type contextKey string

const teardownGuardContextKey contextKey = "teardown_guard"

// withTeardownGuard tags a logical request's context with its single-shot
// teardown guard. Retried dispatches of the same request share the guard,
// so a 401 tears the session down at most once per logical request.
// Concurrent independent requests each carry their own guard.
func withTeardownGuard(ctx context.Context) context.Context {
	return context.WithValue(ctx, teardownGuardContextKey, &sync.Once{})
}

func teardownGuardFromContext(ctx context.Context) *sync.Once {
	once, _ := ctx.Value(teardownGuardContextKey).(*sync.Once)
	return once
}

// authTransport shapes every outbound request identically: it attaches the
// bearer token from the session store when one is present, tags the request
// for log correlation, and reacts to authorization failures.
type authTransport struct {
	base  http.RoundTripper
	store *session.Store
	nav   Navigator
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec, err := t.store.Read()
	hadSession := err == nil

	clone := req.Clone(req.Context())
	clone.Header.Set("Accept", "application/json")
	clone.Header.Set("X-Request-Id", uuid.NewString())
	if hadSession {
		clone.Header.Set("Authorization", "Bearer "+rec.Token)
	}

	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if once := teardownGuardFromContext(req.Context()); once != nil {
			once.Do(func() {
				t.teardown(hadSession, req.Method, req.URL.Path)
			})
		}
	}

	return resp, nil
}

// teardown clears the session and sends the user agent to the login entry
// point. It is skipped when no session was present before the failure (an
// anonymous request being rejected is not a reason to redirect) and the
// redirect is skipped when the user agent is already on the login or
// registration route.
func (t *authTransport) teardown(hadSession bool, method, path string) {
	if !hadSession {
		log.Debug().Str("method", method).Str("path", path).
			Msg("unauthenticated request rejected, nothing to tear down")
		return
	}

	log.Warn().Str("method", method).Str("path", path).
		Msg("authorization failure, tearing down session")

	if err := t.store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear session during teardown")
	}

	if t.nav == nil {
		return
	}
	switch t.nav.Current() {
	case routes.RouteLogin, routes.RouteRegister:
		return
	}
	t.nav.RedirectTo(routes.RouteLogin)
}
