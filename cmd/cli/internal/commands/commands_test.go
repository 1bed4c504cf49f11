package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrctl/internal/routes"
	"github.com/peopleops/hrctl/internal/session"
)

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

func seedSession(t *testing.T, dir string, role routes.Role) {
	t.Helper()

	store, err := session.NewStore(dir)
	require.NoError(t, err)

	err = store.Save(&session.Record{
		Token: signedToken(t, time.Hour),
		User: session.User{
			ID:        42,
			Email:     "user@example.com",
			Role:      role,
			FirstName: "Test",
			LastName:  "User",
		},
	})
	require.NoError(t, err)
}

func testGlobals(dir, server string) *Globals {
	return &Globals{
		Server:    server,
		ConfigDir: dir,
		Version:   "test",
	}
}

func TestNavigate_RequiresLogin(t *testing.T) {
	tmpDir := t.TempDir()

	app, err := NewApp(testGlobals(tmpDir, "http://localhost:1"))
	require.NoError(t, err)

	err = app.Navigate(routes.RouteEmployees)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hrctl login")
	assert.Equal(t, routes.RouteLogin, app.Nav.Current())
}

func TestNavigate_AllowsPrivilegedRole(t *testing.T) {
	tmpDir := t.TempDir()
	seedSession(t, tmpDir, routes.RoleAdmin)

	app, err := NewApp(testGlobals(tmpDir, "http://localhost:1"))
	require.NoError(t, err)

	require.NoError(t, app.Navigate(routes.RouteEmployees))
	assert.Equal(t, routes.RouteEmployees, app.Nav.Current())
}

func TestNavigate_RedirectsEmployeeToLanding(t *testing.T) {
	tmpDir := t.TempDir()
	seedSession(t, tmpDir, routes.RoleEmployee)

	app, err := NewApp(testGlobals(tmpDir, "http://localhost:1"))
	require.NoError(t, err)

	err = app.Navigate(routes.RoutePayroll)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Employee")
	assert.Contains(t, err.Error(), routes.PathFor(routes.RouteMyLeave))
	assert.Equal(t, routes.RouteMyLeave, app.Nav.Current())
}

func TestNavigate_UnknownRoute(t *testing.T) {
	tmpDir := t.TempDir()

	app, err := NewApp(testGlobals(tmpDir, "http://localhost:1"))
	require.NoError(t, err)

	err = app.Navigate("NoSuchView")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown route")
}

func TestEmployeesListCmd(t *testing.T) {
	tmpDir := t.TempDir()
	seedSession(t, tmpDir, routes.RoleHR)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/employees", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "role": "Employee"},
		})
	}))
	defer srv.Close()

	cmd := &EmployeesListCmd{}
	err := cmd.Run(context.Background(), testGlobals(tmpDir, srv.URL))
	require.NoError(t, err)
}

func TestEmployeesListCmd_DeniedForEmployee(t *testing.T) {
	tmpDir := t.TempDir()
	seedSession(t, tmpDir, routes.RoleEmployee)

	cmd := &EmployeesListCmd{}
	err := cmd.Run(context.Background(), testGlobals(tmpDir, "http://localhost:1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open")
}

func TestLeavesMineCmd(t *testing.T) {
	tmpDir := t.TempDir()
	seedSession(t, tmpDir, routes.RoleEmployee)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/leaves/my-leaves", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 7, "startDate": "2026-09-01", "endDate": "2026-09-05", "status": "Pending"},
		})
	}))
	defer srv.Close()

	cmd := &LeavesMineCmd{}
	err := cmd.Run(context.Background(), testGlobals(tmpDir, srv.URL))
	require.NoError(t, err)
}

func TestProfileUpdateCmd(t *testing.T) {
	tmpDir := t.TempDir()
	seedSession(t, tmpDir, routes.RoleEmployee)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/employees/my-profile", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Engineer II", body["position"])

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cmd := &ProfileUpdateCmd{Position: "Engineer II"}
	err := cmd.Run(context.Background(), testGlobals(tmpDir, srv.URL))
	require.NoError(t, err)

	store, err := session.NewStore(tmpDir)
	require.NoError(t, err)
	rec, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "Engineer II", rec.User.Position)
}

func TestHealthCmd(t *testing.T) {
	tmpDir := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cmd := &HealthCmd{}
	err := cmd.Run(context.Background(), testGlobals(tmpDir, srv.URL+"/api"))
	require.NoError(t, err)
}

func TestHealthCmd_Unreachable(t *testing.T) {
	tmpDir := t.TempDir()

	cmd := &HealthCmd{}
	err := cmd.Run(context.Background(), testGlobals(tmpDir, "http://localhost:1/api"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unhealthy")
}

func TestRoutesCheckCmd_HypotheticalRole(t *testing.T) {
	tmpDir := t.TempDir()

	cmd := &RoutesCheckCmd{Path: "/app/payroll", As: "Employee"}
	err := cmd.Run(context.Background(), testGlobals(tmpDir, "http://localhost:1"))
	require.NoError(t, err)
}

func TestRoutesListCmd(t *testing.T) {
	cmd := &RoutesListCmd{}
	err := cmd.Run(context.Background(), &Globals{})
	require.NoError(t, err)
}

func TestProfileRoute(t *testing.T) {
	assert.Equal(t, routes.RouteEmployeeProfile, profileRoute(routes.RoleEmployee))
	assert.Equal(t, routes.RouteAdminProfile, profileRoute(routes.RoleAdmin))
	assert.Equal(t, routes.RouteAdminProfile, profileRoute(routes.RoleHR))
}
