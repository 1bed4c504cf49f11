package routes

import (
	"fmt"
	"slices"
	"strings"
)

// Role represents a user role in the HR platform. The set is closed;
// the backend never issues roles outside of it.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleHR       Role = "HR"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// AllRoles lists every valid role.
var AllRoles = []Role{RoleAdmin, RoleHR, RoleManager, RoleEmployee}

// Valid reports whether the role is one of the fixed set.
func (r Role) Valid() bool {
	return slices.Contains(AllRoles, r)
}

// ParseRole converts a string from the backend into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Named routes consumed as redirect targets.
const (
	RouteHome            = "Home"
	RouteLogin           = "Login"
	RouteRegister        = "Register"
	RouteHrDashboard     = "HrDashboard"
	RouteEmployees       = "EmployeeManagement"
	RouteDepartments     = "DepartmentManagement"
	RouteProjects        = "ProjectManagement"
	RoutePayroll         = "Payroll"
	RouteLeaveManagement = "LeaveManagement"
	RoutePayslipDisplay  = "PayslipDisplay"
	RouteCreateUser      = "CreateUser"
	RouteAdminProfile    = "AdminProfile"
	RouteMyLeave         = "EmployeeLeaveDashboard"
	RouteMyPayslips      = "EmployeePayslipHistory"
	RouteEmployeePayslip = "EmployeePayslipDisplay"
	RouteEmployeeProfile = "EmployeeProfile"
)

// Route is one node in the static navigation tree. Policy fields declared
// on a parent apply to the whole subtree: RequiresAuth is inherited, and a
// leaf's effective AllowedRoles is the union of its own and its ancestors'.
type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
	AllowedRoles []Role
	RedirectTo   string
	Children     []Route
}

// Policy is the effective access requirement for a resolved path.
type Policy struct {
	Name         string
	RequiresAuth bool
	AllowedRoles []Role
	RedirectTo   string
}

// Table is the navigation tree for the HR application. It mirrors the
// product's view hierarchy: a public area, a privileged /app area for
// Admin, HR and Manager, and an /employee area for employees.
var Table = []Route{
	{Name: RouteHome, Path: "/"},
	{Name: RouteLogin, Path: "/login"},
	{Name: RouteRegister, Path: "/register"},
	{
		Path:         "/app",
		RequiresAuth: true,
		AllowedRoles: []Role{RoleAdmin, RoleHR, RoleManager},
		Children: []Route{
			{Path: "", RedirectTo: RouteHrDashboard},
			{Name: RouteHrDashboard, Path: "dashboard"},
			{Name: RouteEmployees, Path: "employees"},
			{Name: RouteDepartments, Path: "departments"},
			{Name: RouteProjects, Path: "projects"},
			{Name: RoutePayroll, Path: "payroll"},
			{Name: RouteLeaveManagement, Path: "leave"},
			{Name: RoutePayslipDisplay, Path: "payslip/:id"},
			{Name: RouteCreateUser, Path: "create-user", AllowedRoles: []Role{RoleAdmin}},
			{Name: RouteAdminProfile, Path: "profile"},
		},
	},
	{
		Path:         "/employee",
		RequiresAuth: true,
		AllowedRoles: []Role{RoleEmployee},
		Children: []Route{
			{Path: "", RedirectTo: RouteMyLeave},
			{Name: RouteMyLeave, Path: "my-leave"},
			{Name: RouteMyPayslips, Path: "my-payslips"},
			{Name: RouteEmployeePayslip, Path: "payslip/:id"},
			{Name: RouteEmployeeProfile, Path: "profile"},
		},
	},
}

// Resolve walks the navigation tree and returns the effective policy for
// path. Unmatched paths resolve to a catch-all that redirects to the
// public home route.
func Resolve(path string) Policy {
	segments := splitPath(path)

	for _, root := range Table {
		rootSegs := splitPath(root.Path)
		if !segmentsMatch(rootSegs, segments[:min(len(rootSegs), len(segments))]) {
			continue
		}
		if len(root.Children) == 0 {
			if len(segments) != len(rootSegs) {
				continue
			}
			return Policy{
				Name:         root.Name,
				RequiresAuth: root.RequiresAuth,
				AllowedRoles: slices.Clone(root.AllowedRoles),
				RedirectTo:   root.RedirectTo,
			}
		}

		rest := segments[len(rootSegs):]
		for _, child := range root.Children {
			childSegs := splitPath(child.Path)
			if !segmentsMatch(childSegs, rest) {
				continue
			}
			return Policy{
				Name:         child.Name,
				RequiresAuth: root.RequiresAuth,
				AllowedRoles: unionRoles(root.AllowedRoles, child.AllowedRoles),
				RedirectTo:   child.RedirectTo,
			}
		}
	}

	return Policy{Name: "NotFound", RedirectTo: RouteHome}
}

// PathFor returns the navigable path for a named route, or "" when the
// name is unknown. Parameterized routes keep their placeholder segment.
func PathFor(name string) string {
	for _, root := range Table {
		if root.Name == name {
			return root.Path
		}
		for _, child := range root.Children {
			if child.Name == name {
				return strings.TrimSuffix(root.Path, "/") + "/" + child.Path
			}
		}
	}
	return ""
}

// FlatRoute pairs a concrete path with its effective policy.
type FlatRoute struct {
	Path   string
	Policy Policy
}

// Flatten lists every navigable path with the policy Resolve would
// produce for it, in table order.
func Flatten() []FlatRoute {
	var out []FlatRoute
	for _, root := range Table {
		if len(root.Children) == 0 {
			out = append(out, FlatRoute{Path: root.Path, Policy: Resolve(root.Path)})
			continue
		}
		for _, child := range root.Children {
			path := strings.TrimSuffix(root.Path, "/") + "/" + child.Path
			path = strings.TrimSuffix(path, "/")
			out = append(out, FlatRoute{Path: path, Policy: Resolve(path)})
		}
	}
	return out
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// segmentsMatch reports whether pattern matches exactly the given path
// segments. Segments beginning with ":" match any single value.
func segmentsMatch(pattern, segments []string) bool {
	if len(pattern) != len(segments) {
		return false
	}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if p != segments[i] {
			return false
		}
	}
	return true
}

func unionRoles(a, b []Role) []Role {
	out := slices.Clone(a)
	for _, r := range b {
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}
