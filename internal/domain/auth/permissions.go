package auth

import "context"

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

const (
	PermFeedbackSubmit  = "feedback.submit"
	PermFeedbackReadOwn = "feedback.read.own"
	PermFeedbackReadAll = "feedback.read.all"
	PermFeedbackExport  = "feedback.export"
	PermDashboardRead   = "dashboard.read"
	PermEmployeesRead   = "employees.read"
	PermMetricsRead     = "metrics.read"
)

// RolePermissions maps each role to what it grants. Only employees submit:
// the response rate is computed against the employee headcount.
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermFeedbackSubmit,
		PermFeedbackReadOwn,
	},
	RoleAdmin: {
		PermFeedbackReadOwn,
		PermFeedbackReadAll,
		PermFeedbackExport,
		PermDashboardRead,
		PermEmployeesRead,
		PermMetricsRead,
	},
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// StaticPermissions answers permission checks from RolePermissions. Roles are
// fixed in this service, so there is no permissions table to consult.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	for _, perm := range RolePermissions[role] {
		if perm == permission {
			return true, nil
		}
	}
	return false, nil
}
