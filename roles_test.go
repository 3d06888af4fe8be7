package auth_test

import (
	"testing"

	"github.com/goliatone/go-tenant-auth"
	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	for _, role := range auth.GetAllRoles() {
		assert.True(t, auth.IsValidRole(role), "expected %q to be valid", role)
	}

	assert.False(t, auth.IsValidRole("superuser"))
	assert.False(t, auth.IsValidRole(""))
}

func TestRoleIsAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     auth.UserRole
		minRole  auth.UserRole
		expected bool
	}{
		{"master is at least administrator", auth.RoleMaster, auth.RoleAdministrator, true},
		{"administrator is at least teacher", auth.RoleAdministrator, auth.RoleTeacher, true},
		{"teacher is at least teacher", auth.RoleTeacher, auth.RoleTeacher, true},
		{"worker is not at least teacher", auth.RoleWorker, auth.RoleTeacher, false},
		{"student is not at least worker", auth.RoleStudent, auth.RoleWorker, false},
		{"unknown role fails", "superuser", auth.RoleStudent, false},
		{"unknown minimum fails", auth.RoleMaster, "superuser", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, auth.RoleIsAtLeast(tt.role, tt.minRole))
		})
	}
}

func TestRoleAllowed(t *testing.T) {
	allowList := []auth.UserRole{auth.RoleMaster, auth.RoleAdministrator}

	assert.True(t, auth.RoleAllowed(auth.RoleMaster, allowList))
	assert.True(t, auth.RoleAllowed(auth.RoleAdministrator, allowList))
	assert.False(t, auth.RoleAllowed(auth.RoleTeacher, allowList))
	assert.False(t, auth.RoleAllowed(auth.RoleStudent, nil))
}

func TestParseRole(t *testing.T) {
	role, ok := auth.ParseRole("teacher")
	assert.True(t, ok)
	assert.Equal(t, auth.RoleTeacher, role)

	_, ok = auth.ParseRole("janitor")
	assert.False(t, ok)
}
