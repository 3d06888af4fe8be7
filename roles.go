package auth

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleMaster, RoleAdministrator, RoleTeacher, RoleWorker, RoleStudent:
		return true
	default:
		return false
	}
}

// RoleIsAtLeast checks if a role meets the minimum required level
func RoleIsAtLeast(r, minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleStudent:       0,
		RoleWorker:        1,
		RoleTeacher:       2,
		RoleAdministrator: 3,
		RoleMaster:        4,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// RoleAllowed reports whether the role is a member of the given allow list.
func RoleAllowed(r UserRole, allowed []UserRole) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleStudent,
		RoleWorker,
		RoleTeacher,
		RoleAdministrator,
		RoleMaster,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}
