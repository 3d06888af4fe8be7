package auth

import (
	"github.com/google/uuid"
)

// UserRole is the access level attached to an identity
type UserRole = string

const (
	// RoleMaster owns a tenant; masters carry no MasterID of their own
	RoleMaster UserRole = "master"
	// RoleAdministrator manages a tenant on behalf of its master
	RoleAdministrator UserRole = "administrator"
	// RoleTeacher is a teaching staff member
	RoleTeacher UserRole = "teacher"
	// RoleWorker is a non-teaching staff member
	RoleWorker UserRole = "worker"
	// RoleStudent is an enrolled student
	RoleStudent UserRole = "student"
)

// AuthUser is the identity record kept by the IdentityStore. Records are
// value-like: the store copies them in and out wholesale and callers never
// mutate a stored record in place.
type AuthUser struct {
	ID       uuid.UUID `json:"id,omitempty"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
	IsHashed bool      `json:"is_hashed"`
	Role     UserRole  `json:"role,omitempty"`
	MasterID string    `json:"master_id,omitempty"`
}

// BelongsToTenant reports whether the record carries a tenant reference.
func (u AuthUser) BelongsToTenant() bool {
	return u.MasterID != ""
}
