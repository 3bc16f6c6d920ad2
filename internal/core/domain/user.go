package domain

import (
	"errors"
	"time"
)

// Role is the canonical set of access roles. Stored rows may still carry the
// legacy "client" value; CanonicalRole translates it at the boundary so the
// rest of the system only ever sees these four.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleStaff       Role = "staff"
	RoleClientAdmin Role = "client_admin"
	RoleClientUser  Role = "client_user"

	// roleLegacyClient predates the client_admin/client_user split.
	roleLegacyClient Role = "client"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserHasAssignedTasks = errors.New("user has assigned tasks")

// CanonicalRole maps a stored role string onto the canonical set.
// The legacy "client" value becomes client_user.
func CanonicalRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleStaff, RoleClientAdmin, RoleClientUser:
		return Role(s), true
	case roleLegacyClient:
		return RoleClientUser, true
	default:
		return "", false
	}
}

// IsClientScoped reports whether the role is bound to a single client tenant.
func (r Role) IsClientScoped() bool {
	return r == RoleClientAdmin || r == RoleClientUser
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	ClientID     string    `json:"client_id,omitempty" bson:"client_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
