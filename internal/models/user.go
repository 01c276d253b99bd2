package models

import "strings"

// UserRole represents the roles a hostel user can act as.
type UserRole string

const (
	RoleStudent     UserRole = "STUDENT"
	RoleAdmin       UserRole = "ADMIN"
	RoleMaintenance UserRole = "MAINTENANCE"
)

// Roles lists every known role.
var Roles = []UserRole{RoleStudent, RoleAdmin, RoleMaintenance}

// ParseRole normalises raw and reports whether it names a known role.
func ParseRole(raw string) (UserRole, bool) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(raw)))
	for _, r := range Roles {
		if r == role {
			return role, true
		}
	}
	return "", false
}

// User is a hostel resident or staff member. Role is the active view and
// may be switched by the user at any time.
type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       UserRole `json:"role"`
	RoomNumber *string  `json:"roomNumber,omitempty"`
	Block      *string  `json:"block,omitempty"`
}
