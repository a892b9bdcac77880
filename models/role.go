package models

// Role is the operator role carried in a session token.
type Role string

const (
	RoleKitchen Role = "kitchen"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
	RoleDriver  Role = "driver"
)

func (r Role) Valid() bool {
	switch r {
	case RoleKitchen, RoleManager, RoleAdmin, RoleDriver:
		return true
	}
	return false
}
